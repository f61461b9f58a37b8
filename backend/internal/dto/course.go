package dto

import "pathfinder/backend/internal/model"

// ── 课程模块 DTO ──

// CourseSearchRequest 课程搜索参数
type CourseSearchRequest struct {
	Q     string `form:"q"`
	Limit int    `form:"limit" binding:"omitempty,min=1"`
}

// CourseGraphRequest 先修关系图查询参数
type CourseGraphRequest struct {
	Depth int `form:"depth" binding:"omitempty,min=1"`
}

// CoursePathsRequest 先修路径查询参数，max_depth 缺省取图查询上限
type CoursePathsRequest struct {
	To       string `form:"to"        binding:"required"`
	MaxDepth int    `form:"max_depth" binding:"omitempty,min=1"`
}

// CoursePathsResponse 两门课程之间的先修路径
type CoursePathsResponse struct {
	From  string             `json:"from"`
	To    string             `json:"to"`
	Paths []model.CoursePath `json:"paths"`
}

// CoursePrerequisitesResponse 课程先修 / 同修条件
type CoursePrerequisitesResponse struct {
	CourseID           string                         `json:"course_id"`
	PrerequisiteGroups []model.PrerequisiteGroup      `json:"prerequisite_groups"`
	CorequisiteGroups  []model.PrerequisiteGroup      `json:"corequisite_groups"`
	GradeRequirements  []model.CourseGradeRequirement `json:"grade_requirements"`
}
