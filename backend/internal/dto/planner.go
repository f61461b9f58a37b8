package dto

import "pathfinder/backend/internal/planner"

// ── 选课规划 DTO ──

// CheckPrerequisitesRequest 先修条件检查请求
type CheckPrerequisitesRequest struct {
	CourseID         string   `json:"course_id"         binding:"required,max=20"`
	CompletedCourses []string `json:"completed_courses" binding:"max=500,dive,max=20"`
}

// CheckPrerequisitesResponse 先修条件检查结果
type CheckPrerequisitesResponse struct {
	CourseID             string                `json:"course_id"`
	CanTake              bool                  `json:"can_take"`
	MissingPrerequisites []string              `json:"missing_prerequisites"`
	Warnings             []string              `json:"warnings"`
	Corequisites         []planner.GroupStatus `json:"corequisites"`
}

// ValidateSemesterRequest 学期计划校验请求
type ValidateSemesterRequest struct {
	CourseIDs        []string `json:"course_ids"        binding:"required,min=1,max=20,dive,required,max=20"`
	CompletedCourses []string `json:"completed_courses" binding:"max=500,dive,max=20"`
}

// SemesterCourseResult 学期计划中单门课程的校验结果
type SemesterCourseResult struct {
	CourseID             string   `json:"course_id"`
	Valid                bool     `json:"valid"`
	MissingPrerequisites []string `json:"missing_prerequisites"`
	Warnings             []string `json:"warnings"`
}

// ValidateSemesterResponse 学期计划校验结果
type ValidateSemesterResponse struct {
	AllValid bool                   `json:"all_valid"`
	Courses  []SemesterCourseResult `json:"courses"`
}

// ── 通识教育 DTO ──

// GenEdProgressRequest 通识完成情况请求
type GenEdProgressRequest struct {
	CompletedCourses []string `json:"completed_courses" binding:"max=500,dive,max=20"`
}

// GenEdCatalogEntry 通识目录项
type GenEdCatalogEntry struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
}

// GenEdRequirementStatus 单个通识代码完成情况
type GenEdRequirementStatus struct {
	Code             string   `json:"code"`
	Name             string   `json:"name"`
	Required         bool     `json:"required"`
	Description      string   `json:"description,omitempty"`
	Fulfilled        bool     `json:"fulfilled"`
	CoursesTaken     []string `json:"courses_taken"`
	CoursesAvailable []string `json:"courses_available"`
}

// GenEdProgressResponse 通识完成情况汇总
type GenEdProgressResponse struct {
	Requirements   []GenEdRequirementStatus `json:"requirements"`
	CompletedCount int                      `json:"completed_count"`
	TotalCount     int                      `json:"total_count"`
}
