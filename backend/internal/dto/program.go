package dto

import "pathfinder/backend/internal/model"

// ── 培养方案模块 DTO ──

// ProgramSearchRequest 培养方案搜索参数
type ProgramSearchRequest struct {
	Q           string `form:"q"            binding:"omitempty,max=100"`
	ProgramType string `form:"program_type" binding:"omitempty,oneof=major minor certificate"`
}

// ProgramRequirementsResponse 培养方案要求：按类型分组 + 扁平列表
type ProgramRequirementsResponse struct {
	Program            *model.Program                        `json:"program"`
	RequirementsByType map[string][]model.ProgramRequirement `json:"requirements_by_type"`
	AllRequirements    []model.ProgramRequirement            `json:"all_requirements"`
}

// ProgressRequest 计算培养方案进度请求
type ProgressRequest struct {
	CompletedCourses []string `json:"completed_courses" binding:"max=500,dive,max=20"`
	PlannedCourses   []string `json:"planned_courses"   binding:"max=500,dive,max=20"`
}

// RequirementCourseProgress 要求类别下单门课程的完成标记
type RequirementCourseProgress struct {
	CourseID    string  `json:"course_id"`
	CourseName  string  `json:"course_name"`
	Credits     *string `json:"credits"`
	IsRequired  bool    `json:"is_required"`
	IsCompleted bool    `json:"is_completed"`
	IsPlanned   bool    `json:"is_planned"`
}

// RequirementProgress 带完成标记的要求类别
type RequirementProgress struct {
	ID                int64                       `json:"id"`
	RequirementType   string                      `json:"requirement_type"`
	CategoryName      *string                     `json:"category_name"`
	MinCredits        *float64                    `json:"min_credits"`
	MinCourses        *int                        `json:"min_courses"`
	SelectionNotes    *string                     `json:"selection_notes"`
	LevelRequirement  *string                     `json:"level_requirement"`
	OtherRestrictions *string                     `json:"other_restrictions"`
	DisplayOrder      int                         `json:"display_order"`
	Courses           []RequirementCourseProgress `json:"courses"`
}

// ProgressResponse 培养方案完成进度
type ProgressResponse struct {
	Program              *model.Program        `json:"program"`
	TotalRequiredCredits float64               `json:"total_required_credits"`
	CompletedCredits     float64               `json:"completed_credits"`
	PlannedCredits       float64               `json:"planned_credits"`
	CompletionPercentage float64               `json:"completion_percentage"`
	Requirements         []RequirementProgress `json:"requirements"`
}
