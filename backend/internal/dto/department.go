package dto

import "pathfinder/backend/internal/model"

// ── 院系模块 DTO ──

// DepartmentResponse 院系及课程数
type DepartmentResponse struct {
	Code        string  `json:"code"`
	Name        *string `json:"name"`
	CourseCount int64   `json:"course_count"`
}

// DepartmentCoursesResponse 院系课程列表
type DepartmentCoursesResponse struct {
	Department DepartmentResponse `json:"department"`
	Courses    []model.Course     `json:"courses"`
}
