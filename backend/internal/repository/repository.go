package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Course       CourseRepository
	Department   DepartmentRepository
	Prerequisite PrerequisiteRepository
	Program      ProgramRepository
	GenEd        GenEdRepository
	Stats        StatsRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Course:       NewCourseRepo(db),
		Department:   NewDepartmentRepo(db),
		Prerequisite: NewPrerequisiteRepo(db),
		Program:      NewProgramRepo(db),
		GenEd:        NewGenEdRepo(db),
		Stats:        NewStatsRepo(db),
	}
}
