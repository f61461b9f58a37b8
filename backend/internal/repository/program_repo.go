package repository

import (
	"context"

	"gorm.io/gorm"

	"pathfinder/backend/internal/model"
)

// ProgramRepository 培养方案数据访问接口
type ProgramRepository interface {
	GetByProgramID(ctx context.Context, programID string) (*model.Program, error)
	Search(ctx context.Context, text, programType string, limit int) ([]model.Program, error)
	ListRequirements(ctx context.Context, programID int64) ([]model.ProgramRequirement, error)
}

// programRepo ProgramRepository 的 GORM 实现
type programRepo struct {
	db *gorm.DB
}

// NewProgramRepo 创建 ProgramRepository 实例
func NewProgramRepo(db *gorm.DB) ProgramRepository {
	return &programRepo{db: db}
}

func (r *programRepo) GetByProgramID(ctx context.Context, programID string) (*model.Program, error) {
	var program model.Program
	err := r.db.WithContext(ctx).
		Where("program_id = ?", programID).
		First(&program).Error
	if err != nil {
		return nil, err
	}
	return &program, nil
}

// Search 按名称模糊匹配，可按类型过滤，结果按名称排序；两者皆空时返回前 limit 条
func (r *programRepo) Search(ctx context.Context, text, programType string, limit int) ([]model.Program, error) {
	query := r.db.WithContext(ctx).Model(&model.Program{})
	if text != "" {
		pattern := "%" + escapeLike(text) + "%"
		query = query.Where("name ILIKE ?", pattern)
	}
	if programType != "" {
		query = query.Where("program_type = ?", programType)
	}

	programs := []model.Program{}
	err := query.
		Order("name ASC, program_id ASC").
		Limit(limit).
		Find(&programs).Error
	return programs, err
}

// ListRequirements 培养方案的全部要求类别（按 display_order、requirement_type 排序），
// 每个类别附带按课程编号排序的课程列表
func (r *programRepo) ListRequirements(ctx context.Context, programID int64) ([]model.ProgramRequirement, error) {
	reqs := []model.ProgramRequirement{}
	err := r.db.WithContext(ctx).
		Where("program_id = ?", programID).
		Order("display_order ASC, requirement_type ASC, id ASC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	if len(reqs) == 0 {
		return reqs, nil
	}

	ids := make([]int64, len(reqs))
	for i := range reqs {
		ids[i] = reqs[i].ID
		reqs[i].Courses = []model.RequirementCourse{}
	}

	var courses []model.RequirementCourse
	err = r.db.WithContext(ctx).
		Table("program_requirement_courses prc").
		Select("prc.requirement_id, c.course_id, c.name AS course_name, c.credits, prc.is_required").
		Joins("JOIN courses c ON c.id = prc.course_id").
		Where("prc.requirement_id IN ?", ids).
		Order("prc.requirement_id, c.course_id").
		Scan(&courses).Error
	if err != nil {
		return nil, err
	}

	index := make(map[int64]int, len(reqs))
	for i := range reqs {
		index[reqs[i].ID] = i
	}
	for _, c := range courses {
		if i, ok := index[c.RequirementID]; ok {
			reqs[i].Courses = append(reqs[i].Courses, c)
		}
	}
	return reqs, nil
}
