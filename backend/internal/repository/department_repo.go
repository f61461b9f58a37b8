package repository

import (
	"context"

	"gorm.io/gorm"

	"pathfinder/backend/internal/model"
)

// DepartmentRepository 院系数据访问接口
type DepartmentRepository interface {
	GetByCode(ctx context.Context, code string) (*model.Department, error)
	ListWithCounts(ctx context.Context) ([]model.DepartmentWithCount, error)
}

// departmentRepo DepartmentRepository 的 GORM 实现
type departmentRepo struct {
	db *gorm.DB
}

// NewDepartmentRepo 创建 DepartmentRepository 实例
func NewDepartmentRepo(db *gorm.DB) DepartmentRepository {
	return &departmentRepo{db: db}
}

// GetByCode 按院系代码查询（忽略大小写）
func (r *departmentRepo) GetByCode(ctx context.Context, code string) (*model.Department, error) {
	var dept model.Department
	err := r.db.WithContext(ctx).
		Where("UPPER(code) = UPPER(?)", code).
		First(&dept).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

// ListWithCounts 全部院系及其课程数，按代码排序
func (r *departmentRepo) ListWithCounts(ctx context.Context) ([]model.DepartmentWithCount, error) {
	depts := []model.DepartmentWithCount{}
	err := r.db.WithContext(ctx).
		Model(&model.Department{}).
		Select("departments.*, COUNT(courses.id) AS course_count").
		Joins("LEFT JOIN courses ON courses.department_id = departments.id").
		Group("departments.id").
		Order("departments.code ASC").
		Scan(&depts).Error
	return depts, err
}
