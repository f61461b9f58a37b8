package repository

import (
	"context"

	"gorm.io/gorm"
)

// GenEdRepository 课程与通识代码对应关系的数据访问接口
type GenEdRepository interface {
	ListFulfillments(ctx context.Context, courseIDs []string) (map[string][]string, error)
	ListAvailableCourses(ctx context.Context, code string, excluding []string, limit int) ([]string, error)
}

// genEdRepo GenEdRepository 的 GORM 实现
type genEdRepo struct {
	db *gorm.DB
}

// NewGenEdRepo 创建 GenEdRepository 实例
func NewGenEdRepo(db *gorm.DB) GenEdRepository {
	return &genEdRepo{db: db}
}

// ListFulfillments 返回课程编号 → 该课程可满足的通识代码
func (r *genEdRepo) ListFulfillments(ctx context.Context, courseIDs []string) (map[string][]string, error) {
	index := make(map[string][]string, len(courseIDs))
	if len(courseIDs) == 0 {
		return index, nil
	}

	var rows []struct {
		CourseID  string
		GenEdCode string
	}
	err := r.db.WithContext(ctx).
		Table("course_gen_eds g").
		Select("c.course_id, g.gen_ed_code").
		Joins("JOIN courses c ON c.id = g.course_id").
		Where("c.course_id IN ?", courseIDs).
		Order("c.course_id, g.gen_ed_code").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		index[row.CourseID] = append(index[row.CourseID], row.GenEdCode)
	}
	return index, nil
}

// ListAvailableCourses 可满足指定通识代码的课程编号，排除 excluding，按编号排序
func (r *genEdRepo) ListAvailableCourses(ctx context.Context, code string, excluding []string, limit int) ([]string, error) {
	query := r.db.WithContext(ctx).
		Table("courses c").
		Joins("JOIN course_gen_eds g ON g.course_id = c.id").
		Where("g.gen_ed_code = ?", code)
	if len(excluding) > 0 {
		query = query.Where("c.course_id NOT IN ?", excluding)
	}

	ids := []string{}
	err := query.
		Order("c.course_id ASC").
		Limit(limit).
		Pluck("c.course_id", &ids).Error
	return ids, err
}
