package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"pathfinder/backend/internal/model"
)

// courseColumns 课程查询的公共列：附带院系代码与通识代码数组
const courseColumns = `courses.id, courses.course_id, courses.department_id, courses.course_number,
	courses.name, courses.credits, courses.description, courses.grading_status,
	courses.created_at, courses.updated_at,
	departments.code AS department_code,
	ARRAY(SELECT g.gen_ed_code FROM course_gen_eds g WHERE g.course_id = courses.id ORDER BY g.gen_ed_code) AS gen_ed`

// CourseRepository 课程数据访问接口
type CourseRepository interface {
	GetByCourseID(ctx context.Context, courseID string) (*model.Course, error)
	ListByIDs(ctx context.Context, courseIDs []string) ([]model.Course, error)
	Search(ctx context.Context, text string, limit int) ([]model.Course, error)
	SearchFallback(ctx context.Context, text string, limit int) ([]model.Course, error)
	ListByDepartment(ctx context.Context, departmentID int64) ([]model.Course, error)
}

// courseRepo CourseRepository 的 GORM 实现
type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) base(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.Course{}).
		Joins("JOIN departments ON departments.id = courses.department_id")
}

func (r *courseRepo) GetByCourseID(ctx context.Context, courseID string) (*model.Course, error) {
	var course model.Course
	err := r.base(ctx).
		Select(courseColumns).
		Where("courses.course_id = ?", courseID).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) ListByIDs(ctx context.Context, courseIDs []string) ([]model.Course, error) {
	courses := []model.Course{}
	if len(courseIDs) == 0 {
		return courses, nil
	}
	err := r.base(ctx).
		Select(courseColumns).
		Where("courses.course_id IN ?", courseIDs).
		Order("courses.course_id ASC").
		Find(&courses).Error
	return courses, err
}

// Search 基于 search_vector 的全文检索，按相关度降序
func (r *courseRepo) Search(ctx context.Context, text string, limit int) ([]model.Course, error) {
	courses := []model.Course{}
	err := r.base(ctx).
		Select(courseColumns+", ts_rank(courses.search_vector, plainto_tsquery('english', ?)) AS rank", text).
		Where("courses.search_vector @@ plainto_tsquery('english', ?)", text).
		Order("rank DESC, courses.course_id ASC").
		Limit(limit).
		Find(&courses).Error
	return courses, err
}

// SearchFallback 课程编号 / 名称 / 院系代码的模糊匹配
func (r *courseRepo) SearchFallback(ctx context.Context, text string, limit int) ([]model.Course, error) {
	pattern := "%" + escapeLike(text) + "%"
	courses := []model.Course{}
	err := r.base(ctx).
		Select(courseColumns).
		Where("courses.course_id ILIKE ? OR courses.name ILIKE ? OR departments.code ILIKE ?", pattern, pattern, pattern).
		Order("courses.course_id ASC").
		Limit(limit).
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) ListByDepartment(ctx context.Context, departmentID int64) ([]model.Course, error) {
	courses := []model.Course{}
	err := r.base(ctx).
		Select(courseColumns).
		Where("courses.department_id = ?", departmentID).
		Order("courses.course_number ASC, courses.course_id ASC").
		Find(&courses).Error
	return courses, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
