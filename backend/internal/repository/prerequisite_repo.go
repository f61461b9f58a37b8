package repository

import (
	"context"

	"gorm.io/gorm"

	"pathfinder/backend/internal/model"
)

// PrerequisiteRepository 先修 / 同修关系数据访问接口
type PrerequisiteRepository interface {
	ListGroups(ctx context.Context, courseID int64) ([]model.PrerequisiteGroup, error)
	ListGroupsForCourses(ctx context.Context, courseIDs []int64) (map[int64][]model.PrerequisiteGroup, error)
	ListGradeRequirements(ctx context.Context, courseID int64) ([]model.CourseGradeRequirement, error)
}

// prerequisiteRepo PrerequisiteRepository 的 GORM 实现
type prerequisiteRepo struct {
	db *gorm.DB
}

// NewPrerequisiteRepo 创建 PrerequisiteRepository 实例
func NewPrerequisiteRepo(db *gorm.DB) PrerequisiteRepository {
	return &prerequisiteRepo{db: db}
}

type prerequisiteRow struct {
	TargetID      int64
	PrereqGroup   int
	IsCorequisite bool
	CourseID      string
	Name          string
	Credits       *string
}

// ListGroups 按组号聚合某门课程的先修与同修条件
func (r *prerequisiteRepo) ListGroups(ctx context.Context, courseID int64) ([]model.PrerequisiteGroup, error) {
	byCourse, err := r.ListGroupsForCourses(ctx, []int64{courseID})
	if err != nil {
		return nil, err
	}
	if groups, ok := byCourse[courseID]; ok {
		return groups, nil
	}
	return []model.PrerequisiteGroup{}, nil
}

// ListGroupsForCourses 批量查询多门课程的条件组，一次查询完成
func (r *prerequisiteRepo) ListGroupsForCourses(ctx context.Context, courseIDs []int64) (map[int64][]model.PrerequisiteGroup, error) {
	result := make(map[int64][]model.PrerequisiteGroup, len(courseIDs))
	if len(courseIDs) == 0 {
		return result, nil
	}

	var rows []prerequisiteRow
	err := r.db.WithContext(ctx).
		Table("prerequisites p").
		Select("p.course_id AS target_id, p.prereq_group, p.is_corequisite, c.course_id, c.name, c.credits").
		Joins("JOIN courses c ON c.id = p.prereq_course_id").
		Where("p.course_id IN ?", courseIDs).
		Order("p.course_id, p.prereq_group, p.is_corequisite, c.course_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		groups := result[row.TargetID]
		n := len(groups)
		if n == 0 || groups[n-1].PrereqGroup != row.PrereqGroup || groups[n-1].IsCorequisite != row.IsCorequisite {
			groups = append(groups, model.PrerequisiteGroup{
				PrereqGroup:   row.PrereqGroup,
				IsCorequisite: row.IsCorequisite,
				Courses:       []model.PrerequisiteOption{},
			})
			n++
		}
		groups[n-1].Courses = append(groups[n-1].Courses, model.PrerequisiteOption{
			CourseID: row.CourseID,
			Name:     row.Name,
			Credits:  row.Credits,
		})
		result[row.TargetID] = groups
	}
	return result, nil
}

// ListGradeRequirements 某门课程对其先修课程的最低成绩要求
func (r *prerequisiteRepo) ListGradeRequirements(ctx context.Context, courseID int64) ([]model.CourseGradeRequirement, error) {
	reqs := []model.CourseGradeRequirement{}
	err := r.db.WithContext(ctx).
		Table("grade_requirements gr").
		Select("c.course_id, gr.minimum_grade").
		Joins("JOIN courses c ON c.id = gr.required_course_id").
		Where("gr.course_id = ?", courseID).
		Order("c.course_id ASC").
		Scan(&reqs).Error
	return reqs, err
}
