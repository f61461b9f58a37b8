package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pathfinder/backend/internal/model"
)

// CourseUpsert 一门课程的完整导入数据
type CourseUpsert struct {
	DepartmentCode string
	DepartmentName *string
	Course         model.Course
	GenEds         []string
}

// RequisiteUpsert 一门课程的先修 / 同修条件与最低成绩要求
type RequisiteUpsert struct {
	CourseID          string
	Groups            []RequisiteGroup
	GradeRequirements map[string]string // 先修课程编号 → 最低成绩
}

// RequisiteGroup 导入用的条件组：组内 OR，组间 AND
type RequisiteGroup struct {
	Group         int
	IsCorequisite bool
	Options       []string
}

// CatalogWriter 离线导入使用的写入接口；每门课程一个事务
type CatalogWriter interface {
	UpsertCourse(ctx context.Context, rec *CourseUpsert) error
	ReplaceRequisites(ctx context.Context, rec *RequisiteUpsert) (unresolved []string, err error)
}

// catalogWriter CatalogWriter 的 GORM 实现
type catalogWriter struct {
	db *gorm.DB
}

// NewCatalogWriter 创建 CatalogWriter 实例
func NewCatalogWriter(db *gorm.DB) CatalogWriter {
	return &catalogWriter{db: db}
}

// UpsertCourse 写入院系（不存在时创建）、课程本身与其通识代码
func (w *catalogWriter) UpsertCourse(ctx context.Context, rec *CourseUpsert) error {
	return w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dept := model.Department{Code: rec.DepartmentCode}
		if err := tx.Where(model.Department{Code: rec.DepartmentCode}).
			Attrs(model.Department{Name: rec.DepartmentName}).
			FirstOrCreate(&dept).Error; err != nil {
			return err
		}

		course := rec.Course
		course.ID = 0
		course.DepartmentID = dept.ID
		course.UpdatedAt = time.Now()
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "course_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"department_id", "course_number", "name", "credits",
				"description", "grading_status", "updated_at",
			}),
		}).Create(&course).Error; err != nil {
			return err
		}

		if err := tx.Where("course_id = ?", course.ID).Delete(&model.CourseGenEd{}).Error; err != nil {
			return err
		}
		if len(rec.GenEds) == 0 {
			return nil
		}
		rows := make([]model.CourseGenEd, 0, len(rec.GenEds))
		for _, code := range rec.GenEds {
			rows = append(rows, model.CourseGenEd{CourseID: course.ID, GenEdCode: code})
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
	})
}

// ReplaceRequisites 用新数据整体替换课程的条件组与成绩要求
//
// 引用了目录中不存在的课程的选项会被跳过，并通过 unresolved 返回。
func (w *catalogWriter) ReplaceRequisites(ctx context.Context, rec *RequisiteUpsert) ([]string, error) {
	var unresolved []string

	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target model.Course
		if err := tx.Select("id").Where("course_id = ?", rec.CourseID).First(&target).Error; err != nil {
			return err
		}

		ids, err := resolveCourseIDs(tx, rec)
		if err != nil {
			return err
		}

		if err := tx.Where("course_id = ?", target.ID).Delete(&model.Prerequisite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", target.ID).Delete(&model.GradeRequirement{}).Error; err != nil {
			return err
		}

		var prereqs []model.Prerequisite
		for _, g := range rec.Groups {
			for _, opt := range g.Options {
				id, ok := ids[opt]
				if !ok {
					unresolved = append(unresolved, opt)
					continue
				}
				prereqs = append(prereqs, model.Prerequisite{
					CourseID:       target.ID,
					PrereqCourseID: id,
					PrereqGroup:    g.Group,
					IsCorequisite:  g.IsCorequisite,
				})
			}
		}
		if len(prereqs) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&prereqs).Error; err != nil {
				return err
			}
		}

		var grades []model.GradeRequirement
		for courseID, grade := range rec.GradeRequirements {
			if id, ok := ids[courseID]; ok {
				grades = append(grades, model.GradeRequirement{
					CourseID:         target.ID,
					RequiredCourseID: id,
					MinimumGrade:     grade,
				})
			}
		}
		if len(grades) > 0 {
			return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&grades).Error
		}
		return nil
	})
	return unresolved, err
}

func resolveCourseIDs(tx *gorm.DB, rec *RequisiteUpsert) (map[string]int64, error) {
	var wanted []string
	for _, g := range rec.Groups {
		wanted = append(wanted, g.Options...)
	}
	for id := range rec.GradeRequirements {
		wanted = append(wanted, id)
	}

	ids := make(map[string]int64, len(wanted))
	if len(wanted) == 0 {
		return ids, nil
	}

	var rows []struct {
		ID       int64
		CourseID string
	}
	if err := tx.Model(&model.Course{}).
		Select("id, course_id").
		Where("course_id IN ?", wanted).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		ids[row.CourseID] = row.ID
	}
	return ids, nil
}
