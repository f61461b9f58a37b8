package ingest

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"pathfinder/backend/internal/model"
	"pathfinder/backend/internal/repository"
)

// Summary 一次导入的统计
type Summary struct {
	Courses    int
	Requisites int
	Unresolved []string // "COMP 211 → COMP 999" 形式，引用了目录中不存在的课程
}

// Loader 将解析结果写入课程目录
type Loader struct {
	writer repository.CatalogWriter
	logger *zap.Logger
}

// NewLoader 创建 Loader
func NewLoader(writer repository.CatalogWriter, logger *zap.Logger) *Loader {
	return &Loader{writer: writer, logger: logger}
}

// Load 分两阶段导入：先写入全部课程，再写入先修条件，
// 保证同一批页面之间的交叉引用都能解析到课程。
func (l *Loader) Load(ctx context.Context, pages []*Page) (*Summary, error) {
	summary := &Summary{}

	// ── 阶段一：课程 ──
	for _, page := range pages {
		var deptName *string
		if page.DepartmentName != "" {
			deptName = &page.DepartmentName
		}
		for i := range page.Courses {
			block := &page.Courses[i]
			rec := &repository.CourseUpsert{
				DepartmentCode: block.DepartmentCode,
				Course: model.Course{
					CourseID:      block.CourseID,
					CourseNumber:  block.CourseNumber,
					Name:          block.Name,
					Credits:       optional(block.Credits),
					Description:   optional(block.Description),
					GradingStatus: optional(block.GradingStatus),
				},
				GenEds: block.GenEds,
			}
			if block.DepartmentCode == page.DepartmentCode {
				rec.DepartmentName = deptName
			}
			if err := l.writer.UpsertCourse(ctx, rec); err != nil {
				return summary, fmt.Errorf("写入课程 %s 失败: %w", block.CourseID, err)
			}
			summary.Courses++
		}
	}
	l.logger.Info("课程写入完成", zap.Int("courses", summary.Courses))

	// ── 阶段二：先修 / 同修条件 ──
	for _, page := range pages {
		for i := range page.Courses {
			block := &page.Courses[i]
			rec := toRequisiteUpsert(block)
			unresolved, err := l.writer.ReplaceRequisites(ctx, rec)
			if err != nil {
				return summary, fmt.Errorf("写入 %s 先修条件失败: %w", block.CourseID, err)
			}
			if len(rec.Groups) > 0 {
				summary.Requisites++
			}
			for _, id := range unresolved {
				summary.Unresolved = append(summary.Unresolved, block.CourseID+" → "+id)
			}
		}
	}
	sort.Strings(summary.Unresolved)

	if len(summary.Unresolved) > 0 {
		l.logger.Warn("部分先修课程不在目录中，已跳过",
			zap.Int("count", len(summary.Unresolved)),
			zap.Strings("references", summary.Unresolved),
		)
	}
	l.logger.Info("先修条件写入完成", zap.Int("courses_with_requisites", summary.Requisites))
	return summary, nil
}

// toRequisiteUpsert 先修组从 1 开始编号，同修组接续编号
func toRequisiteUpsert(block *CourseBlock) *repository.RequisiteUpsert {
	rec := &repository.RequisiteUpsert{
		CourseID:          block.CourseID,
		GradeRequirements: block.Requisites.MinimumGrades,
	}
	group := 0
	for _, opts := range block.Requisites.Prerequisites {
		group++
		rec.Groups = append(rec.Groups, repository.RequisiteGroup{Group: group, Options: opts})
	}
	for _, opts := range block.Requisites.Corequisites {
		group++
		rec.Groups = append(rec.Groups, repository.RequisiteGroup{Group: group, IsCorequisite: true, Options: opts})
	}
	return rec
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
