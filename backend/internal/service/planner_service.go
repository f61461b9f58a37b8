package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"pathfinder/backend/config"
	"pathfinder/backend/internal/dto"
	"pathfinder/backend/internal/model"
	"pathfinder/backend/internal/planner"
	"pathfinder/backend/internal/repository"
)

// PlannerService 选课规划业务接口：先修判定、学期校验、通识完成情况
type PlannerService interface {
	CheckPrerequisites(ctx context.Context, req *dto.CheckPrerequisitesRequest) (*dto.CheckPrerequisitesResponse, error)
	// ValidateSemester 目录中不存在的课程记为无效并附带警告，不会使整个请求失败
	ValidateSemester(ctx context.Context, req *dto.ValidateSemesterRequest) (*dto.ValidateSemesterResponse, error)
	GenEdCatalog() []dto.GenEdCatalogEntry
	CheckGenEd(ctx context.Context, req *dto.GenEdProgressRequest) (*dto.GenEdProgressResponse, error)
}

type plannerService struct {
	cfg       *config.CatalogConfig
	repo      *repository.Repository
	catalog   *planner.GenEdCatalog
	evaluator planner.Evaluator
	logger    *zap.Logger
}

// NewPlannerService 创建 PlannerService 实例
//
// evaluator 注入 GradePolicy 后才会查询并校验最低成绩要求。
func NewPlannerService(
	cfg *config.CatalogConfig,
	repo *repository.Repository,
	catalog *planner.GenEdCatalog,
	evaluator planner.Evaluator,
	logger *zap.Logger,
) PlannerService {
	return &plannerService{cfg: cfg, repo: repo, catalog: catalog, evaluator: evaluator, logger: logger}
}

// ────────────────────── CheckPrerequisites ──────────────────────

func (s *plannerService) CheckPrerequisites(ctx context.Context, req *dto.CheckPrerequisitesRequest) (*dto.CheckPrerequisitesResponse, error) {
	course, err := findCourse(ctx, s.repo, s.logger, req.CourseID)
	if err != nil {
		return nil, err
	}

	groups, err := s.repo.Prerequisite.ListGroups(ctx, course.ID)
	if err != nil {
		return nil, storeFailure(s.logger, "查询先修条件", err, zap.String("course_id", course.CourseID))
	}

	var grades map[string]string
	if s.evaluator.Grades != nil {
		reqs, err := s.repo.Prerequisite.ListGradeRequirements(ctx, course.ID)
		if err != nil {
			return nil, storeFailure(s.logger, "查询成绩要求", err, zap.String("course_id", course.CourseID))
		}
		grades = make(map[string]string, len(reqs))
		for _, r := range reqs {
			grades[planner.NormalizeCourseID(r.CourseID)] = r.MinimumGrade
		}
	}

	result := s.evaluator.Evaluate(toPlannerGroups(groups, grades), planner.NewCourseSet(req.CompletedCourses))
	return &dto.CheckPrerequisitesResponse{
		CourseID:             course.CourseID,
		CanTake:              result.CanTake,
		MissingPrerequisites: result.Missing,
		Warnings:             result.Warnings,
		Corequisites:         result.Corequisites,
	}, nil
}

func toPlannerGroups(groups []model.PrerequisiteGroup, grades map[string]string) []planner.PrerequisiteGroup {
	out := make([]planner.PrerequisiteGroup, 0, len(groups))
	for _, g := range groups {
		pg := planner.PrerequisiteGroup{
			Group:         g.PrereqGroup,
			IsCorequisite: g.IsCorequisite,
			Options:       make([]string, 0, len(g.Courses)),
			MinimumGrades: grades,
		}
		for _, opt := range g.Courses {
			pg.Options = append(pg.Options, opt.CourseID)
		}
		out = append(out, pg)
	}
	return out
}

// ────────────────────── ValidateSemester ──────────────────────

func (s *plannerService) ValidateSemester(ctx context.Context, req *dto.ValidateSemesterRequest) (*dto.ValidateSemesterResponse, error) {
	ids := make([]string, 0, len(req.CourseIDs))
	for _, id := range req.CourseIDs {
		ids = append(ids, planner.NormalizeCourseID(id))
	}

	courses, err := s.repo.Course.ListByIDs(ctx, ids)
	if err != nil {
		return nil, storeFailure(s.logger, "批量查询课程", err)
	}
	byID := make(map[string]model.Course, len(courses))
	pks := make([]int64, 0, len(courses))
	for _, c := range courses {
		byID[c.CourseID] = c
		pks = append(pks, c.ID)
	}

	groupsByCourse, err := s.repo.Prerequisite.ListGroupsForCourses(ctx, pks)
	if err != nil {
		return nil, storeFailure(s.logger, "批量查询先修条件", err)
	}

	input := make([]planner.CourseRequisites, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			input = append(input, planner.CourseRequisites{CourseID: id, NotFound: true})
			continue
		}
		input = append(input, planner.CourseRequisites{
			CourseID: c.CourseID,
			Groups:   toPlannerGroups(groupsByCourse[c.ID], nil),
		})
	}

	result := s.evaluator.ValidateSemester(input, planner.NewCourseSet(req.CompletedCourses))
	resp := &dto.ValidateSemesterResponse{
		AllValid: result.AllValid,
		Courses:  make([]dto.SemesterCourseResult, 0, len(result.PerCourse)),
	}
	for _, c := range result.PerCourse {
		resp.Courses = append(resp.Courses, dto.SemesterCourseResult{
			CourseID:             c.CourseID,
			Valid:                c.Valid,
			MissingPrerequisites: c.Missing,
			Warnings:             c.Warnings,
		})
	}
	return resp, nil
}

// ────────────────────── Gen-Ed ──────────────────────

func (s *plannerService) GenEdCatalog() []dto.GenEdCatalogEntry {
	reqs := s.catalog.Requirements()
	out := make([]dto.GenEdCatalogEntry, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, dto.GenEdCatalogEntry{
			Code:        r.Code,
			Name:        r.Name,
			Required:    r.Required,
			Description: r.Description,
		})
	}
	return out
}

func (s *plannerService) CheckGenEd(ctx context.Context, req *dto.GenEdProgressRequest) (*dto.GenEdProgressResponse, error) {
	completed := planner.NewCourseSet(req.CompletedCourses)

	index, err := s.repo.GenEd.ListFulfillments(ctx, completed.Sorted())
	if err != nil {
		return nil, storeFailure(s.logger, "查询通识对应关系", err)
	}

	lookup := func(code string, excluding []string, limit int) ([]string, error) {
		return s.repo.GenEd.ListAvailableCourses(ctx, code, excluding, limit)
	}
	result, err := planner.CheckGenEd(s.catalog, completed, index, lookup, s.cfg.GenEdAvailable)
	if err != nil {
		return nil, storeFailure(s.logger, "查询通识备选课程", err)
	}

	resp := &dto.GenEdProgressResponse{
		Requirements:   make([]dto.GenEdRequirementStatus, 0, len(result.Requirements)),
		CompletedCount: result.CompletedCount,
		TotalCount:     result.TotalCount,
	}
	for _, r := range result.Requirements {
		resp.Requirements = append(resp.Requirements, dto.GenEdRequirementStatus{
			Code:             r.Code,
			Name:             r.Name,
			Required:         r.Required,
			Description:      strings.TrimSpace(r.Description),
			Fulfilled:        r.Fulfilled,
			CoursesTaken:     r.CoursesTaken,
			CoursesAvailable: r.CoursesAvailable,
		})
	}
	return resp, nil
}
