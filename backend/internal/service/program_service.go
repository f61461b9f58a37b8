package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"pathfinder/backend/config"
	"pathfinder/backend/internal/dto"
	"pathfinder/backend/internal/model"
	"pathfinder/backend/internal/planner"
	"pathfinder/backend/internal/repository"
)

// ── 培养方案模块业务错误 ──

var ErrProgramNotFound = errors.New("培养方案不存在")

// ProgramService 培养方案业务接口
type ProgramService interface {
	Search(ctx context.Context, req *dto.ProgramSearchRequest) ([]model.Program, error)
	Get(ctx context.Context, programID string) (*model.Program, error)
	Requirements(ctx context.Context, programID string) (*dto.ProgramRequirementsResponse, error)
	// Progress 计算扁平学分进度；不判定类别层面的 min_credits / min_courses
	Progress(ctx context.Context, programID string, req *dto.ProgressRequest) (*dto.ProgressResponse, error)
}

type programService struct {
	cfg    *config.CatalogConfig
	repo   *repository.Repository
	logger *zap.Logger
}

// NewProgramService 创建 ProgramService 实例
func NewProgramService(cfg *config.CatalogConfig, repo *repository.Repository, logger *zap.Logger) ProgramService {
	return &programService{cfg: cfg, repo: repo, logger: logger}
}

// ────────────────────── Search ──────────────────────

func (s *programService) Search(ctx context.Context, req *dto.ProgramSearchRequest) ([]model.Program, error) {
	q := strings.TrimSpace(req.Q)
	programs, err := s.repo.Program.Search(ctx, q, req.ProgramType, s.cfg.ProgramSearchLimit)
	if err != nil {
		return nil, storeFailure(s.logger, "搜索培养方案", err, zap.String("q", q))
	}
	return programs, nil
}

// ────────────────────── Get ──────────────────────

func (s *programService) Get(ctx context.Context, programID string) (*model.Program, error) {
	id := strings.TrimSpace(programID)
	if id == "" {
		return nil, ErrProgramNotFound
	}
	program, err := s.repo.Program.GetByProgramID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, storeFailure(s.logger, "查询培养方案", err, zap.String("program_id", id))
	}
	return program, nil
}

// ────────────────────── Requirements ──────────────────────

func (s *programService) Requirements(ctx context.Context, programID string) (*dto.ProgramRequirementsResponse, error) {
	program, reqs, err := s.loadRequirements(ctx, programID)
	if err != nil {
		return nil, err
	}

	byType := make(map[string][]model.ProgramRequirement)
	for _, r := range reqs {
		byType[r.RequirementType] = append(byType[r.RequirementType], r)
	}

	return &dto.ProgramRequirementsResponse{
		Program:            program,
		RequirementsByType: byType,
		AllRequirements:    reqs,
	}, nil
}

func (s *programService) loadRequirements(ctx context.Context, programID string) (*model.Program, []model.ProgramRequirement, error) {
	program, err := s.Get(ctx, programID)
	if err != nil {
		return nil, nil, err
	}
	reqs, err := s.repo.Program.ListRequirements(ctx, program.ID)
	if err != nil {
		return nil, nil, storeFailure(s.logger, "查询培养方案要求", err, zap.String("program_id", program.ProgramID))
	}
	return program, reqs, nil
}

// ────────────────────── Progress ──────────────────────

func (s *programService) Progress(ctx context.Context, programID string, req *dto.ProgressRequest) (*dto.ProgressResponse, error) {
	program, reqs, err := s.loadRequirements(ctx, programID)
	if err != nil {
		return nil, err
	}

	totalHours := 0
	if program.TotalHours != nil {
		totalHours = *program.TotalHours
	}

	result := planner.ComputeProgress(
		totalHours,
		toPlannerRequirements(reqs),
		planner.NewCourseSet(req.CompletedCourses),
		planner.NewCourseSet(req.PlannedCourses),
		s.cfg.DefaultTotalHours,
	)

	resp := &dto.ProgressResponse{
		Program:              program,
		TotalRequiredCredits: result.TotalRequired,
		CompletedCredits:     result.CompletedCredits,
		PlannedCredits:       result.PlannedCredits,
		CompletionPercentage: result.Percentage,
		Requirements:         make([]dto.RequirementProgress, 0, len(reqs)),
	}
	for i, r := range reqs {
		annotated := result.Requirements[i]
		courses := make([]dto.RequirementCourseProgress, 0, len(r.Courses))
		for j, c := range r.Courses {
			courses = append(courses, dto.RequirementCourseProgress{
				CourseID:    c.CourseID,
				CourseName:  c.CourseName,
				Credits:     c.Credits,
				IsRequired:  c.IsRequired,
				IsCompleted: annotated.Courses[j].IsCompleted,
				IsPlanned:   annotated.Courses[j].IsPlanned,
			})
		}
		resp.Requirements = append(resp.Requirements, dto.RequirementProgress{
			ID:                r.ID,
			RequirementType:   r.RequirementType,
			CategoryName:      r.CategoryName,
			MinCredits:        r.MinCredits,
			MinCourses:        r.MinCourses,
			SelectionNotes:    r.SelectionNotes,
			LevelRequirement:  r.LevelRequirement,
			OtherRestrictions: r.OtherRestrictions,
			DisplayOrder:      r.DisplayOrder,
			Courses:           courses,
		})
	}
	return resp, nil
}

func toPlannerRequirements(reqs []model.ProgramRequirement) []planner.Requirement {
	out := make([]planner.Requirement, 0, len(reqs))
	for _, r := range reqs {
		pr := planner.Requirement{
			ID:                r.ID,
			RequirementType:   r.RequirementType,
			CategoryName:      deref(r.CategoryName),
			MinCredits:        r.MinCredits,
			MinCourses:        r.MinCourses,
			SelectionNotes:    deref(r.SelectionNotes),
			LevelRequirement:  deref(r.LevelRequirement),
			OtherRestrictions: deref(r.OtherRestrictions),
			DisplayOrder:      r.DisplayOrder,
			Courses:           make([]planner.RequirementCourse, 0, len(r.Courses)),
		}
		for _, c := range r.Courses {
			pr.Courses = append(pr.Courses, planner.RequirementCourse{
				CourseID:   c.CourseID,
				Name:       c.CourseName,
				Credits:    deref(c.Credits),
				IsRequired: c.IsRequired,
			})
		}
		out = append(out, pr)
	}
	return out
}
