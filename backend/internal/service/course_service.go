package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"pathfinder/backend/config"
	"pathfinder/backend/internal/dto"
	"pathfinder/backend/internal/model"
	"pathfinder/backend/internal/planner"
	"pathfinder/backend/internal/repository"
	pkgerrors "pathfinder/backend/pkg/errors"
)

// ── 课程模块业务错误 ──

var ErrCourseNotFound = errors.New("课程不存在")

// CourseService 课程查询业务接口
type CourseService interface {
	Get(ctx context.Context, courseID string) (*model.Course, error)
	// Search 查询串去空白后短于最小长度时直接返回空列表，不访问数据库
	Search(ctx context.Context, req *dto.CourseSearchRequest) ([]model.Course, error)
	GetPrerequisites(ctx context.Context, courseID string) (*dto.CoursePrerequisitesResponse, error)
	Graph(ctx context.Context, courseID string, req *dto.CourseGraphRequest) (*model.CourseGraph, error)
	// Paths 列出 courseID 经先修链到达 req.To 的路径，按步数升序
	Paths(ctx context.Context, courseID string, req *dto.CoursePathsRequest) (*dto.CoursePathsResponse, error)
}

type courseService struct {
	cfg    *config.CatalogConfig
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(cfg *config.CatalogConfig, repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{cfg: cfg, repo: repo, logger: logger}
}

// ────────────────────── Get ──────────────────────

func (s *courseService) Get(ctx context.Context, courseID string) (*model.Course, error) {
	return findCourse(ctx, s.repo, s.logger, courseID)
}

// findCourse 按规范化后的课程编号查询，不存在时返回 ErrCourseNotFound
func findCourse(ctx context.Context, repo *repository.Repository, logger *zap.Logger, courseID string) (*model.Course, error) {
	id := planner.NormalizeCourseID(courseID)
	if id == "" {
		return nil, ErrCourseNotFound
	}
	course, err := repo.Course.GetByCourseID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, storeFailure(logger, "查询课程", err, zap.String("course_id", id))
	}
	return course, nil
}

// ────────────────────── Search ──────────────────────

func (s *courseService) Search(ctx context.Context, req *dto.CourseSearchRequest) ([]model.Course, error) {
	q := strings.TrimSpace(req.Q)
	if utf8.RuneCountInString(q) < s.cfg.SearchMinQueryLen {
		return []model.Course{}, nil
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.cfg.SearchDefaultLimit
	}
	if limit > s.cfg.SearchMaxLimit {
		limit = s.cfg.SearchMaxLimit
	}

	courses, err := s.repo.Course.Search(ctx, q, limit)
	if err != nil {
		if !pkgerrors.IsFullTextUnavailable(err) {
			return nil, storeFailure(s.logger, "全文检索课程", err, zap.String("q", q))
		}
		s.logger.Warn("全文检索不可用，回退为模糊匹配", zap.Error(err))
	}
	if len(courses) > 0 {
		return courses, nil
	}

	courses, err = s.repo.Course.SearchFallback(ctx, q, limit)
	if err != nil {
		return nil, storeFailure(s.logger, "模糊检索课程", err, zap.String("q", q))
	}
	return courses, nil
}

// ────────────────────── GetPrerequisites ──────────────────────

func (s *courseService) GetPrerequisites(ctx context.Context, courseID string) (*dto.CoursePrerequisitesResponse, error) {
	course, err := findCourse(ctx, s.repo, s.logger, courseID)
	if err != nil {
		return nil, err
	}

	groups, err := s.repo.Prerequisite.ListGroups(ctx, course.ID)
	if err != nil {
		return nil, storeFailure(s.logger, "查询先修条件", err, zap.String("course_id", course.CourseID))
	}
	grades, err := s.repo.Prerequisite.ListGradeRequirements(ctx, course.ID)
	if err != nil {
		return nil, storeFailure(s.logger, "查询成绩要求", err, zap.String("course_id", course.CourseID))
	}

	resp := &dto.CoursePrerequisitesResponse{
		CourseID:           course.CourseID,
		PrerequisiteGroups: []model.PrerequisiteGroup{},
		CorequisiteGroups:  []model.PrerequisiteGroup{},
		GradeRequirements:  grades,
	}
	for _, g := range groups {
		if g.IsCorequisite {
			resp.CorequisiteGroups = append(resp.CorequisiteGroups, g)
		} else {
			resp.PrerequisiteGroups = append(resp.PrerequisiteGroups, g)
		}
	}
	return resp, nil
}

// ────────────────────── Graph ──────────────────────

func (s *courseService) Graph(ctx context.Context, courseID string, req *dto.CourseGraphRequest) (*model.CourseGraph, error) {
	course, err := findCourse(ctx, s.repo, s.logger, courseID)
	if err != nil {
		return nil, err
	}

	depth := req.Depth
	if depth <= 0 {
		depth = s.cfg.GraphDefaultDepth
	}
	if depth > s.cfg.GraphMaxDepth {
		depth = s.cfg.GraphMaxDepth
	}

	graph, err := s.repo.Stats.PrerequisiteGraph(ctx, course, depth)
	if err != nil {
		return nil, storeFailure(s.logger, "查询先修关系图", err, zap.String("course_id", course.CourseID))
	}
	return graph, nil
}

// ────────────────────── Paths ──────────────────────

func (s *courseService) Paths(ctx context.Context, courseID string, req *dto.CoursePathsRequest) (*dto.CoursePathsResponse, error) {
	from, err := findCourse(ctx, s.repo, s.logger, courseID)
	if err != nil {
		return nil, err
	}
	to, err := findCourse(ctx, s.repo, s.logger, req.To)
	if err != nil {
		return nil, err
	}

	maxDepth := req.MaxDepth
	if maxDepth <= 0 || maxDepth > s.cfg.GraphMaxDepth {
		maxDepth = s.cfg.GraphMaxDepth
	}

	paths, err := s.repo.Stats.CoursePaths(ctx, from, to, maxDepth)
	if err != nil {
		return nil, storeFailure(s.logger, "查询先修路径", err,
			zap.String("from", from.CourseID), zap.String("to", to.CourseID))
	}
	return &dto.CoursePathsResponse{From: from.CourseID, To: to.CourseID, Paths: paths}, nil
}
