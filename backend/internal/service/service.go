package service

import (
	"go.uber.org/zap"

	"pathfinder/backend/config"
	"pathfinder/backend/internal/planner"
	"pathfinder/backend/internal/repository"
	pkgerrors "pathfinder/backend/pkg/errors"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Course     CourseService
	Department DepartmentService
	Program    ProgramService
	Planner    PlannerService
	Stats      StatsService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	catalog *planner.GenEdCatalog,
	logger *zap.Logger,
) *Service {
	return &Service{
		Course:     NewCourseService(&cfg.Catalog, repo, logger),
		Department: NewDepartmentService(repo, logger),
		Program:    NewProgramService(&cfg.Catalog, repo, logger),
		Planner:    NewPlannerService(&cfg.Catalog, repo, catalog, planner.Evaluator{}, logger),
		Stats:      NewStatsService(repo, logger),
	}
}

// storeFailure 记录存储层错误并包装为 ErrStoreUnavailable
func storeFailure(logger *zap.Logger, op string, err error, fields ...zap.Field) error {
	logger.Error(op+"失败", append(fields, zap.Error(err))...)
	return pkgerrors.WrapStore(op, err)
}
