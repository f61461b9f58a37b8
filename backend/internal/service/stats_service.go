package service

import (
	"context"

	"go.uber.org/zap"

	"pathfinder/backend/internal/model"
	"pathfinder/backend/internal/repository"
)

// StatsService 目录统计业务接口
type StatsService interface {
	Summary(ctx context.Context) (*model.CatalogStats, error)
}

type statsService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStatsService 创建 StatsService 实例
func NewStatsService(repo *repository.Repository, logger *zap.Logger) StatsService {
	return &statsService{repo: repo, logger: logger}
}

func (s *statsService) Summary(ctx context.Context) (*model.CatalogStats, error) {
	stats, err := s.repo.Stats.Summary(ctx)
	if err != nil {
		return nil, storeFailure(s.logger, "查询目录统计", err)
	}
	return stats, nil
}
