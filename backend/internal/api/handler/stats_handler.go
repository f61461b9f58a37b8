package handler

import (
	"github.com/gin-gonic/gin"

	"pathfinder/backend/internal/service"
	"pathfinder/backend/pkg/response"
)

// StatsHandler 目录统计 HTTP 处理器
type StatsHandler struct {
	statsSvc service.StatsService
}

// NewStatsHandler 创建 StatsHandler
func NewStatsHandler(statsSvc service.StatsService) *StatsHandler {
	return &StatsHandler{statsSvc: statsSvc}
}

// GetStats 获取目录统计
// GET /api/v1/stats
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.statsSvc.Summary(c.Request.Context())
	if err != nil {
		handleCommonError(c, err)
		return
	}

	response.OK(c, stats)
}
