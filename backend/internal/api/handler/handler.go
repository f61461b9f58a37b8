package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"pathfinder/backend/internal/service"
	pkgerrors "pathfinder/backend/pkg/errors"
	"pathfinder/backend/pkg/response"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Course     *CourseHandler
	Department *DepartmentHandler
	Program    *ProgramHandler
	Planner    *PlannerHandler
	Stats      *StatsHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Course:     NewCourseHandler(svc.Course),
		Department: NewDepartmentHandler(svc.Department),
		Program:    NewProgramHandler(svc.Program),
		Planner:    NewPlannerHandler(svc.Planner),
		Stats:      NewStatsHandler(svc.Stats),
	}
}

// handleCommonError 各模块 handleXError 的兜底分支：存储不可用返回 503，其余 500
func handleCommonError(c *gin.Context, err error) {
	if errors.Is(err, pkgerrors.ErrStoreUnavailable) {
		response.ServiceUnavailable(c, 50300, "课程目录数据暂不可用，请稍后重试")
		return
	}
	response.InternalError(c)
}
