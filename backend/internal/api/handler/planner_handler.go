package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"pathfinder/backend/internal/dto"
	"pathfinder/backend/internal/service"
	"pathfinder/backend/pkg/response"
)

// PlannerHandler 选课规划与通识教育 HTTP 处理器
type PlannerHandler struct {
	plannerSvc service.PlannerService
}

// NewPlannerHandler 创建 PlannerHandler
func NewPlannerHandler(plannerSvc service.PlannerService) *PlannerHandler {
	return &PlannerHandler{plannerSvc: plannerSvc}
}

// CheckPrerequisites 判定已修课程是否满足目标课程先修条件
// POST /api/v1/planner/check-prerequisites
func (h *PlannerHandler) CheckPrerequisites(c *gin.Context) {
	var req dto.CheckPrerequisitesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.plannerSvc.CheckPrerequisites(c.Request.Context(), &req)
	if err != nil {
		h.handlePlannerError(c, err)
		return
	}

	response.OK(c, result)
}

// ValidateSemester 校验一个学期的选课计划
// POST /api/v1/planner/validate-semester
func (h *PlannerHandler) ValidateSemester(c *gin.Context) {
	var req dto.ValidateSemesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.plannerSvc.ValidateSemester(c.Request.Context(), &req)
	if err != nil {
		h.handlePlannerError(c, err)
		return
	}

	response.OK(c, result)
}

// ListGenEds 获取通识教育要求目录
// GET /api/v1/gen-eds
func (h *PlannerHandler) ListGenEds(c *gin.Context) {
	response.OK(c, gin.H{"list": h.plannerSvc.GenEdCatalog()})
}

// GenEdProgress 计算通识教育完成情况
// POST /api/v1/gen-eds/progress
func (h *PlannerHandler) GenEdProgress(c *gin.Context) {
	var req dto.GenEdProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.plannerSvc.CheckGenEd(c.Request.Context(), &req)
	if err != nil {
		h.handlePlannerError(c, err)
		return
	}

	response.OK(c, result)
}

// handlePlannerError 统一处理选课规划模块业务错误
func (h *PlannerHandler) handlePlannerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 20001, "课程不存在")
	default:
		handleCommonError(c, err)
	}
}
