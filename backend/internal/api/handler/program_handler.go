package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"pathfinder/backend/internal/dto"
	"pathfinder/backend/internal/service"
	"pathfinder/backend/pkg/response"
)

// ProgramHandler 培养方案模块 HTTP 处理器
type ProgramHandler struct {
	programSvc service.ProgramService
}

// NewProgramHandler 创建 ProgramHandler
func NewProgramHandler(programSvc service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programSvc: programSvc}
}

// SearchPrograms 搜索培养方案
// GET /api/v1/programs?q=xxx&program_type=major
func (h *ProgramHandler) SearchPrograms(c *gin.Context) {
	var req dto.ProgramSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	programs, err := h.programSvc.Search(c.Request.Context(), &req)
	if err != nil {
		h.handleProgramError(c, err)
		return
	}

	response.OK(c, gin.H{"list": programs})
}

// GetProgram 获取培养方案详情
// GET /api/v1/programs/:program_id
func (h *ProgramHandler) GetProgram(c *gin.Context) {
	program, err := h.programSvc.Get(c.Request.Context(), c.Param("program_id"))
	if err != nil {
		h.handleProgramError(c, err)
		return
	}

	response.OK(c, program)
}

// GetRequirements 获取培养方案要求
// GET /api/v1/programs/:program_id/requirements
func (h *ProgramHandler) GetRequirements(c *gin.Context) {
	result, err := h.programSvc.Requirements(c.Request.Context(), c.Param("program_id"))
	if err != nil {
		h.handleProgramError(c, err)
		return
	}

	response.OK(c, result)
}

// ComputeProgress 计算培养方案完成进度
// POST /api/v1/programs/:program_id/progress
func (h *ProgramHandler) ComputeProgress(c *gin.Context) {
	var req dto.ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.programSvc.Progress(c.Request.Context(), c.Param("program_id"), &req)
	if err != nil {
		h.handleProgramError(c, err)
		return
	}

	response.OK(c, result)
}

// handleProgramError 统一处理培养方案模块业务错误
func (h *ProgramHandler) handleProgramError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProgramNotFound):
		response.NotFound(c, 22001, "培养方案不存在")
	default:
		handleCommonError(c, err)
	}
}
