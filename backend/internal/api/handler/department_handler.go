package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"pathfinder/backend/internal/service"
	"pathfinder/backend/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DepartmentHandler 院系模块 HTTP 处理器
type DepartmentHandler struct {
	deptSvc service.DepartmentService
}

// NewDepartmentHandler 创建 DepartmentHandler
func NewDepartmentHandler(deptSvc service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{deptSvc: deptSvc}
}

// ListDepartments 获取院系列表（含课程数）
// GET /api/v1/departments
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	depts, err := h.deptSvc.List(c.Request.Context())
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.OK(c, gin.H{"list": depts})
}

// ListCourses 获取院系课程
// GET /api/v1/departments/:code/courses
func (h *DepartmentHandler) ListCourses(c *gin.Context) {
	result, err := h.deptSvc.ListCourses(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.OK(c, result)
}

// ExportCourses 导出院系课程为 Excel
// GET /api/v1/departments/:code/courses/export
func (h *DepartmentHandler) ExportCourses(c *gin.Context) {
	buf, filename, err := h.deptSvc.ExportCourses(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	// 设置下载响应头
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// handleDepartmentError 统一处理院系模块业务错误
func (h *DepartmentHandler) handleDepartmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDepartmentNotFound):
		response.NotFound(c, 21001, "院系不存在")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		handleCommonError(c, err)
	}
}
