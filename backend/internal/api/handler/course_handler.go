package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"pathfinder/backend/internal/dto"
	"pathfinder/backend/internal/service"
	"pathfinder/backend/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// SearchCourses 搜索课程
// GET /api/v1/courses/search?q=xxx&limit=20
func (h *CourseHandler) SearchCourses(c *gin.Context) {
	var req dto.CourseSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	courses, err := h.courseSvc.Search(c.Request.Context(), &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, gin.H{"list": courses})
}

// GetCourse 获取课程详情
// GET /api/v1/courses/:course_id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	course, err := h.courseSvc.Get(c.Request.Context(), c.Param("course_id"))
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, course)
}

// GetPrerequisites 获取课程先修 / 同修条件
// GET /api/v1/courses/:course_id/prerequisites
func (h *CourseHandler) GetPrerequisites(c *gin.Context) {
	result, err := h.courseSvc.GetPrerequisites(c.Request.Context(), c.Param("course_id"))
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, result)
}

// GetGraph 获取课程先修关系图
// GET /api/v1/courses/:course_id/graph?depth=2
func (h *CourseHandler) GetGraph(c *gin.Context) {
	var req dto.CourseGraphRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	graph, err := h.courseSvc.Graph(c.Request.Context(), c.Param("course_id"), &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, graph)
}

// GetPaths 查询课程经先修链到达另一门课程的路径
// GET /api/v1/courses/:course_id/paths?to=MATH%20231&max_depth=5
func (h *CourseHandler) GetPaths(c *gin.Context) {
	var req dto.CoursePathsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.courseSvc.Paths(c.Request.Context(), c.Param("course_id"), &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, result)
}

// handleCourseError 统一处理课程模块业务错误
func (h *CourseHandler) handleCourseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 20001, "课程不存在")
	default:
		handleCommonError(c, err)
	}
}
