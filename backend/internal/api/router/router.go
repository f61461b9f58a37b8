package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pathfinder/backend/config"
	"pathfinder/backend/internal/api/handler"
	"pathfinder/backend/internal/api/middleware"
	"pathfinder/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时限流中间件降级放行
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger, "/health"))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// 查询与计算类接口的限流
	limited := func(c *gin.Context) { c.Next() }
	if rl := cfg.Server.RateLimit; rl.Enabled {
		limited = middleware.RateLimit(rdb, rl.Requests, rl.Window, logger)
	}

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 课程模块
		courses := v1.Group("/courses")
		{
			courses.GET("/search", limited, h.Course.SearchCourses)
			courses.GET("/:course_id", h.Course.GetCourse)
			courses.GET("/:course_id/prerequisites", h.Course.GetPrerequisites)
			courses.GET("/:course_id/graph", h.Course.GetGraph)
			courses.GET("/:course_id/paths", h.Course.GetPaths)
		}

		// 院系模块
		departments := v1.Group("/departments")
		{
			departments.GET("", h.Department.ListDepartments)
			departments.GET("/:code/courses", h.Department.ListCourses)
			departments.GET("/:code/courses/export", limited, h.Department.ExportCourses)
		}

		// 培养方案模块
		programs := v1.Group("/programs")
		{
			programs.GET("", h.Program.SearchPrograms)
			programs.GET("/:program_id", h.Program.GetProgram)
			programs.GET("/:program_id/requirements", h.Program.GetRequirements)
			programs.POST("/:program_id/progress", limited, h.Program.ComputeProgress)
		}

		// 选课规划模块
		planner := v1.Group("/planner")
		planner.Use(limited)
		{
			planner.POST("/check-prerequisites", h.Planner.CheckPrerequisites)
			planner.POST("/validate-semester", h.Planner.ValidateSemester)
		}

		// 通识教育模块
		genEds := v1.Group("/gen-eds")
		{
			genEds.GET("", h.Planner.ListGenEds)
			genEds.POST("/progress", limited, h.Planner.GenEdProgress)
		}

		// 目录统计
		v1.GET("/stats", h.Stats.GetStats)
	}

	return r
}
