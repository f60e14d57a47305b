package app

import (
	"skillpath_backend/docs"
	"skillpath_backend/internal/config"
	"skillpath_backend/internal/middleware"
	"skillpath_backend/internal/model"
	"skillpath_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const employeeIDParam = "employeeId"

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	auth := middleware.AuthMiddleware(cfg.JWT.Secret)

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c, auth)

	// 2. 员工档案
	a.registerEmployeeRoutes(router, c, auth)

	// 3. 学习者接口
	a.registerLearnerRoutes(router, c, auth)

	// 4. 管理员相关接口
	a.registerAdminRoutes(router, c, auth)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, auth gin.HandlerFunc) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
	}

	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/register", c.auth.Register)
		authGroup.POST("/login", c.auth.Login)
		authGroup.POST("/refresh", c.auth.Refresh)
		authGroup.GET("/me", auth, c.auth.Me)
	}
}

func (a *App) registerEmployeeRoutes(router *gin.Engine, c *controllers, auth gin.HandlerFunc) {
	employees := router.Group("/api/employees")
	{
		employees.GET("/public", c.employee.ListPublic)

		admin := employees.Group("")
		admin.Use(auth, middleware.RoleMiddleware(model.RoleAdmin))
		{
			admin.GET("", c.employee.List)
			admin.POST("", c.employee.Create)
		}

		self := employees.Group("/:" + employeeIDParam)
		self.Use(auth, middleware.EmployeeAccess(employeeIDParam))
		{
			self.GET("", c.employee.Get)
			self.PUT("", c.employee.Update)
			self.PATCH("", c.employee.Update)
		}
	}
}

func (a *App) registerLearnerRoutes(router *gin.Engine, c *controllers, auth gin.HandlerFunc) {
	learner := router.Group("/api/learner/:" + employeeIDParam)
	learner.Use(auth, middleware.EmployeeAccess(employeeIDParam))
	{
		learner.GET("/dashboard", c.learner.Dashboard)
		learner.POST("/learning-path/generate", c.learner.GenerateLearningPath)
		learner.GET("/learning-path", c.learner.LearningPath)
		learner.GET("/workflow", c.learner.Workflow)
		learner.GET("/progress-bar", c.learner.ProgressBar)

		assessment := learner.Group("/assessment")
		{
			assessment.POST("/start", c.assessment.Start)
			assessment.POST("/generate", c.assessment.Generate)
			assessment.POST("/submit", c.assessment.Submit)
			assessment.GET("/results", c.assessment.Results)
		}

		learning := learner.Group("/learning/:contentId")
		{
			learning.POST("/start", c.learner.StartContent)
			learning.POST("/complete", c.learner.CompleteContent)
		}
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, auth gin.HandlerFunc) {
	admin := router.Group("/api/admin")
	admin.Use(auth, middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.GET("/analytics", c.analytics.Summary)
		admin.GET("/analytics/export", c.analytics.Export)
		admin.GET("/employees/:"+employeeIDParam+"/events", c.analytics.Events)

		admin.GET("/skills", c.content.ListSkills)
		admin.POST("/skills", c.content.CreateSkill)
		admin.GET("/role-profiles", c.content.ListRoleProfiles)
		admin.PUT("/role-profiles", c.content.UpsertRoleProfile)
		admin.GET("/contents", c.content.ListContents)
		admin.POST("/contents", c.content.CreateContent)
		admin.POST("/contents/:contentId/media", c.content.UploadMedia)
	}
}
