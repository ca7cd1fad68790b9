package app

import (
	"program_hub_backend/docs"
	"program_hub_backend/internal/config"
	"program_hub_backend/internal/middleware"
	"program_hub_backend/internal/model"
	"program_hub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 学员授权路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerLearnerRoutes(authGroup, c)
	}

	// 3. 管理员路由
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/banners", c.banner.ListActive)
	}
}

func (a *App) registerLearnerRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/programs", c.learner.ListPrograms)
	group.GET("/programs/:id", c.learner.GetProgram)
	group.POST("/programs/:id/responses", c.learner.SubmitResponse)
	group.POST("/programs/:id/elements/complete", c.learner.CompleteElement)
	group.POST("/programs/:id/completion", c.learner.SubmitCompletion)

	group.GET("/programs/:id/discussions", c.discussion.List)
	group.POST("/programs/:id/discussions", c.discussion.Post)
	group.DELETE("/discussions/:messageId", c.discussion.Delete)

	group.GET("/me", c.learner.Profile)
	group.GET("/me/progress", c.learner.MyProgress)
	group.POST("/me/vouchers/redeem", c.learner.RedeemVoucher)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/programs", c.program.CreateProgram)
		admin.GET("/programs", c.program.ListPrograms)
		admin.GET("/programs/:id", c.program.GetProgram)
		admin.PUT("/programs/:id", c.program.UpdateProgram)
		admin.DELETE("/programs/:id", c.program.DeleteProgram)

		admin.POST("/programs/:id/weeks", c.program.AddWeek)
		admin.PUT("/programs/:id/weeks/:weekId", c.program.UpdateWeek)
		admin.DELETE("/programs/:id/weeks/:weekId", c.program.RemoveWeek)

		admin.POST("/programs/:id/weeks/:weekId/elements", c.program.AddElement)
		admin.PUT("/programs/:id/weeks/:weekId/elements", c.program.UpdateElement)
		admin.POST("/programs/:id/weeks/:weekId/elements/placeholder", c.program.AddPlaceholder)
		admin.DELETE("/programs/:id/weeks/:weekId/elements/:elementId", c.program.RemoveElement)

		admin.POST("/programs/:id/image", c.program.UploadImage)
		admin.POST("/programs/:id/documents", c.program.UploadDocument)

		admin.POST("/vouchers", c.voucher.BulkCreate)
		admin.GET("/vouchers", c.voucher.ListByProgram)
		admin.POST("/vouchers/:id/use", c.voucher.MarkUsed)
		admin.POST("/vouchers/:id/void", c.voucher.Void)

		admin.GET("/reports/programs/:id", c.report.ProgramStats)
		admin.GET("/reports/progress", c.report.ProgressMatrix)
		admin.GET("/reports/users/:id", c.report.UserProgress)

		admin.GET("/banners", c.banner.ListAll)
		admin.POST("/banners", c.banner.Create)
		admin.PUT("/banners/:id", c.banner.Update)
		admin.DELETE("/banners/:id", c.banner.Delete)
	}
}
