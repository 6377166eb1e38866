package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"meesho-recon/internal/middleware"
	"meesho-recon/internal/service"
	"meesho-recon/pkg/monitoring"
)

// Services are the dependencies of the HTTP surface.
type Services struct {
	Sessions       service.SessionService
	Uploads        service.UploadService
	Analytics      service.AnalyticsService
	Reconciliation service.ReconciliationService
	Exports        service.ExportService
}

// RouterConfig carries the cookie and upload settings of the router.
type RouterConfig struct {
	SessionSecret     string
	SessionMaxAge     int
	MaxMultipartBytes int64
}

func SetupRouter(svc Services, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	if cfg.MaxMultipartBytes > 0 {
		router.MaxMultipartMemory = cfg.MaxMultipartBytes
	}

	// Global middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(monitoring.PrometheusMiddleware())
	router.Use(middleware.ErrorHandler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/metrics", monitoring.Handler())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	sessionHandler := NewSessionHandler(svc.Sessions)
	uploadHandler := NewUploadHandler(svc.Uploads)
	analyticsHandler := NewAnalyticsHandler(svc.Analytics)
	reconHandler := NewReconciliationHandler(svc.Reconciliation)
	exportHandler := NewExportHandler(svc.Exports)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Sessions(cfg.SessionSecret, cfg.SessionMaxAge))
	{
		v1.POST("/sessions", sessionHandler.CreateSession)
		v1.GET("/exports/formats", exportHandler.GetFormats)

		scoped := v1.Group("")
		scoped.Use(middleware.RequireSession(svc.Sessions))
		{
			scoped.GET("/sessions/current", sessionHandler.GetSession)
			scoped.DELETE("/sessions/current", sessionHandler.DeleteSession)

			scoped.POST("/uploads/:set", uploadHandler.Upload)

			scoped.POST("/sku-groups", analyticsHandler.CreateSKUGroup)
			scoped.DELETE("/sku-groups", analyticsHandler.ClearSKUGroups)
			scoped.DELETE("/sku-groups/:name", analyticsHandler.DeleteSKUGroup)
			scoped.PUT("/filters", analyticsHandler.SetFilter)
			scoped.PUT("/style-rules", analyticsHandler.SetStyleRules)

			analytics := scoped.Group("/analytics")
			{
				analytics.GET("/orders", analyticsHandler.GetOrders)
				analytics.GET("/status-summary", analyticsHandler.GetStatusSummary)
				analytics.GET("/amount-summary", analyticsHandler.GetAmountSummary)
				analytics.GET("/pivot", analyticsHandler.GetPivot)
				analytics.GET("/style-pivot", analyticsHandler.GetStylePivot)
				analytics.GET("/courier-pivot", analyticsHandler.GetCourierPivot)
				analytics.GET("/payment-pivot", analyticsHandler.GetPaymentPivot)
				analytics.GET("/return-reasons", analyticsHandler.GetReturnReasons)
			}

			scoped.POST("/reconcile", reconHandler.Reconcile)
			scoped.GET("/reconcile", reconHandler.GetReport)

			scoped.GET("/exports/:table", exportHandler.Export)
		}
	}

	return router
}
