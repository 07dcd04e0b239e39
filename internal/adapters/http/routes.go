package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"minebench/internal/core/ports"
)

// MetricsExporter observes requests and serves the scrape endpoint.
type MetricsExporter interface {
	RequestObserver
	Handler() http.Handler
}

// RegisterRoutes mounts the middleware chain and every endpoint. metrics may
// be nil.
func RegisterRoutes(r *gin.Engine, benchmarkSvc ports.BenchmarkService, downloadSvc ports.DownloadService, metrics MetricsExporter) {

	h := NewHandler(benchmarkSvc, downloadSvc)

	r.Use(RequestID(), LoggingMiddleware())
	if metrics != nil {
		r.Use(MetricsMiddleware(metrics))
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	r.GET("/health", h.Health)

	api := r.Group("/api/v1")
	{
		benchmarks := api.Group("/benchmarks")
		{
			benchmarks.GET("", h.GetBenchmarks)
			benchmarks.GET("/export.csv", h.ExportBenchmarks)
		}

		dashboard := api.Group("/dashboard")
		{
			dashboard.GET("", h.GetDashboard)
			dashboard.POST("/refresh", h.RefreshDashboard)
			dashboard.GET("/snapshot", h.GetSnapshot)
		}

		devices := api.Group("/devices")
		{
			devices.GET("", h.ListDevices)
			devices.GET("/:device_uid", h.GetDevice)
		}

		api.GET("/stats", h.GetStats)
		api.GET("/downloads", h.GetDownloads)
	}
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
