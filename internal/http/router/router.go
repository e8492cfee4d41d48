package router

import (
	"case-triage-workers/internal/http/handler"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	Triage *handler.TriageHandler
	Health *handler.HealthHandler
}

func SetupRoutes(router *gin.Engine, cfg RouterConfig) {
	router.GET("/health", cfg.Health.Live)
	router.GET("/ready", cfg.Health.Ready)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/process_email", cfg.Triage.ProcessEmail)
}

// New returns an engine with recovery and the triage routes.
func New(cfg RouterConfig) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	SetupRoutes(engine, cfg)
	return engine
}
