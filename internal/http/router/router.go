// Package router assembles the Gin engine: middleware stack, health route,
// static frontend and module route registration.
package router

import (
	"net/http"

	apphttp "leadboard_backend/internal/http"
	"leadboard_backend/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// New builds the engine from the composed application.
func New(app *apphttp.App) *gin.Engine {
	cfg := app.Config

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(cors.New(corsConfig(cfg)))

	limiter := httpkit.NewIPRateLimiter(rate.Limit(cfg.GetRateLimitRPS()), cfg.GetRateLimitBurst(), app.Logger)
	engine.Use(limiter.RateLimit())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	ctx := &apphttp.RouterContext{
		Engine: engine,
		Root:   engine.Group(""),
	}
	for _, module := range app.Modules {
		module.RegisterRoutes(ctx)
		app.Logger.Info("registered module routes", "module", module.Name())
	}

	// The original service shipped its frontend from ./public; keep that
	// when a static dir is configured.
	if dir := cfg.GetStaticDir(); dir != "" {
		fs := http.FileServer(http.Dir(dir))
		engine.NoRoute(func(c *gin.Context) {
			if c.Request.Method == http.MethodGet {
				fs.ServeHTTP(c.Writer, c.Request)
				return
			}
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		})
	}

	return engine
}

func corsConfig(cfg interface {
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}) cors.Config {
	out := cors.DefaultConfig()
	out.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	out.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	if cfg.GetCORSAllowAll() {
		out.AllowAllOrigins = true
		return out
	}
	out.AllowOrigins = cfg.GetCORSOrigins()
	out.AllowCredentials = cfg.GetCORSAllowCreds()
	return out
}
