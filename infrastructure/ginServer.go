package infrastructure

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	apperrors "facegate.io/application/appErrors"
	"facegate.io/infrastructure/env"
	"facegate.io/infrastructure/metrics"
	middlewares "facegate.io/infrastructure/middleware"
	ratelimit "facegate.io/infrastructure/ratelimit"
	webRoutev1 "facegate.io/infrastructure/routes/ginRouter/web/v1"
	server_response "facegate.io/infrastructure/serverResponse"
)

// 32 frames of a few MB each, base64 encoded
const maxBodyBytes = 128 << 20

// NewRouter assembles the HTTP surface without starting any backend.
func NewRouter() *gin.Engine {
	server := gin.New()
	server.Use(gin.Recovery())
	server.Use(cors.New(corsConfig()))
	server.Use(ratelimit.TokenBucketPerIP(env.RateLimitPerSecond()))
	server.Use(metrics.RequestMetricMiddleware())
	server.Use(func(ctx *gin.Context) {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxBodyBytes)
		ctx.Next()
	})
	server.Use(middlewares.RequestLogMiddleware())
	server.Use(middlewares.AppContextMiddleware())

	routerV1 := server.Group("/api/v1")
	{
		webRoutev1.LivenessRouter(routerV1)
	}

	server.GET("/ping", func(ctx *gin.Context) {
		server_response.Responder.Respond(ctx, http.StatusOK, "pong!", nil, nil, nil, nil)
	})
	server.GET("/metrics", metrics.Handler())

	server.NoRoute(func(ctx *gin.Context) {
		apperrors.NotFoundError(ctx, fmt.Sprintf("%s %s does not exist", ctx.Request.Method, ctx.Request.URL), nil)
	})
	return server
}

func corsConfig() cors.Config {
	origins := []string{}
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			origins = append(origins, strings.TrimSpace(origin))
		}
	}
	config := cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "DELETE"},
		AllowHeaders:  []string{"Origin", "Content-Type", middlewares.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middlewares.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		config.AllowOrigins = nil
		config.AllowAllOrigins = true
	}
	return config
}
