package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"

	"facegate.io/application/interfaces"
	"facegate.io/infrastructure/logger"
)

// RequestLogMiddleware writes one line per request once the handler chain
// has finished, reading the ApplicationContext set further down the chain.
func RequestLogMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		options := []logger.LoggerOptions{
			{Key: "method", Data: ctx.Request.Method},
			{Key: "path", Data: ctx.FullPath()},
			{Key: "status", Data: ctx.Writer.Status()},
			{Key: "latencyMS", Data: time.Since(start).Milliseconds()},
			{Key: "ip", Data: ctx.ClientIP()},
		}
		if value, ok := ctx.Get("AppContext"); ok {
			if appContext, ok := value.(*interfaces.ApplicationContext[any]); ok {
				options = append(options, logger.LoggerOptions{Key: "requestID", Data: appContext.RequestID})
				if appContext.Client != nil {
					options = append(options, logger.LoggerOptions{Key: "client", Data: appContext.Client})
				}
			}
		}
		logger.Info("request served", options...)
	}
}
