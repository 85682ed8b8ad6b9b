package middlewares

import (
	"github.com/gin-gonic/gin"

	"facegate.io/application/interfaces"
	"facegate.io/application/utils"
	"facegate.io/infrastructure/useragent"
)

const RequestIDHeader = "X-Request-Id"

// AppContextMiddleware stores an ApplicationContext on every request so
// route handlers can pick up the request id and headers.
func AppContextMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestID := ctx.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = utils.GenerateUULDString()
		}
		ctx.Header(RequestIDHeader, requestID)
		ctx.Set("AppContext", &interfaces.ApplicationContext[any]{
			Ctx:       ctx,
			Keys:      ctx.Keys,
			Header:    ctx.Request.Header,
			RequestID: requestID,
			Client:    useragent.ParseUserAgent(ctx.Request.UserAgent()),
		})
		ctx.Next()
	}
}
