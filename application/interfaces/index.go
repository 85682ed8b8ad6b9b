package interfaces

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"facegate.io/infrastructure/useragent"
)

// ApplicationContext carries the gin context, the bound payload and the
// per-request metadata from the router into the controllers.
type ApplicationContext[T any] struct {
	Ctx       *gin.Context
	Body      *T
	Keys      map[string]any
	Header    http.Header
	Param     map[string]string
	Query     map[string]string
	RequestID string
	Client    *useragent.Client
}

func (ac *ApplicationContext[T]) GetHeader(key string) *string {
	if ac.Header == nil {
		return nil
	}
	value := ac.Header.Get(key)
	if value == "" {
		return nil
	}
	return &value
}

func (ac *ApplicationContext[T]) GetParam(key string) string {
	if ac.Param == nil {
		return ""
	}
	return ac.Param[key]
}
