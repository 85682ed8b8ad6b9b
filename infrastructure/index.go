package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"facegate.io/infrastructure/logger"
	startup "facegate.io/infrastructure/startUp"
)

// StartServer brings up the services, serves until ctx is cancelled and then
// drains in-flight requests.
func StartServer(ctx context.Context, configFile string) error {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "" {
		ginMode = gin.DebugMode
	}
	if ginMode != gin.DebugMode && ginMode != gin.ReleaseMode {
		return fmt.Errorf("invalid gin mode used - %s", ginMode)
	}
	gin.SetMode(ginMode)

	if err := startup.StartServices(configFile); err != nil {
		return err
	}
	defer startup.CleanUpServices()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server starting on PORT %s", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
