package env

import (
	"os"
	"runtime"
	"strconv"
	"time"

	"facegate.io/infrastructure/logger"
	"github.com/joho/godotenv"
)

// LoadEnv reads a .env file when one is present. Real environment variables
// always win.
func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		logger.Info("error loading env variables")
	}
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		logger.Warning("invalid duration in env, using default", logger.LoggerOptions{
			Key:  key,
			Data: raw,
		})
		return fallback
	}
	return d
}

func GetInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		logger.Warning("invalid integer in env, using default", logger.LoggerOptions{
			Key:  key,
			Data: raw,
		})
		return fallback
	}
	return v
}

// AnalysisTimeout bounds a single analysis call end to end.
func AnalysisTimeout() time.Duration {
	return GetDuration("ANALYSIS_TIMEOUT", 10*time.Second)
}

func AnalysisWorkers() int {
	return GetInt("ANALYSIS_WORKERS", runtime.NumCPU())
}

func RateLimitPerSecond() float64 {
	raw := os.Getenv("RATE_LIMIT_PER_SECOND")
	if raw == "" {
		return 10
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		logger.Warning("invalid RATE_LIMIT_PER_SECOND, using default", logger.LoggerOptions{
			Key:  "RATE_LIMIT_PER_SECOND",
			Data: raw,
		})
		return 10
	}
	return v
}
