package connection

import (
	"facegate.io/infrastructure/database/connection/cache"
	"facegate.io/infrastructure/database/connection/datastore"
	"facegate.io/infrastructure/logger"
)

// ConnectToDatabase brings up mongo and redis. Either may be missing; the
// endpoints that need them answer 503 instead.
func ConnectToDatabase() {
	if err := datastore.ConnectToDatabase(); err != nil {
		logger.Warning("calibration history disabled", logger.LoggerOptions{Key: "error", Data: err.Error()})
	}
	if err := cache.ConnectToCache(); err != nil {
		logger.Warning("calibrated threshold cache disabled", logger.LoggerOptions{Key: "error", Data: err.Error()})
	}
}

func CleanUp() {
	datastore.CleanUp()
	cache.CleanUp()
}
