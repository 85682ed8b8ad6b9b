package repository

import (
	"sync"

	"facegate.io/entities"
	"facegate.io/infrastructure/database/connection/datastore"
	"facegate.io/infrastructure/database/repository/mongo"
)

var calibrationRunOnce = sync.Once{}

var calibrationRunRepository mongo.MongoRepository[entities.CalibrationRun]

func CalibrationRunRepo() *mongo.MongoRepository[entities.CalibrationRun] {
	calibrationRunOnce.Do(func() {
		calibrationRunRepository = mongo.MongoRepository[entities.CalibrationRun]{Model: datastore.CalibrationRunModel}
	})
	return &calibrationRunRepository
}
