package mongo

import (
	"go.mongodb.org/mongo-driver/mongo"

	"facegate.io/infrastructure/database"
)

type MongoRepository[T database.BaseModel] struct {
	Model *mongo.Collection
}

type FindOptions struct {
	Sort  interface{}
	Skip  *int64
	Limit *int64
}
