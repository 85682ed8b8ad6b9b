package datastore

import (
	"context"
	"errors"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"facegate.io/infrastructure/logger"
)

var ErrDatastoreNotConfigured = errors.New("DB_URL is not set")

var (
	client              *mongo.Client
	CalibrationRunModel *mongo.Collection
)

// ConnectToDatabase connects to DB_URL and prepares the collections.
func ConnectToDatabase() error {
	url := os.Getenv("DB_URL")
	if url == "" {
		return ErrDatastoreNotConfigured
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(url)
	clientOpts.SetMinPoolSize(2)
	clientOpts.SetMaxPoolSize(10)

	c, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return err
	}
	if err := c.Ping(ctx, nil); err != nil {
		c.Disconnect(context.Background())
		return err
	}
	client = c

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "facegate"
	}
	setUpIndexes(ctx, client.Database(dbName))

	logger.Info("connected to mongodb successfully")
	return nil
}

func setUpIndexes(ctx context.Context, db *mongo.Database) {
	CalibrationRunModel = db.Collection("CalibrationRuns")
	_, err := CalibrationRunModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "status", Value: 1}},
		Options: options.Index(),
	}, {
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index(),
	}})
	if err != nil {
		logger.Warning("could not create CalibrationRuns indexes", logger.LoggerOptions{Key: "error", Data: err})
		return
	}
	logger.Info("mongodb indexes set up successfully")
}

func CleanUp() {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		logger.Error("error disconnecting from mongodb", logger.LoggerOptions{Key: "error", Data: err})
	}
	client = nil
}
