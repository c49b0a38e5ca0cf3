// file: db/mongo.go

package db

import (
	"context"
	"fmt"
	"movie-api/config"
	"movie-api/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ConnectMongo connects to the document store named by config.AppConfig.Mongo and
// returns the application database.
func ConnectMongo(ctx context.Context) (*mongo.Client, *mongo.Database, error) {
	cfg := config.AppConfig.Mongo

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		logger.Log.WithError(err).Error("Failed to create MongoDB client")
		return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		logger.Log.WithError(err).Error("Failed to ping MongoDB")
		return nil, nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Log.WithField("database", cfg.Database).Info("MongoDB connection established successfully")
	return client, client.Database(cfg.Database), nil
}
