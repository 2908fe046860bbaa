package database

import (
	"context"
	"time"

	"velvet-backend/internal/logger"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var (
	Client *mongo.Client
	DB     *mongo.Database
)

func Connect(uri, dbName string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(clientOpts)
	if err != nil {
		return err
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return err
	}

	Client = client
	DB = client.Database(dbName)
	logger.Info("connected to MongoDB")
	return nil
}

func GetCollection(name string) *mongo.Collection {
	return DB.Collection(name)
}

// WithTransaction runs fn inside a MongoDB transaction. Standalone
// deployments have no sessions, so the callback runs without one there;
// the completed-flag compare-and-set in the session repository still
// rejects double finalization in that mode.
func WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := Client.StartSession()
	if err != nil {
		return fn(ctx)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(ctx context.Context) (interface{}, error) {
		return nil, fn(ctx)
	})
	return err
}
