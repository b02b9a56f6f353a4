package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/tsm98/social-mern/internal/config"
)

var (
	connectMongoFn = func(uri string) (*mongo.Client, error) {
		return mongo.Connect(options.Client().ApplyURI(uri))
	}
	pingMongoFn = func(ctx context.Context, client *mongo.Client) error { return client.Ping(ctx, nil) }
)

// ConnectMongo returns a database handle for cfg.MongoDatabase. The client is
// pinged before returning so a dead server fails fast.
func ConnectMongo(cfg config.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := connectMongoFn(cfg.MongoURI)
	if err != nil {
		return nil, err
	}
	if err := pingMongoFn(ctx, client); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client.Database(cfg.MongoDatabase), nil
}
