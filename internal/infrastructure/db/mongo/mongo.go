package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// defaultTimeout bounds every repository operation and the initial dial.
const defaultTimeout = 10 * time.Second

// Config holds the connection settings for the time-tracking database.
type Config struct {
	URI      string
	Database string
	// ConnectTimeout bounds the initial dial and ping. Zero means defaultTimeout.
	ConnectTimeout time.Duration
}

// Connect dials MongoDB and verifies the server is reachable before handing
// back the database handle. Callers own the client and must Disconnect it.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(dialCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(dialCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(dialCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}
