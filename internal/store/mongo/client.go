// Package mongo backs the record repo with MongoDB for deployments that
// already run one; the record lives in a single-document collection.
package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rvanheerden/go-autoquote/internal/platform/config"
)

const (
	maxRetries     = 5
	initialBackoff = 1 * time.Second
	maxBackoff     = 30 * time.Second
)

type MongoClient struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewClient connects and verifies the connection with a ping before
// returning. Mongo tends to come up after the API in compose setups, so
// connection and ping failures retry with exponential backoff.
func NewClient(cfg *config.Config) (*MongoClient, error) {
	client, err := connectWithRetry(cfg)
	if err != nil {
		return nil, err
	}
	return &MongoClient{Client: client, DB: client.Database(cfg.MongoDB)}, nil
}

func connectWithRetry(cfg *config.Config) (*mongo.Client, error) {
	clientOpts := options.Client().ApplyURI(cfg.MongoURI)
	connectTimeout := time.Duration(cfg.MongoConnectTimeoutSec) * time.Second

	backoff := initialBackoff
	for attempt := 1; ; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		client, err := mongo.Connect(ctx, clientOpts)
		if err == nil {
			err = client.Ping(ctx, nil)
			if err != nil {
				_ = client.Disconnect(context.Background())
			}
		}
		cancel()

		if err == nil {
			return client, nil
		}
		if attempt == maxRetries {
			return nil, fmt.Errorf("connect to mongo after %d attempts: %w", maxRetries, err)
		}

		slog.Warn("mongo not ready, retrying",
			"attempt", attempt,
			"backoff", backoff,
			"err", err)
		time.Sleep(backoff)
		backoff = min(backoff*2, maxBackoff)
	}
}

// Ping verifies connectivity (used by /readyz).
func (c *MongoClient) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx, nil)
}

// Close gracefully disconnects from MongoDB.
func (c *MongoClient) Close(ctx context.Context) error {
	return c.Client.Disconnect(ctx)
}
