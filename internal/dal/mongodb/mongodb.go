package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Config holds the connection settings for the document store.
type Config struct {
	URI      string
	Database string
}

// Client represents a MongoDB client.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// Database returns the underlying database handle.
func (c *Client) Database() *mongo.Database {
	return c.db
}

// Close disconnects the client for graceful shutdown.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// MustNewClient creates a new MongoDB client.
func MustNewClient(cfg Config) *Client {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.URI))
	if err != nil {
		panic(err)
	}

	if err := client.Ping(context.Background(), nil); err != nil {
		panic(err)
	}

	return &Client{
		client: client,
		db:     client.Database(cfg.Database),
	}
}
