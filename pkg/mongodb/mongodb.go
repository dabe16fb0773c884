// Package mongodb owns the MongoDB connection lifecycle. A Conn is built
// once at startup, injected where needed, and shut down gracefully — there
// is no lazily-initialized package-level connection.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// Conn holds a live client and the application database.
type Conn struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens a client, verifies it with a ping, and returns the
// connection object.
func Connect(ctx context.Context, uri, dbName string) (*Conn, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(50).
		SetServerSelectionTimeout(connectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb: connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb: ping: %w", err)
	}

	return &Conn{client: client, db: client.Database(dbName)}, nil
}

// Disconnect closes the underlying client.
func (c *Conn) Disconnect(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("mongodb: disconnect: %w", err)
	}
	return nil
}

// HealthCheck pings the primary and reports connection health.
func (c *Conn) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := c.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongodb: health: %w", err)
	}
	return nil
}

// Database exposes the application database for repositories.
func (c *Conn) Database() *mongo.Database {
	return c.db
}

// Collection is shorthand for c.Database().Collection(name).
func (c *Conn) Collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}
