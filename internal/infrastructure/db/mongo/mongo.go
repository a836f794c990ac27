// Package mongo owns the MongoDB connection and the collection-backed
// repositories. Every repository method that returns tenant data takes an
// ownerID filter; the empty filter is reserved for admin callers.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/trainmetrics/coaching-api/internal/core/domain"
)

const (
	connectTimeout = 10 * time.Second

	// defaultTimeout bounds every single repository operation.
	defaultTimeout = 10 * time.Second
)

// Config holds the connection settings for the coaching database.
type Config struct {
	URI      string
	Database string
	// Timeout bounds the initial connect and ping. Zero means connectTimeout.
	Timeout time.Duration
}

// Connect dials MongoDB and verifies the server is reachable before handing
// the database back. The client is returned as well so the caller can
// disconnect it on shutdown.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = connectTimeout
	}
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(timeout)
	client, err := mongo.Connect(dialCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(dialCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(dialCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, client.Database(cfg.Database), nil
}

func indexUnique() *options.IndexOptions {
	return options.Index().SetUnique(true)
}

// storeErr wraps a failed repository operation. Timeouts and unreachable
// servers map to ErrStoreUnavailable so the boundary reports a retryable
// outage instead of an opaque failure.
func storeErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrStoreUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}
