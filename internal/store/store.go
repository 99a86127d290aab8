// Package store is the persistence-store handle: a connected Mongo client
// scoped to one database.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var ErrMissingDatabase = errors.New("store: missing database name")

// Store owns a Mongo client. Close releases it.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects to uri and scopes the handle to database. The driver dials
// lazily, so Open succeeds without a reachable server; use Ping to check.
func Open(ctx context.Context, uri, database string, opts ...*options.ClientOptions) (*Store, error) {
	if database == "" {
		return nil, ErrMissingDatabase
	}
	all := append([]*options.ClientOptions{options.Client().ApplyURI(uri)}, opts...)
	client, err := mongo.Connect(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("store: connect: %w", err)
	}
	return &Store{client: client, db: client.Database(database)}, nil
}

// Database returns the scoped database.
func (s *Store) Database() *mongo.Database { return s.db }

// Collection returns a collection in the scoped database.
func (s *Store) Collection(name string) *mongo.Collection { return s.db.Collection(name) }

// Name is the database name.
func (s *Store) Name() string { return s.db.Name() }

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
