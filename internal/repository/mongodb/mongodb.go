// Package mongodb implements the repository interfaces on top of MongoDB.
//
// Users are stored as single documents with their exercise log embedded as
// an array. That keeps every operation in this package a single document
// read or write: reads return the whole user, appends are one $push. The
// store is the only durable state in the system.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

// DB owns the Mongo client and the users collection handle. It is created
// once at startup and injected into the service layer; nothing else in the
// codebase touches the client.
type DB struct {
	client *mongo.Client
	users  *mongo.Collection
}

// New connects to MongoDB, verifies the connection, and prepares the users
// collection. A bad URI or unreachable server fails here, at boot, rather
// than on the first request.
//
// The caller controls the timeout through ctx.
func New(ctx context.Context, uri, database string) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb: connecting: %w", err)
	}

	// Connect does not dial eagerly; Ping forces a round trip so that an
	// unreachable server surfaces now instead of on the first query.
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongodb: pinging: %w", err)
	}

	db := &DB{
		client: client,
		users:  client.Database(database).Collection(usersCollection),
	}

	if err := db.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongodb: ensuring indexes: %w", err)
	}

	return db, nil
}

// Close disconnects from MongoDB, releasing pooled connections.
func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

// ensureIndexes creates the unique index on username. Create-or-fetch
// already guards against duplicates with a lookup before the insert, but
// the index makes the guarantee hold even across racing creates.
// CreateOne is idempotent when the index already exists.
func (db *DB) ensureIndexes(ctx context.Context) error {
	_, err := db.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
