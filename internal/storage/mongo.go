// Package storage persists question records in MongoDB, bucketed by
// (year, month) period with one document per question.
package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gkpulse/bixquiz/internal/logger"
	"github.com/gkpulse/bixquiz/internal/quiz"
)

const databaseName = "current_affairs"

type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to MongoDB and verifies the connection with a ping.
func New(ctx context.Context, uri string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Debug("mongodb connected")
	return &MongoStore{
		client: client,
		db:     client.Database(databaseName),
	}, nil
}

// Collection resolves the bucket for a period, e.g. "2024.06". Mongo
// creates collections lazily, so repeated calls are idempotent.
func (s *MongoStore) Collection(p quiz.Period) *mongo.Collection {
	return s.db.Collection(p.Label())
}

// Exists reports whether any record set for this (period, day) was already
// persisted. This check is the sole dedup gate; the collection itself has
// no uniqueness constraint.
func (s *MongoStore) Exists(ctx context.Context, p quiz.Period, day string) (bool, error) {
	count, err := s.Collection(p).CountDocuments(ctx, bson.M{"day": day}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check day %s in %s: %w", day, p.Label(), err)
	}
	return count > 0, nil
}

// Insert appends one question record to the period bucket.
func (s *MongoStore) Insert(ctx context.Context, p quiz.Period, q quiz.Question) error {
	if _, err := s.Collection(p).InsertOne(ctx, q); err != nil {
		return fmt.Errorf("failed to insert question for day %s in %s: %w", q.Day, p.Label(), err)
	}
	return nil
}

// Close releases the underlying connection. Safe to call more than once.
func (s *MongoStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	err := s.client.Disconnect(ctx)
	s.client = nil
	if err != nil && err != mongo.ErrClientDisconnected {
		return fmt.Errorf("failed to disconnect mongodb: %w", err)
	}
	return nil
}
