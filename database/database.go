package database

import (
	"context"
	"fmt"
	"time"

	"kindred/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// opTimeout bounds every single store call.
const opTimeout = 10 * time.Second

// Store is the MongoDB implementation of store.Store.
type Store struct {
	client   *mongo.Client
	users    *mongo.Collection
	swipes   *mongo.Collection
	matches  *mongo.Collection
	messages *mongo.Collection
	log      *zap.Logger
}

var _ store.Store = (*Store)(nil)

// Connect dials MongoDB, pings it and returns a Store bound to dbName.
func Connect(ctx context.Context, uri, dbName string, log *zap.Logger) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(dbName)
	s := &Store{
		client:   client,
		users:    db.Collection("users"),
		swipes:   db.Collection("swipes"),
		matches:  db.Collection("matches"),
		messages: db.Collection("messages"),
		log:      log,
	}
	log.Info("connected to MongoDB", zap.String("database", dbName))
	return s, nil
}

// EnsureIndexes creates the unique keys the relationship model relies on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	specs := []struct {
		coll   *mongo.Collection
		models []mongo.IndexModel
	}{
		{s.users, []mongo.IndexModel{
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "gender", Value: 1}, {Key: "genderPreferences", Value: 1}}},
		}},
		{s.swipes, []mongo.IndexModel{
			{Keys: bson.D{{Key: "actor", Value: 1}, {Key: "target", Value: 1}}, Options: options.Index().SetUnique(true)},
		}},
		{s.matches, []mongo.IndexModel{
			{Keys: bson.D{{Key: "pairKey", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "users", Value: 1}}},
		}},
		{s.messages, []mongo.IndexModel{
			{Keys: bson.D{{Key: "sender", Value: 1}, {Key: "receiver", Value: 1}, {Key: "createdAt", Value: 1}}},
		}},
	}

	for _, spec := range specs {
		if _, err := spec.coll.Indexes().CreateMany(ctx, spec.models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", spec.coll.Name(), err)
		}
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.client.Ping(ctx, nil)
}

func (s *Store) Disconnect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.client.Disconnect(ctx); err != nil {
		return err
	}
	s.log.Info("disconnected from MongoDB")
	return nil
}

func opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, opTimeout)
}
