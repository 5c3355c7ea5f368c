package database

import (
	"context"
	"fmt"
	"time"

	"kindred/models"
	"kindred/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) RecordSwipe(ctx context.Context, sw models.Swipe) (bool, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	if sw.ID.IsZero() {
		sw.ID = primitive.NewObjectID()
	}
	if sw.CreatedAt.IsZero() {
		sw.CreatedAt = time.Now().UTC()
	}

	_, err := s.swipes.InsertOne(ctx, sw)
	if err == nil {
		return true, nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return false, fmt.Errorf("insert swipe: %w", err)
	}

	var existing models.Swipe
	err = s.swipes.FindOne(ctx, bson.M{"actor": sw.Actor, "target": sw.Target}).Decode(&existing)
	if err != nil {
		return false, fmt.Errorf("load existing swipe: %w", err)
	}
	if existing.Kind != sw.Kind {
		return false, store.ErrSwipeConflict
	}
	return false, nil
}

func (s *Store) HasLiked(ctx context.Context, actor, target primitive.ObjectID) (bool, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	n, err := s.swipes.CountDocuments(ctx,
		bson.M{"actor": actor, "target": target, "kind": models.SwipeLike},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, fmt.Errorf("count likes: %w", err)
	}
	return n > 0, nil
}

func (s *Store) SwipedIDs(ctx context.Context, actor primitive.ObjectID) ([]primitive.ObjectID, []primitive.ObjectID, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetProjection(bson.M{"target": 1, "kind": 1})
	cursor, err := s.swipes.Find(ctx, bson.M{"actor": actor}, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("find swipes: %w", err)
	}
	defer cursor.Close(ctx)

	var swipes []models.Swipe
	if err := cursor.All(ctx, &swipes); err != nil {
		return nil, nil, fmt.Errorf("decode swipes: %w", err)
	}

	likes, dislikes := []primitive.ObjectID{}, []primitive.ObjectID{}
	for _, sw := range swipes {
		switch sw.Kind {
		case models.SwipeLike:
			likes = append(likes, sw.Target)
		case models.SwipeDislike:
			dislikes = append(dislikes, sw.Target)
		}
	}
	return likes, dislikes, nil
}

func (s *Store) CreateMatch(ctx context.Context, m models.Match) (bool, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	if _, err := s.matches.InsertOne(ctx, m); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("insert match: %w", err)
	}
	return true, nil
}

func (s *Store) MatchedIDs(ctx context.Context, user primitive.ObjectID) ([]primitive.ObjectID, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.matches.Find(ctx, bson.M{"users": user}, opts)
	if err != nil {
		return nil, fmt.Errorf("find matches: %w", err)
	}
	defer cursor.Close(ctx)

	var matches []models.Match
	if err := cursor.All(ctx, &matches); err != nil {
		return nil, fmt.Errorf("decode matches: %w", err)
	}

	ids := make([]primitive.ObjectID, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.Other(user))
	}
	return ids, nil
}

