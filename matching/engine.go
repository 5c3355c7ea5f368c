// Package matching records swipes, materializes mutual likes as matches and
// builds the candidate feed.
package matching

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kindred/apperrors"
	"kindred/events"
	"kindred/models"
	"kindred/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Repository interface {
	store.Users
	store.Swipes
}

type Engine struct {
	repo      Repository
	publisher events.Publisher
	log       *zap.Logger
	now       func() time.Time
}

func NewEngine(repo Repository, publisher events.Publisher, log *zap.Logger) *Engine {
	return &Engine{repo: repo, publisher: publisher, log: log, now: time.Now}
}

// SwipeRight likes target. When target already likes actor the pair is
// matched. Repeating the call changes nothing.
func (e *Engine) SwipeRight(ctx context.Context, actor *models.User, targetID primitive.ObjectID) (*models.User, error) {
	if actor.ID == targetID {
		return nil, apperrors.Validation("You cannot swipe on yourself")
	}

	target, err := e.repo.GetUserByID(ctx, targetID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFound("User Not Found")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if _, err := e.record(ctx, actor.ID, target.ID, models.SwipeLike); err != nil {
		return nil, err
	}

	// The like is written before the reverse lookup, so of two concurrent
	// reciprocal swipes at least one sees the other. The unique pair key
	// absorbs the case where both do, and a repeated swipe repairs a match
	// lost to a failure between the two writes.
	if err := e.matchIfMutual(ctx, actor.ID, target.ID); err != nil {
		return nil, err
	}

	return e.Hydrate(ctx, actor)
}

// SwipeLeft dislikes target. The target is not required to exist.
func (e *Engine) SwipeLeft(ctx context.Context, actor *models.User, targetID primitive.ObjectID) (*models.User, error) {
	if actor.ID == targetID {
		return nil, apperrors.Validation("You cannot swipe on yourself")
	}
	if _, err := e.record(ctx, actor.ID, targetID, models.SwipeDislike); err != nil {
		return nil, err
	}
	return e.Hydrate(ctx, actor)
}

func (e *Engine) record(ctx context.Context, actor, target primitive.ObjectID, kind models.SwipeKind) (bool, error) {
	created, err := e.repo.RecordSwipe(ctx, models.Swipe{
		Actor:     actor,
		Target:    target,
		Kind:      kind,
		CreatedAt: e.now().UTC(),
	})
	if errors.Is(err, store.ErrSwipeConflict) {
		return false, apperrors.Validation("You have already swiped on this user")
	}
	if err != nil {
		return false, apperrors.Internal(err)
	}
	return created, nil
}

func (e *Engine) matchIfMutual(ctx context.Context, actor, target primitive.ObjectID) error {
	mutual, err := e.repo.HasLiked(ctx, target, actor)
	if err != nil {
		return apperrors.Internal(err)
	}
	if !mutual {
		return nil
	}

	m := models.NewMatch(actor, target, e.now().UTC())
	created, err := e.repo.CreateMatch(ctx, m)
	if err != nil {
		return apperrors.Internal(fmt.Errorf("create match: %w", err))
	}
	if !created {
		return nil
	}

	e.log.Info("match created",
		zap.String("user", actor.Hex()),
		zap.String("with", target.Hex()),
	)
	e.publisher.Publish(ctx, events.Event{
		Type:       events.TypeMatchCreated,
		Recipients: []primitive.ObjectID{actor, target},
		Payload:    m,
		At:         m.CreatedAt,
	})
	return nil
}

// Hydrate fills the user's likes, dislikes and matches from the
// relationship collections. It returns a copy.
func (e *Engine) Hydrate(ctx context.Context, u *models.User) (*models.User, error) {
	likes, dislikes, err := e.repo.SwipedIDs(ctx, u.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	matches, err := e.repo.MatchedIDs(ctx, u.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	out := *u
	out.Likes, out.Dislikes, out.Matches = likes, dislikes, matches
	return &out, nil
}

// Matches returns the reduced profiles of everyone actor is matched with.
func (e *Engine) Matches(ctx context.Context, actor *models.User) ([]models.MatchProfile, error) {
	ids, err := e.repo.MatchedIDs(ctx, actor.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	profiles, err := e.repo.MatchProfiles(ctx, ids)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return profiles, nil
}
