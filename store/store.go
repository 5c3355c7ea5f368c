// Package store declares the persistence contracts shared by the MongoDB
// implementation in package database and the in-memory one in memstore.
package store

import (
	"context"
	"errors"

	"kindred/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique key (email) is already taken.
	ErrDuplicate = errors.New("duplicate key")
	// ErrSwipeConflict is returned when the actor already made the opposite
	// decision about the same target.
	ErrSwipeConflict = errors.New("conflicting swipe")
)

type Users interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, upd models.ProfileUpdate) (*models.User, error)
	MatchProfiles(ctx context.Context, ids []primitive.ObjectID) ([]models.MatchProfile, error)
	FindCandidates(ctx context.Context, q models.CandidateQuery) ([]models.User, error)
}

type Swipes interface {
	// RecordSwipe stores the swipe. It reports false when the same decision
	// already exists.
	RecordSwipe(ctx context.Context, s models.Swipe) (bool, error)
	HasLiked(ctx context.Context, actor, target primitive.ObjectID) (bool, error)
	SwipedIDs(ctx context.Context, actor primitive.ObjectID) (likes, dislikes []primitive.ObjectID, err error)
	// CreateMatch inserts the match. It reports false when the pair is
	// already matched.
	CreateMatch(ctx context.Context, m models.Match) (bool, error)
	MatchedIDs(ctx context.Context, user primitive.ObjectID) ([]primitive.ObjectID, error)
}

type Messages interface {
	CreateMessage(ctx context.Context, m *models.Message) error
	// Conversation returns every message between a and b in either
	// direction, oldest first.
	Conversation(ctx context.Context, a, b primitive.ObjectID) ([]models.Message, error)
}

// Store bundles every repository.
type Store interface {
	Users
	Swipes
	Messages
}
