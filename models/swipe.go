package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SwipeKind string

const (
	SwipeLike    SwipeKind = "like"
	SwipeDislike SwipeKind = "dislike"
)

// Swipe is one user's decision about another. (Actor, Target) is unique.
type Swipe struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Actor     primitive.ObjectID `bson:"actor" json:"actor"`
	Target    primitive.ObjectID `bson:"target" json:"target"`
	Kind      SwipeKind          `bson:"kind" json:"kind"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Match records a mutual like. Users is sorted so that PairKey identifies
// the unordered pair.
type Match struct {
	ID        primitive.ObjectID    `bson:"_id,omitempty" json:"id"`
	Users     [2]primitive.ObjectID `bson:"users" json:"users"`
	PairKey   string                `bson:"pairKey" json:"-"`
	CreatedAt time.Time             `bson:"createdAt" json:"createdAt"`
}

// NewMatch builds the match record for a and b in canonical order.
func NewMatch(a, b primitive.ObjectID, at time.Time) Match {
	lo, hi := a, b
	if hi.Hex() < lo.Hex() {
		lo, hi = hi, lo
	}
	return Match{
		Users:     [2]primitive.ObjectID{lo, hi},
		PairKey:   lo.Hex() + ":" + hi.Hex(),
		CreatedAt: at,
	}
}

// Other returns the counterpart of id in the match.
func (m Match) Other(id primitive.ObjectID) primitive.ObjectID {
	if m.Users[0] == id {
		return m.Users[1]
	}
	return m.Users[0]
}
