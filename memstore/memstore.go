// Package memstore is an in-memory store.Store used for local runs without
// MongoDB and by the test suites.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"kindred/models"
	"kindred/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type swipeKey struct {
	actor, target primitive.ObjectID
}

type Store struct {
	mu       sync.RWMutex
	users    map[primitive.ObjectID]models.User
	swipes   map[swipeKey]models.Swipe
	matches  map[string]models.Match
	messages []models.Message
	now      func() time.Time
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		users:   make(map[primitive.ObjectID]models.User),
		swipes:  make(map[swipeKey]models.Swipe),
		matches: make(map[string]models.Match),
		now:     time.Now,
	}
}

func (s *Store) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return store.ErrDuplicate
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	now := s.now()
	u.CreatedAt, u.UpdatedAt = now, now
	s.users[u.ID] = *u
	return nil
}

func (s *Store) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) UpdateProfile(_ context.Context, id primitive.ObjectID, upd models.ProfileUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	upd.Apply(&u)
	u.UpdatedAt = s.now()
	s.users[id] = u
	return &u, nil
}

func (s *Store) MatchProfiles(_ context.Context, ids []primitive.ObjectID) ([]models.MatchProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.MatchProfile, 0, len(ids))
	for _, id := range ids {
		u, ok := s.users[id]
		if !ok {
			continue
		}
		out = append(out, models.MatchProfile{ID: u.ID, Name: u.Name, Image: u.Image})
	}
	return out, nil
}

func (s *Store) FindCandidates(_ context.Context, q models.CandidateQuery) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.User{}
	for _, u := range s.users {
		if q.Matches(&u) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (s *Store) RecordSwipe(_ context.Context, sw models.Swipe) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := swipeKey{sw.Actor, sw.Target}
	if existing, ok := s.swipes[key]; ok {
		if existing.Kind != sw.Kind {
			return false, store.ErrSwipeConflict
		}
		return false, nil
	}
	if sw.ID.IsZero() {
		sw.ID = primitive.NewObjectID()
	}
	if sw.CreatedAt.IsZero() {
		sw.CreatedAt = s.now()
	}
	s.swipes[key] = sw
	return true, nil
}

func (s *Store) HasLiked(_ context.Context, actor, target primitive.ObjectID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sw, ok := s.swipes[swipeKey{actor, target}]
	return ok && sw.Kind == models.SwipeLike, nil
}

func (s *Store) SwipedIDs(_ context.Context, actor primitive.ObjectID) ([]primitive.ObjectID, []primitive.ObjectID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ordered []models.Swipe
	for k, sw := range s.swipes {
		if k.actor == actor {
			ordered = append(ordered, sw)
		}
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID.Hex() < ordered[j].ID.Hex() })

	likes, dislikes := []primitive.ObjectID{}, []primitive.ObjectID{}
	for _, sw := range ordered {
		if sw.Kind == models.SwipeLike {
			likes = append(likes, sw.Target)
		} else {
			dislikes = append(dislikes, sw.Target)
		}
	}
	return likes, dislikes, nil
}

func (s *Store) CreateMatch(_ context.Context, m models.Match) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.matches[m.PairKey]; ok {
		return false, nil
	}
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	s.matches[m.PairKey] = m
	return true, nil
}

func (s *Store) MatchedIDs(_ context.Context, user primitive.ObjectID) ([]primitive.ObjectID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ms []models.Match
	for _, m := range s.matches {
		if m.Users[0] == user || m.Users[1] == user {
			ms = append(ms, m)
		}
	}
	sort.Slice(ms, func(i, j int) bool { return ms[i].ID.Hex() < ms[j].ID.Hex() })

	out := make([]primitive.ObjectID, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Other(user))
	}
	return out, nil
}

func (s *Store) CreateMessage(_ context.Context, m *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = s.now()
	}
	s.messages = append(s.messages, *m)
	return nil
}

func (s *Store) Conversation(_ context.Context, a, b primitive.ObjectID) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Message{}
	for _, m := range s.messages {
		if (m.Sender == a && m.Receiver == b) || (m.Sender == b && m.Receiver == a) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.Hex() < out[j].ID.Hex()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
