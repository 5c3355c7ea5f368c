package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kindred/models"
	"kindred/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	ctx, cancel := opContext(ctx)
	defer cancel()

	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now

	if _, err := s.users.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findUser(ctx, bson.M{"_id": id})
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"email": email})
}

func (s *Store) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	var u models.User
	err := s.users.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd models.ProfileUpdate) (*models.User, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	set := profileSet(upd)
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.User
	err := s.users.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &u, nil
}

func profileSet(upd models.ProfileUpdate) bson.M {
	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Bio != nil {
		set["bio"] = *upd.Bio
	}
	if upd.Age != nil {
		set["age"] = *upd.Age
	}
	if upd.Gender != nil {
		set["gender"] = *upd.Gender
	}
	if upd.GenderPreferences != nil {
		set["genderPreferences"] = *upd.GenderPreferences
	}
	if upd.Image != nil {
		set["image"] = *upd.Image
	}
	return set
}

// MatchProfiles loads only name and image, in the order of ids.
func (s *Store) MatchProfiles(ctx context.Context, ids []primitive.ObjectID) ([]models.MatchProfile, error) {
	if len(ids) == 0 {
		return []models.MatchProfile{}, nil
	}

	ctx, cancel := opContext(ctx)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"name": 1, "image": 1})
	cursor, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find match profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var found []models.MatchProfile
	if err := cursor.All(ctx, &found); err != nil {
		return nil, fmt.Errorf("decode match profiles: %w", err)
	}

	byID := make(map[primitive.ObjectID]models.MatchProfile, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	out := make([]models.MatchProfile, 0, len(found))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) FindCandidates(ctx context.Context, q models.CandidateQuery) ([]models.User, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	cursor, err := s.users.Find(ctx, candidateFilter(q))
	if err != nil {
		return nil, fmt.Errorf("find candidates: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode candidates: %w", err)
	}
	return users, nil
}

func candidateFilter(q models.CandidateQuery) bson.M {
	return bson.M{
		"_id":               bson.M{"$nin": q.Exclude},
		"gender":            bson.M{"$in": q.Genders},
		"genderPreferences": bson.M{"$in": q.Preferences},
	}
}
