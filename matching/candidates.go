package matching

import (
	"context"

	"kindred/apperrors"
	"kindred/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Candidates returns every profile actor has not decided on yet and that is
// compatible in both directions. No ranking or limit is applied.
func (e *Engine) Candidates(ctx context.Context, actor *models.User) ([]models.User, error) {
	likes, dislikes, err := e.repo.SwipedIDs(ctx, actor.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	matches, err := e.repo.MatchedIDs(ctx, actor.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	users, err := e.repo.FindCandidates(ctx, CandidateQuery(actor, likes, dislikes, matches))
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return users, nil
}

// CandidateQuery builds the feed filter for actor.
func CandidateQuery(actor *models.User, seen ...[]primitive.ObjectID) models.CandidateQuery {
	exclude := []primitive.ObjectID{actor.ID}
	for _, ids := range seen {
		exclude = append(exclude, ids...)
	}

	genders := []string{actor.GenderPreferences}
	if actor.GenderPreferences == models.PreferBoth {
		genders = []string{models.GenderMale, models.GenderFemale}
	}

	return models.CandidateQuery{
		Exclude:     exclude,
		Genders:     genders,
		Preferences: []string{actor.Gender, models.PreferBoth},
	}
}
