package matching

import (
	"context"
	"testing"

	"kindred/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ids(users []models.User) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}

func TestCandidateQuery(t *testing.T) {
	me := &models.User{ID: primitive.NewObjectID(), Gender: "male", GenderPreferences: "both"}
	liked := primitive.NewObjectID()

	q := CandidateQuery(me, []primitive.ObjectID{liked})
	assert.Equal(t, []primitive.ObjectID{me.ID, liked}, q.Exclude)
	assert.Equal(t, []string{"male", "female"}, q.Genders)
	assert.Equal(t, []string{"male", "both"}, q.Preferences)

	me.GenderPreferences = "female"
	q = CandidateQuery(me)
	assert.Equal(t, []string{"female"}, q.Genders)
}

func TestCandidatesRequireTwoWayCompatibility(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	me := f.user(t, "me", "male", "female")
	wantsMen := f.user(t, "wantsmen", "female", "male")
	wantsBoth := f.user(t, "wantsboth", "female", "both")
	f.user(t, "wantswomen", "female", "female")
	f.user(t, "man", "male", "male")

	got, err := f.engine.Candidates(ctx, me)
	require.NoError(t, err)
	assert.ElementsMatch(t, []primitive.ObjectID{wantsMen.ID, wantsBoth.ID}, ids(got))
}

func TestCandidatesExcludeSelfAndDecided(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	me := f.user(t, "me", "female", "both")
	liked := f.user(t, "liked", "male", "both")
	disliked := f.user(t, "disliked", "female", "both")
	matched := f.user(t, "matched", "male", "female")
	fresh := f.user(t, "fresh", "female", "female")

	_, err := f.engine.SwipeRight(ctx, me, liked.ID)
	require.NoError(t, err)
	_, err = f.engine.SwipeLeft(ctx, me, disliked.ID)
	require.NoError(t, err)
	_, err = f.engine.SwipeRight(ctx, matched, me.ID)
	require.NoError(t, err)
	_, err = f.engine.SwipeRight(ctx, me, matched.ID)
	require.NoError(t, err)

	got, err := f.engine.Candidates(ctx, me)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{fresh.ID}, ids(got))
	assert.NotContains(t, ids(got), me.ID)
}
