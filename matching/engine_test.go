package matching

import (
	"context"
	"testing"

	"kindred/apperrors"
	"kindred/events"
	"kindred/memstore"
	"kindred/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fixture struct {
	store    *memstore.Store
	recorder *events.Recorder
	engine   *Engine
}

func newFixture() *fixture {
	s := memstore.New()
	rec := &events.Recorder{}
	return &fixture{store: s, recorder: rec, engine: NewEngine(s, rec, zap.NewNop())}
}

func (f *fixture) user(t *testing.T, name, gender, prefers string) *models.User {
	t.Helper()
	u := &models.User{
		Name:              name,
		Email:             name + "@example.com",
		Age:               25,
		Gender:            gender,
		GenderPreferences: prefers,
		Image:             "https://img/" + name,
	}
	require.NoError(t, f.store.CreateUser(context.Background(), u))
	return u
}

func TestSwipeRightIsIdempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.user(t, "a", "male", "female")
	b := f.user(t, "b", "female", "male")

	first, err := f.engine.SwipeRight(ctx, a, b.ID)
	require.NoError(t, err)
	second, err := f.engine.SwipeRight(ctx, a, b.ID)
	require.NoError(t, err)

	assert.Equal(t, []primitive.ObjectID{b.ID}, first.Likes)
	assert.Equal(t, first.Likes, second.Likes)
	assert.Empty(t, second.Matches)
}

func TestMutualSwipeRightCreatesSymmetricMatch(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.user(t, "a", "male", "female")
	b := f.user(t, "b", "female", "male")

	_, err := f.engine.SwipeRight(ctx, a, b.ID)
	require.NoError(t, err)
	assert.Empty(t, f.recorder.Events)

	bAfter, err := f.engine.SwipeRight(ctx, b, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{a.ID}, bAfter.Matches)

	aAfter, err := f.engine.Hydrate(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{b.ID}, aAfter.Matches)

	require.Len(t, f.recorder.Events, 1)
	assert.Equal(t, events.TypeMatchCreated, f.recorder.Events[0].Type)
	assert.ElementsMatch(t, []primitive.ObjectID{a.ID, b.ID}, f.recorder.Events[0].Recipients)

	// Repeating either swipe keeps exactly one match.
	_, err = f.engine.SwipeRight(ctx, a, b.ID)
	require.NoError(t, err)
	aAfter, err = f.engine.Hydrate(ctx, a)
	require.NoError(t, err)
	assert.Len(t, aAfter.Matches, 1)
	assert.Len(t, f.recorder.Events, 1)
}

func TestSwipeRightUnknownTarget(t *testing.T) {
	f := newFixture()
	a := f.user(t, "a", "male", "female")

	_, err := f.engine.SwipeRight(context.Background(), a, primitive.NewObjectID())
	require.Error(t, err)
	appErr := apperrors.As(err)
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
	assert.Equal(t, "User Not Found", appErr.Message)
}

func TestSwipeOnSelf(t *testing.T) {
	f := newFixture()
	a := f.user(t, "a", "male", "female")

	_, err := f.engine.SwipeRight(context.Background(), a, a.ID)
	assert.Equal(t, apperrors.KindValidation, apperrors.As(err).Kind)

	_, err = f.engine.SwipeLeft(context.Background(), a, a.ID)
	assert.Equal(t, apperrors.KindValidation, apperrors.As(err).Kind)
}

func TestSwipeLeft(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.user(t, "a", "male", "female")
	b := f.user(t, "b", "female", "male")

	got, err := f.engine.SwipeLeft(ctx, a, b.ID)
	require.NoError(t, err)
	got, err = f.engine.SwipeLeft(ctx, a, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{b.ID}, got.Dislikes)
	assert.Empty(t, got.Likes)

	// No existence check on the target.
	ghost := primitive.NewObjectID()
	got, err = f.engine.SwipeLeft(ctx, a, ghost)
	require.NoError(t, err)
	assert.Contains(t, got.Dislikes, ghost)
}

func TestOppositeSwipeIsRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.user(t, "a", "male", "female")
	b := f.user(t, "b", "female", "male")

	_, err := f.engine.SwipeLeft(ctx, a, b.ID)
	require.NoError(t, err)

	_, err = f.engine.SwipeRight(ctx, a, b.ID)
	appErr := apperrors.As(err)
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
	assert.Equal(t, "You have already swiped on this user", appErr.Message)
}

func TestMatchesReturnsReducedProfiles(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.user(t, "a", "male", "female")
	b := f.user(t, "b", "female", "male")

	_, err := f.engine.SwipeRight(ctx, a, b.ID)
	require.NoError(t, err)
	_, err = f.engine.SwipeRight(ctx, b, a.ID)
	require.NoError(t, err)

	profiles, err := f.engine.Matches(ctx, a)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, models.MatchProfile{ID: b.ID, Name: "b", Image: "https://img/b"}, profiles[0])

	profiles, err = f.engine.Matches(ctx, f.user(t, "c", "male", "both"))
	require.NoError(t, err)
	assert.Empty(t, profiles)
}
