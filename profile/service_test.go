package profile

import (
	"context"
	"errors"
	"testing"

	"kindred/apperrors"
	"kindred/memstore"
	"kindred/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeUploader struct {
	url   string
	err   error
	calls int
}

func (f *fakeUploader) UploadImage(context.Context, string) (string, error) {
	f.calls++
	return f.url, f.err
}

func ptr[T any](v T) *T { return &v }

func setup(t *testing.T, up *fakeUploader) (*Service, *models.User) {
	t.Helper()
	s := memstore.New()
	u := &models.User{Name: "Ana", Email: "ana@example.com", Age: 25, Gender: "female", GenderPreferences: "male"}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return NewService(s, up, zap.NewNop()), u
}

func TestUpdateFields(t *testing.T) {
	svc, u := setup(t, &fakeUploader{})

	got, err := svc.Update(context.Background(), u, Input{
		Name:              ptr("  Ana B  "),
		Bio:               ptr("hiker"),
		GenderPreferences: ptr("both"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana B", got.Name)
	assert.Equal(t, "hiker", got.Bio)
	assert.Equal(t, "both", got.GenderPreferences)
	assert.Equal(t, 25, got.Age)
}

func TestUpdateUploadsImage(t *testing.T) {
	up := &fakeUploader{url: "https://res.cloudinary.com/demo/a.png"}
	svc, u := setup(t, up)

	got, err := svc.Update(context.Background(), u, Input{Image: ptr("data:image/png;base64,iVBORw0KGgo=")})
	require.NoError(t, err)
	assert.Equal(t, up.url, got.Image)
	assert.Equal(t, 1, up.calls)
}

func TestUpdateRejectsBadImage(t *testing.T) {
	up := &fakeUploader{}
	svc, u := setup(t, up)

	_, err := svc.Update(context.Background(), u, Input{Image: ptr("https://example.com/me.png")})
	appErr := apperrors.As(err)
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
	assert.Equal(t, "Invalid image format.", appErr.Message)
	assert.Zero(t, up.calls)
}

func TestUpdateUploadFailure(t *testing.T) {
	svc, u := setup(t, &fakeUploader{err: errors.New("boom")})

	_, err := svc.Update(context.Background(), u, Input{Image: ptr("data:image/png;base64,iVBORw0KGgo=")})
	appErr := apperrors.As(err)
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
	assert.Equal(t, "Error uploading image, please try again later.", appErr.Message)
}

func TestUpdateValidation(t *testing.T) {
	svc, u := setup(t, &fakeUploader{})

	cases := map[string]Input{
		"You must be at least 18 years old": {Age: ptr(16)},
		"Invalid gender":                    {Gender: ptr("robot")},
		"Invalid gender preference":         {GenderPreferences: ptr("none")},
		"Name cannot be empty":              {Name: ptr("  ")},
	}
	for msg, in := range cases {
		_, err := svc.Update(context.Background(), u, in)
		assert.Equal(t, msg, apperrors.As(err).Message)
	}
}

func TestUpdateNothingReturnsUser(t *testing.T) {
	svc, u := setup(t, &fakeUploader{})

	got, err := svc.Update(context.Background(), u, Input{Image: ptr("")})
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestUpdateMissingUser(t *testing.T) {
	svc, _ := setup(t, &fakeUploader{})
	ghost := &models.User{ID: primitive.NewObjectID()}

	_, err := svc.Update(context.Background(), ghost, Input{Bio: ptr("x")})
	assert.Equal(t, apperrors.KindNotFound, apperrors.As(err).Kind)
}
