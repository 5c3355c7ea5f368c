package auth

import (
	"context"
	"testing"

	"kindred/apperrors"
	"kindred/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService(memstore.New(), NewTokenManager("secret", SessionTTL))
}

func validSignup() SignupInput {
	return SignupInput{
		Name:              "Ana",
		Email:             "Ana@Example.com",
		Password:          "secret1",
		Age:               25,
		Gender:            "female",
		GenderPreferences: "male",
	}
}

func requireKind(t *testing.T, err error, kind apperrors.Kind, msg string) {
	t.Helper()
	require.Error(t, err)
	appErr := apperrors.As(err)
	assert.Equal(t, kind, appErr.Kind)
	assert.Equal(t, msg, appErr.Message)
}

func TestSignup(t *testing.T) {
	s := newTestService()

	user, token, err := s.Signup(context.Background(), validSignup())
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.NotEqual(t, "secret1", user.Password)
	assert.True(t, CheckPassword(user.Password, "secret1"))
}

func TestSignupValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*SignupInput)
		msg    string
	}{
		{"missing name", func(in *SignupInput) { in.Name = "" }, "All fields are required"},
		{"missing age", func(in *SignupInput) { in.Age = 0 }, "All fields are required"},
		{"underage", func(in *SignupInput) { in.Age = 17 }, "You must be at least 18 years old"},
		{"short password", func(in *SignupInput) { in.Password = "12345" }, "Password must be at least 6 characters"},
		{"bad email", func(in *SignupInput) { in.Email = "ana" }, "Please provide a valid email"},
		{"bad gender", func(in *SignupInput) { in.Gender = "both" }, "Invalid gender"},
		{"bad preference", func(in *SignupInput) { in.GenderPreferences = "any" }, "Invalid gender preference"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validSignup()
			tc.mutate(&in)
			_, _, err := newTestService().Signup(context.Background(), in)
			requireKind(t, err, apperrors.KindValidation, tc.msg)
		})
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	s := newTestService()
	_, _, err := s.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	_, _, err = s.Signup(context.Background(), validSignup())
	requireKind(t, err, apperrors.KindValidation, "Email already in use")
}

func TestLogin(t *testing.T) {
	s := newTestService()
	created, _, err := s.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	user, token, err := s.Login(context.Background(), LoginInput{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.NotEmpty(t, token)

	_, _, err = s.Login(context.Background(), LoginInput{Email: "ana@example.com", Password: "wrong-password"})
	requireKind(t, err, apperrors.KindAuthentication, "Incorrect email or password")

	_, _, err = s.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "secret1"})
	requireKind(t, err, apperrors.KindAuthentication, "Incorrect email or password")

	_, _, err = s.Login(context.Background(), LoginInput{Email: "ana@example.com"})
	requireKind(t, err, apperrors.KindValidation, "All fields are required")
}

func TestAuthenticate(t *testing.T) {
	users := memstore.New()
	tokens := NewTokenManager("secret", SessionTTL)
	s := NewService(users, tokens)

	created, token, err := s.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	user, err := s.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = s.Authenticate(context.Background(), "")
	requireKind(t, err, apperrors.KindAuthentication, "Not authorized - No token provided")

	_, err = s.Authenticate(context.Background(), "garbage")
	requireKind(t, err, apperrors.KindAuthentication, "Not authorized - Invalid Token")

	ghost, err := NewTokenManager("secret", SessionTTL).Issue(created.ID)
	require.NoError(t, err)
	_, err = NewService(memstore.New(), tokens).Authenticate(context.Background(), ghost)
	requireKind(t, err, apperrors.KindAuthentication, "Not authorized - User not found")
}
