package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kindred/apperrors"
	"kindred/models"
	"kindred/store"

	"github.com/go-playground/validator/v10"
)

const (
	minAge            = 18
	minPasswordLength = 6
)

type SignupInput struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Password          string `json:"password"`
	Age               int    `json:"age"`
	Gender            string `json:"gender"`
	GenderPreferences string `json:"genderPreferences"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Service owns account creation and credential checks.
type Service struct {
	users    store.Users
	tokens   *TokenManager
	validate *validator.Validate
}

func NewService(users store.Users, tokens *TokenManager) *Service {
	return &Service{users: users, tokens: tokens, validate: validator.New()}
}

// Signup validates the input, stores the user with a bcrypt hash and
// returns it together with a session token.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*models.User, string, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if in.Name == "" || in.Email == "" || in.Password == "" || in.Age == 0 ||
		in.Gender == "" || in.GenderPreferences == "" {
		return nil, "", apperrors.Validation("All fields are required")
	}
	if in.Age < minAge {
		return nil, "", apperrors.Validation("You must be at least 18 years old")
	}
	if len(in.Password) < minPasswordLength {
		return nil, "", apperrors.Validation("Password must be at least 6 characters")
	}
	if err := s.validate.Var(in.Email, "email"); err != nil {
		return nil, "", apperrors.Validation("Please provide a valid email")
	}
	if !models.ValidGender(in.Gender) {
		return nil, "", apperrors.Validation("Invalid gender")
	}
	if !models.ValidPreference(in.GenderPreferences) {
		return nil, "", apperrors.Validation("Invalid gender preference")
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, "", apperrors.Internal(fmt.Errorf("hash password: %w", err))
	}

	user := &models.User{
		Name:              in.Name,
		Email:             in.Email,
		Password:          hashed,
		Age:               in.Age,
		Gender:            in.Gender,
		GenderPreferences: in.GenderPreferences,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, "", apperrors.Validation("Email already in use")
		}
		return nil, "", apperrors.Internal(err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", apperrors.Internal(err)
	}
	return user, token, nil
}

// Login never tells an unknown email apart from a wrong password.
func (s *Service) Login(ctx context.Context, in LoginInput) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, "", apperrors.Validation("All fields are required")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, "", apperrors.Authentication("Incorrect email or password")
	}
	if err != nil {
		return nil, "", apperrors.Internal(err)
	}
	if !CheckPassword(user.Password, in.Password) {
		return nil, "", apperrors.Authentication("Incorrect email or password")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", apperrors.Internal(err)
	}
	return user, token, nil
}

// Authenticate resolves the user behind a session token.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, apperrors.Authentication("Not authorized - No token provided")
	}
	id, err := s.tokens.Verify(token)
	if err != nil {
		return nil, &apperrors.Error{Kind: apperrors.KindAuthentication, Message: "Not authorized - Invalid Token", Err: err}
	}

	user, err := s.users.GetUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.Authentication("Not authorized - User not found")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return user, nil
}
