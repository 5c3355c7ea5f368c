// Package profile applies user-initiated profile edits.
package profile

import (
	"context"
	"errors"
	"strings"

	"kindred/apperrors"
	"kindred/media"
	"kindred/models"
	"kindred/store"

	"go.uber.org/zap"
)

// Input lists the editable fields. Anything else in the request body is
// ignored, so credentials and relationship state cannot be written here.
type Input struct {
	Name              *string `json:"name"`
	Bio               *string `json:"bio"`
	Age               *int    `json:"age"`
	Gender            *string `json:"gender"`
	GenderPreferences *string `json:"genderPreferences"`
	Image             *string `json:"image"`
}

type Service struct {
	users    store.Users
	uploader media.Uploader
	log      *zap.Logger
}

func NewService(users store.Users, uploader media.Uploader, log *zap.Logger) *Service {
	return &Service{users: users, uploader: uploader, log: log}
}

func (s *Service) Update(ctx context.Context, user *models.User, in Input) (*models.User, error) {
	upd, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	if in.Image != nil && *in.Image != "" {
		if err := media.ValidateDataURI(*in.Image); err != nil {
			return nil, apperrors.Validation("Invalid image format.")
		}
		url, err := s.uploader.UploadImage(ctx, *in.Image)
		if err != nil {
			s.log.Warn("image upload failed", zap.String("user", user.ID.Hex()), zap.Error(err))
			return nil, &apperrors.Error{
				Kind:    apperrors.KindValidation,
				Message: "Error uploading image, please try again later.",
				Err:     err,
			}
		}
		upd.Image = &url
	}

	if upd.Empty() {
		return user, nil
	}

	updated, err := s.users.UpdateProfile(ctx, user.ID, upd)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFound("User not found.")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return updated, nil
}

func (s *Service) validate(in Input) (models.ProfileUpdate, error) {
	var upd models.ProfileUpdate

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return upd, apperrors.Validation("Name cannot be empty")
		}
		upd.Name = &name
	}
	if in.Bio != nil {
		bio := strings.TrimSpace(*in.Bio)
		upd.Bio = &bio
	}
	if in.Age != nil {
		if *in.Age < 18 {
			return upd, apperrors.Validation("You must be at least 18 years old")
		}
		upd.Age = in.Age
	}
	if in.Gender != nil {
		if !models.ValidGender(*in.Gender) {
			return upd, apperrors.Validation("Invalid gender")
		}
		upd.Gender = in.Gender
	}
	if in.GenderPreferences != nil {
		if !models.ValidPreference(*in.GenderPreferences) {
			return upd, apperrors.Validation("Invalid gender preference")
		}
		upd.GenderPreferences = in.GenderPreferences
	}
	return upd, nil
}
