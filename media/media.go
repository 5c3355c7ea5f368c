// Package media validates inline images and pushes them to the asset store.
package media

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var (
	ErrInvalidImage = errors.New("invalid image data URI")
	ErrDisabled     = errors.New("image uploads are not configured")
)

// ValidateDataURI accepts only base64 "data:image/<type>;base64,<payload>"
// values whose payload decodes.
func ValidateDataURI(uri string) error {
	rest, ok := strings.CutPrefix(uri, "data:image/")
	if !ok {
		return ErrInvalidImage
	}
	mediaType, payload, ok := strings.Cut(rest, ";base64,")
	if !ok || mediaType == "" || payload == "" {
		return ErrInvalidImage
	}
	if _, err := base64.StdEncoding.DecodeString(payload); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return nil
}

// Uploader stores an image and returns its public URL.
type Uploader interface {
	UploadImage(ctx context.Context, dataURI string) (string, error)
}

type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryUploader(cloudinaryURL, folder string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config: %w", err)
	}
	return &CloudinaryUploader{cld: cld, folder: folder}, nil
}

func (u *CloudinaryUploader) UploadImage(ctx context.Context, dataURI string) (string, error) {
	res, err := u.cld.Upload.Upload(ctx, dataURI, uploader.UploadParams{
		Folder:         u.folder,
		Transformation: "c_limit,w_800,h_800,q_auto",
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	return res.SecureURL, nil
}

// DisabledUploader is used when no asset store is configured.
type DisabledUploader struct{}

func (DisabledUploader) UploadImage(context.Context, string) (string, error) {
	return "", ErrDisabled
}
