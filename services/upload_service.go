package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

const BackgroundFolder = "graduation_guardian_backgrounds"

// BackgroundUploader stores template background images on Cloudinary.
type BackgroundUploader struct {
	cld     *cloudinary.Cloudinary
	Timeout time.Duration
}

func NewBackgroundUploader(cloudinaryURL string) (*BackgroundUploader, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, err
	}
	return &BackgroundUploader{cld: cld, Timeout: 30 * time.Second}, nil
}

func (u *BackgroundUploader) Upload(ctx context.Context, r io.Reader, templateID uuid.UUID) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, u.Timeout)
	defer cancel()

	params := uploader.UploadParams{
		PublicID:     fmt.Sprintf("templates/%s_%s", templateID, uuid.New().String()),
		Folder:       BackgroundFolder,
		ResourceType: "image",
	}
	res, err := u.cld.Upload.Upload(ctx, r, params)
	if err != nil {
		return "", err
	}
	if res.Error.Message != "" {
		return "", errors.New(res.Error.Message)
	}
	return res.SecureURL, nil
}
