package image

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"mymixes/domain"
	"mymixes/internal/utils/storage"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

const folder = "mymixes-recipes"

type (
	ImageService interface {
		UploadImage(ctx context.Context, file *multipart.FileHeader) (domain.UploadImageResponse, error)
	}

	imageService struct {
		s3 storage.AwsS3
	}
)

// NewImageService accepts a nil s3; every upload then fails with domain.ErrStorageDisabled.
func NewImageService(s3 storage.AwsS3) ImageService {
	return &imageService{s3: s3}
}

func (s *imageService) UploadImage(ctx context.Context, file *multipart.FileHeader) (domain.UploadImageResponse, error) {
	if s.s3 == nil {
		return domain.UploadImageResponse{}, domain.ErrStorageDisabled
	}
	if file == nil {
		return domain.UploadImageResponse{}, domain.ErrImageRequired
	}
	if !storage.IsAllowed(file.Header.Get("Content-Type"), storage.AllowImage...) {
		return domain.UploadImageResponse{}, domain.ErrInvalidImageType
	}
	if file.Size > domain.MaxImageSize {
		return domain.UploadImageResponse{}, domain.ErrImageTooLarge
	}

	objectKey, err := s.s3.UploadFile(ctx, uuid.NewString(), file, folder, storage.AllowImage...)
	if errors.Is(err, storage.ErrFileTypeNotAllowed) {
		return domain.UploadImageResponse{}, domain.ErrInvalidImageType
	}
	if err != nil {
		return domain.UploadImageResponse{}, fmt.Errorf("upload image: %w", err)
	}

	log.Infof("image uploaded: %s (%d bytes)", objectKey, file.Size)
	return domain.UploadImageResponse{
		Success:  true,
		ImageURL: s.s3.GetPublicLinkKey(objectKey),
		PublicID: objectKey,
	}, nil
}
