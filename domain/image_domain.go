package domain

import "errors"

const MaxImageSize = 10 << 20

var (
	MessageImageRequired   = "No image file provided"
	MessageStorageDisabled = "Image storage is not configured"

	ErrImageRequired    = errors.New("no image file provided")
	ErrInvalidImageType = errors.New("only image files are allowed")
	ErrImageTooLarge    = errors.New("image exceeds the 10MB limit")
	ErrStorageDisabled  = errors.New("image storage is not configured")
)

type UploadImageResponse struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl"`
	PublicID string `json:"publicId"`
}
