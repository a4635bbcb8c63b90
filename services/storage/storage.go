package storage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/asset"
)

// StorageService stores uploaded files and hands out URLs for them. Profile
// photos get plain URLs; identity documents get signed, short-lived ones.
type StorageService interface {
	// UploadFile uploads a local file into the given folder and returns its
	// permanent public ID.
	UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error)
	// DeleteFile removes a file by its public ID.
	DeleteFile(ctx context.Context, publicID string) error
	// GetDownloadURL returns the public URL for a file.
	GetDownloadURL(ctx context.Context, resourceType, publicID string) (string, error)
	// GetSecureDownloadURL returns a signed URL that expires after the given
	// duration, for identity documents that must not be publicly reachable.
	GetSecureDownloadURL(ctx context.Context, resourceType, publicID string, expires time.Duration) (string, error)
}

// CloudinaryStorage implements StorageService on Cloudinary.
type CloudinaryStorage struct {
	cld       *cloudinary.Cloudinary
	cloudName string
	apiSecret string
}

// NewStorageService creates a Cloudinary-backed StorageService.
func NewStorageService(cld *cloudinary.Cloudinary, cloudName, apiSecret string) StorageService {
	return &CloudinaryStorage{
		cld:       cld,
		cloudName: cloudName,
		apiSecret: apiSecret,
	}
}

func (s *CloudinaryStorage) UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, localFilePath, uploader.UploadParams{Folder: destFolder})
	if err != nil {
		return "", fmt.Errorf("storage upload failed: %w", err)
	}
	if result.PublicID == "" {
		return "", fmt.Errorf("storage upload returned no public ID")
	}
	return result.PublicID, nil
}

func (s *CloudinaryStorage) DeleteFile(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("storage delete failed: %w", err)
	}
	return nil
}

func (s *CloudinaryStorage) getAsset(resourceType, publicID string) (*asset.Asset, error) {
	switch resourceType {
	case "image":
		return s.cld.Image(publicID)
	case "video":
		return s.cld.Video(publicID)
	default:
		return s.cld.Media(publicID)
	}
}

func (s *CloudinaryStorage) GetDownloadURL(_ context.Context, resourceType, publicID string) (string, error) {
	a, err := s.getAsset(resourceType, publicID)
	if err != nil {
		return "", fmt.Errorf("storage asset lookup failed: %w", err)
	}
	url, err := a.String()
	if err != nil {
		return "", fmt.Errorf("storage URL build failed: %w", err)
	}
	return url, nil
}

// GetSecureDownloadURL signs "expires_at" and "public_id" with the API secret
// using SHA-1, the scheme Cloudinary expects for authenticated resources.
func (s *CloudinaryStorage) GetSecureDownloadURL(_ context.Context, resourceType, publicID string, expires time.Duration) (string, error) {
	expiresAt := time.Now().Add(expires).Unix()
	stringToSign := fmt.Sprintf("expires_at=%d&public_id=%s%s", expiresAt, publicID, s.apiSecret)
	sum := sha1.Sum([]byte(stringToSign))
	signature := hex.EncodeToString(sum[:])
	return fmt.Sprintf("https://res.cloudinary.com/%s/%s/authenticated/s--%s--/expires_%d/%s",
		s.cloudName, resourceType, signature, expiresAt, publicID), nil
}
