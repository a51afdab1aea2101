package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/sarang-church/groupware-backend-go/internal/pkg/storage"
)

const (
	// Checkpoint photos are shrunk to fit this box before storing
	maxPhotoDimension = 1600
	photoQuality      = 80
	maxPhotoBytes     = 10 << 20
	// Decoded pixel budget; a small compressed file can declare a huge canvas
	maxPhotoPixels = 40_000_000
)

var (
	ErrInvalidFileType = errors.New("invalid file type: only jpg, jpeg, png allowed")
	ErrFileTooLarge    = errors.New("file exceeds the 10MB limit")
	ErrImageTooLarge   = errors.New("image exceeds the 40 megapixel limit")
)

type FileService interface {
	// UploadCheckpointPhoto stores a vehicle pickup or return photo and returns its key.
	UploadCheckpointPhoto(ctx context.Context, reservationID string, stage string, file io.Reader, filename string) (string, error)

	// Generic operations
	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
	now     func() time.Time
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
		now:     time.Now,
	}
}

// UploadCheckpointPhoto implements FileService.
// Photos are re-encoded as JPEG with EXIF orientation applied.
func (s *fileServiceImpl) UploadCheckpointPhoto(ctx context.Context, reservationID string, stage string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return "", ErrInvalidFileType
	}

	buffer, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(buffer) > maxPhotoBytes {
		return "", ErrFileTooLarge
	}

	compressed, err := normalizePhoto(buffer)
	if err != nil {
		return "", err
	}

	// vehicles/{reservationID}/{stage}-{timestamp}-{uuid}.jpg
	newFilename := fmt.Sprintf("%s-%d-%s.jpg", stage, s.now().Unix(), uuid.New().String())
	key := path.Join("vehicles", reservationID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, bytes.NewReader(compressed), key, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload checkpoint photo: %w", err)
	}

	return uploadedPath, nil
}

// DeleteFile deletes a file
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// GetFileURL generates URL to access file
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}

func normalizePhoto(buffer []byte) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFileType, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > maxPhotoPixels {
		return nil, ErrImageTooLarge
	}

	img, err := imaging.Decode(bytes.NewReader(buffer), imaging.AutoOrientation(true))
	if err != nil {
		// Truncated or corrupt data is bad input, not a server fault
		return nil, fmt.Errorf("%w: %v", ErrInvalidFileType, err)
	}

	b := img.Bounds()
	if b.Dx() > maxPhotoDimension || b.Dy() > maxPhotoDimension {
		img = imaging.Fit(img, maxPhotoDimension, maxPhotoDimension, imaging.Lanczos)
	}

	var out bytes.Buffer
	if err := imaging.Encode(&out, img, imaging.JPEG, imaging.JPEGQuality(photoQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return out.Bytes(), nil
}
