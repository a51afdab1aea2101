package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

var ErrInvalidPath = errors.New("invalid file path")

// FileStorage keeps checkpoint photos and other uploads under slash-separated
// keys such as "vehicles/<reservation id>/start-....jpg".
type FileStorage interface {
	// Upload writes file under key and returns the normalized key
	Upload(ctx context.Context, file io.Reader, key string, contentType string) (string, error)

	// Delete is a no-op for keys that do not exist
	Delete(ctx context.Context, key string) error

	GetURL(ctx context.Context, key string, expiry time.Duration) (string, error)

	Exists(ctx context.Context, key string) (bool, error)
}

// CleanKey normalizes key to a relative slash path. Leading "../" segments are
// dropped; a key that names the storage root itself is rejected.
func CleanKey(key string) (string, error) {
	cleaned := strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(key, "\\", "/")), "/")
	if cleaned == "" || cleaned == "." {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, key)
	}
	return cleaned, nil
}
