// Package blob stores uploaded file bytes.
package blob

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_store.go -package=mocks casedesk/internal/blob Store

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no object exists under a key.
var ErrNotFound = errors.New("blob not found")

// Store holds file bytes by key.
type Store interface {
	// Put stores data under key, replacing any existing object.
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// Get returns the bytes stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// PresignedURL returns a temporary download URL, or "" when the store
	// cannot serve files directly.
	PresignedURL(ctx context.Context, key string) (string, error)
}

// NewKey returns a storage key for a file owned by ownerID. The original
// filename is kept as the last path element for readability.
func NewKey(ownerID, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "file"
	}
	return fmt.Sprintf("users/%s/%s/%s", ownerID, uuid.New().String(), name)
}
