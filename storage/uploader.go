package storage

import (
	"context"
	"io"
)

// UploadResult describes a stored object. Key is what callers persist on the
// owning record (users.avatar_key, tournaments.logo_key); Location is the
// bucket-internal URL and is not served to clients.
type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader stores player avatars and tournament logos. Keys are scoped to
// the owning entity, `users/{id}/avatar.{ext}` and `tournaments/{id}/logo.{ext}`,
// so re-uploading replaces the previous image instead of orphaning it.
// GetPublicURL turns a stored key into the URL handed to clients.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}
