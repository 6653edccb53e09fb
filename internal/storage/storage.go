package storage

import "context"

// FileStorage serves binary blobs (avatars, post images) by key.
type FileStorage interface {
	GetObject(ctx context.Context, key string) ([]byte, error)
	PutObject(ctx context.Context, key string, body []byte) error
}
