// Package storage keeps encrypted backup payloads in S3-compatible object
// storage (AWS S3 or MinIO).
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ObjectStore is the subset of object storage the backup service needs.
// Get returns common.ErrorNotFound for a missing key.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// NewObjectKey returns a fresh key for a backup of userID created at t.
func NewObjectKey(userID string, t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("users/%s/%d/%02d/%02d/%s", userID, t.Year(), t.Month(), t.Day(), uuid.New())
}
