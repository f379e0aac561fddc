// Package storage archives raw netlist documents in an S3-compatible object
// store.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"time"
)

// ErrObjectNotFound is returned when a key does not exist in the bucket.
var ErrObjectNotFound = errors.New("object not found")

// ArchivePrefix is the key prefix for archived netlist documents.
const ArchivePrefix = "netlists"

// ArchiveKey returns the object key of the raw document for netlist id.
func ArchiveKey(id string) string {
	return path.Join(ArchivePrefix, id+".json")
}

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known, or -1 to let the
// implementation stream in chunks.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is an S3-compatible object storage client.
type Storage interface {
	// Put uploads an object under the given key.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited download URL for the object.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
