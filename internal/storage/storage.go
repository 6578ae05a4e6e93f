// Package storage wraps the S3-compatible documents bucket. Folders are simulated
// with key prefixes ending in "/" and empty marker objects.
package storage

import (
	"context"
	"errors"
	"io"
	"time"

	"multasapi/internal/model"
)

var (
	// ErrObjectNotFound is returned when a key (or folder prefix) has no objects.
	ErrObjectNotFound = errors.New("object not found")
	// ErrObjectExists is returned when an upload or folder creation would overwrite a key.
	ErrObjectExists = errors.New("object already exists")
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known, or -1 when unknown.
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

// Storage is the bucket client used by the API and the admin CLI.
type Storage interface {
	// List returns one page of the direct children of prefix, folders first.
	List(ctx context.Context, prefix string, page, limit int) (*model.StorageListing, error)
	// CreateFolder writes an empty marker object at the normalized folder key and returns it.
	CreateFolder(ctx context.Context, folderPath string) (string, error)
	// Put uploads an object, refusing to overwrite an existing key.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Stat returns an object's info without its content.
	Stat(ctx context.Context, key string) (ObjectInfo, error)
	// Delete removes an object. Folder keys remove everything under the prefix.
	Delete(ctx context.Context, key string) error
	// FindByBasename returns the first key anywhere in the bucket whose last path element is name.
	FindByBasename(ctx context.Context, name string) (string, error)
	// ObjectKeys lists keys under prefix recursively, stopping after max keys.
	// The boolean reports whether the listing was cut short.
	ObjectKeys(ctx context.Context, prefix string, max int) (map[string]struct{}, bool, error)
	// PresignGet returns a time-limited URL that can be used to download the object without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
	// Ping checks that the bucket is reachable.
	Ping(ctx context.Context) error
}
