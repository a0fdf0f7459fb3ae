// Package blob abstracts the JSON-document and media store: a flat key
// namespace in a single bucket (drafts/, published/, games/, media/, config/).
//
// The production implementation is Google Cloud Storage; an in-memory
// implementation backs tests and offline tooling.
package blob

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Read when no object exists under the key.
var ErrNotFound = errors.New("blob: object not found")

// Store is the object storage contract. Delete of an absent key is not an
// error; List returns bare key names under the prefix.
type Store interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
	// PublicURL returns the browser-reachable URL for an uploaded object.
	PublicURL(key string) string
}
