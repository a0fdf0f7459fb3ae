// ABOUTME: Google Cloud Storage implementation of blob.Store.
// ABOUTME: Public URLs assume uniform bucket-level access with allUsers read.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// GCS is a blob.Store backed by one Google Cloud Storage bucket.
type GCS struct {
	bucket *storage.BucketHandle
	name   string
}

// NewGCS opens a storage client with ambient credentials (ADC) and returns a
// store over the named bucket. The bucket is not created or probed here;
// the first Read/Write surfaces credential or existence problems.
func NewGCS(ctx context.Context, bucketName string) (*GCS, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	return &GCS{bucket: client.Bucket(bucketName), name: bucketName}, nil
}

func (g *GCS) Read(ctx context.Context, key string) ([]byte, error) {
	r, err := g.bucket.Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("gcs read %s: %w", key, err)
	}
	defer r.Close() //nolint:errcheck

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gcs read %s: %w", key, err)
	}
	return data, nil
}

func (g *GCS) Write(ctx context.Context, key string, data []byte, contentType string) error {
	w := g.bucket.Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("gcs write %s: %w", key, err)
	}
	// Writes are buffered; Close performs the upload and carries the real error.
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs write %s: %w", key, err)
	}
	return nil
}

func (g *GCS) Delete(ctx context.Context, key string) error {
	err := g.bucket.Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("gcs delete %s: %w", key, err)
	}
	return nil
}

func (g *GCS) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	it := g.bucket.Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("gcs list %s: %w", prefix, err)
		}
		keys = append(keys, attrs.Name)
	}
	return keys, nil
}

// PublicURL constructs the direct download URL. The bucket grants allUsers
// object read via uniform bucket-level access, so no signing is involved.
func (g *GCS) PublicURL(key string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.name, key)
}
