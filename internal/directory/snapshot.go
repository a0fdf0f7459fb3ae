package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/britecreationsdylanne/brite-side/internal/blob"
)

// snapshotKey is where the roster lives inside the bucket.
const snapshotKey = "config/employees.json"

// BlobSnapshots persists roster snapshots as one JSON object in blob storage.
type BlobSnapshots struct {
	store blob.Store
}

// NewBlobSnapshots wraps a blob store as a SnapshotStore.
func NewBlobSnapshots(store blob.Store) *BlobSnapshots {
	return &BlobSnapshots{store: store}
}

// LoadSnapshot reads and decodes the stored roster. A missing object returns
// (nil, nil). Snapshots written before versioning (a bare employee array)
// decode as version 1.
func (b *BlobSnapshots) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	raw, err := b.store.Read(ctx, snapshotKey)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load employee snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err == nil && snap.Employees != nil {
		return &snap, nil
	}
	var legacy []Employee
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return nil, fmt.Errorf("decode employee snapshot: %w", err)
	}
	return &Snapshot{Version: 1, Employees: legacy}, nil
}

// SaveSnapshot writes the roster as indented JSON.
func (b *BlobSnapshots) SaveSnapshot(ctx context.Context, snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode employee snapshot: %w", err)
	}
	if err := b.store.Write(ctx, snapshotKey, data, "application/json"); err != nil {
		return fmt.Errorf("save employee snapshot: %w", err)
	}
	return nil
}
