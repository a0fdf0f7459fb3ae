package newsletter

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	jsoncanonical "github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"

	"github.com/britecreationsdylanne/brite-side/internal/blob"
)

// Publish moves a draft into the published/ namespace: copy, verify the
// copy landed intact, then delete the draft. Only drafts/ keys are
// accepted; publishing an already-published key would copy it onto itself
// and then delete it.
//
// A draft that is already gone but whose published counterpart exists is
// treated as a completed earlier publish, so retries are safe.
func (s *Service) Publish(ctx context.Context, draftKey string) (string, error) {
	if !validIssueKey(draftKey) || !strings.HasPrefix(draftKey, draftsPrefix) {
		return "", fmt.Errorf("publish %s: %w", draftKey, ErrInvalidKey)
	}
	publishedKey := publishedPrefix + strings.TrimPrefix(draftKey, draftsPrefix)

	data, err := s.store.Read(ctx, draftKey)
	if errors.Is(err, blob.ErrNotFound) {
		if _, perr := s.store.Read(ctx, publishedKey); perr == nil {
			return publishedKey, nil
		}
		return "", err
	}
	if err != nil {
		return "", fmt.Errorf("read draft: %w", err)
	}

	if err := s.store.Write(ctx, publishedKey, data, "application/json"); err != nil {
		return "", fmt.Errorf("write published: %w", err)
	}

	// The draft is deleted only once the published copy reads back with the
	// same content hash. A failed verify leaves the draft untouched.
	copied, err := s.store.Read(ctx, publishedKey)
	if err != nil {
		return "", fmt.Errorf("verify published: %w", err)
	}
	want, err := contentHash(data)
	if err != nil {
		return "", fmt.Errorf("hash draft: %w", err)
	}
	got, err := contentHash(copied)
	if err != nil {
		return "", fmt.Errorf("hash published: %w", err)
	}
	if want != got {
		return "", fmt.Errorf("publish %s: copy does not match draft", draftKey)
	}

	if err := s.store.Delete(ctx, draftKey); err != nil {
		return "", fmt.Errorf("delete draft: %w", err)
	}
	return publishedKey, nil
}

// contentHash returns the hex SHA-256 of the JCS (RFC 8785) form of raw
// JSON, so comparison ignores key order and whitespace.
func contentHash(raw []byte) (string, error) {
	jcs, err := jsoncanonical.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("canonicalize: %w", err)
	}
	sum := sha256.Sum256(jcs)
	return hex.EncodeToString(sum[:]), nil
}
