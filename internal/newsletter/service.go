// Package newsletter stores draft and published issues, plus the monthly
// game answers, as JSON blobs. Keys are derived from issue month, year, and
// the saving editor, so two people drafting the same month never clobber
// each other.
package newsletter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/britecreationsdylanne/brite-side/internal/blob"
)

const (
	draftsPrefix    = "drafts/"
	publishedPrefix = "published/"
	gamesPrefix     = "games/"
)

// ErrInvalidKey rejects keys outside the drafts/ and published/ namespaces.
// Issue endpoints take caller-supplied filenames, and without this check a
// crafted filename could read or delete any object in the bucket.
var ErrInvalidKey = errors.New("newsletter: key outside drafts/ or published/")

// Service reads and writes issue blobs.
type Service struct {
	store blob.Store
	loc   *time.Location
	now   func() time.Time
}

// NewService wires the blob store and the timezone used for save timestamps
// and year defaults.
func NewService(store blob.Store, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{store: store, loc: loc, now: time.Now}
}

// validIssueKey accepts keys like drafts/august-2025-dove.json and their
// published/ counterparts, nothing else.
func validIssueKey(key string) bool {
	if strings.Contains(key, "..") || !strings.HasSuffix(key, ".json") {
		return false
	}
	return strings.HasPrefix(key, draftsPrefix) || strings.HasPrefix(key, publishedPrefix)
}

// SaveDraft stamps authorship and timestamp, derives the storage key, and
// writes the draft. The key embeds the saver's email localpart with dots
// dashed, e.g. drafts/august-2025-dove-m.json.
func (s *Service) SaveDraft(ctx context.Context, d Draft, savedBy string) (string, error) {
	now := s.now().In(s.loc)

	month := strings.ToLower(strings.TrimSpace(d.Month))
	if month == "" {
		month = "unknown"
	}
	year := d.Year
	if year == 0 {
		year = now.Year()
	}
	owner := strings.TrimSpace(savedBy)
	if owner == "" {
		owner = "unknown"
	}

	d.Month = month
	d.Year = year
	if d.UpdatesEnabled == nil {
		enabled := true
		d.UpdatesEnabled = &enabled
	}
	d.LastSavedBy = owner
	d.LastSavedAt = now.Format(time.RFC3339)

	localpart, _, _ := strings.Cut(owner, "@")
	key := fmt.Sprintf("%s%s-%d-%s.json", draftsPrefix, month, year, strings.ReplaceAll(localpart, ".", "-"))

	data, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("encode draft: %w", err)
	}
	if err := s.store.Write(ctx, key, data, "application/json"); err != nil {
		return "", fmt.Errorf("write draft: %w", err)
	}
	return key, nil
}

// ListDrafts returns draft summaries, most recently saved first.
func (s *Service) ListDrafts(ctx context.Context) ([]DraftSummary, error) {
	keys, err := s.store.List(ctx, draftsPrefix)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	out := make([]DraftSummary, 0, len(keys))
	for _, key := range keys {
		if !strings.HasSuffix(key, ".json") {
			continue
		}
		var d Draft
		if err := s.readJSON(ctx, key, &d); err != nil {
			return nil, err
		}
		out = append(out, DraftSummary{
			Month:       d.Month,
			Year:        d.Year,
			CurrentStep: d.CurrentStep,
			LastSavedBy: d.LastSavedBy,
			LastSavedAt: d.LastSavedAt,
			Filename:    key,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].LastSavedAt > out[j].LastSavedAt })
	return out, nil
}

// ListPublished returns published-issue summaries, most recent first.
func (s *Service) ListPublished(ctx context.Context) ([]PublishedSummary, error) {
	keys, err := s.store.List(ctx, publishedPrefix)
	if err != nil {
		return nil, fmt.Errorf("list published: %w", err)
	}
	out := make([]PublishedSummary, 0, len(keys))
	for _, key := range keys {
		if !strings.HasSuffix(key, ".json") {
			continue
		}
		var d Draft
		if err := s.readJSON(ctx, key, &d); err != nil {
			return nil, err
		}
		out = append(out, PublishedSummary{
			Filename:    key,
			Month:       d.Month,
			Year:        d.Year,
			LastSavedBy: d.LastSavedBy,
			LastSavedAt: d.LastSavedAt,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].LastSavedAt > out[j].LastSavedAt })
	return out, nil
}

// Load returns the raw stored JSON for one draft or published issue.
func (s *Service) Load(ctx context.Context, key string) (json.RawMessage, error) {
	if !validIssueKey(key) {
		return nil, ErrInvalidKey
	}
	data, err := s.store.Read(ctx, key)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

// LoadDraft decodes one stored issue into the Draft shape.
func (s *Service) LoadDraft(ctx context.Context, key string) (Draft, error) {
	if !validIssueKey(key) {
		return Draft{}, ErrInvalidKey
	}
	var d Draft
	if err := s.readJSON(ctx, key, &d); err != nil {
		return Draft{}, err
	}
	return d, nil
}

// Delete removes one draft or published issue. Deleting a missing key is
// not an error.
func (s *Service) Delete(ctx context.Context, key string) error {
	if !validIssueKey(key) {
		return ErrInvalidKey
	}
	return s.store.Delete(ctx, key)
}

func (s *Service) readJSON(ctx context.Context, key string, v any) error {
	data, err := s.store.Read(ctx, key)
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}
