package newsletter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/britecreationsdylanne/brite-side/internal/blob"
)

// GameRecord is one stored monthly brain-teaser answer. The next issue's
// editor pulls it up to print "last month's answer".
type GameRecord struct {
	Month   string `json:"month"`
	Year    int    `json:"year"`
	Type    string `json:"type,omitempty"`
	Answer  string `json:"answer"`
	SavedAt string `json:"savedAt"`
}

// SaveGameAnswer records the answer for one month's game under
// games/{month}-{year}.json.
func (s *Service) SaveGameAnswer(ctx context.Context, month string, year int, gameType, answer string) (string, error) {
	month = strings.ToLower(strings.TrimSpace(month))
	if month == "" {
		return "", errors.New("newsletter: game month required")
	}
	now := s.now().In(s.loc)
	if year == 0 {
		year = now.Year()
	}

	rec := GameRecord{
		Month:   month,
		Year:    year,
		Type:    gameType,
		Answer:  answer,
		SavedAt: now.Format(time.RFC3339),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("encode game record: %w", err)
	}
	key := fmt.Sprintf("%s%s-%d.json", gamesPrefix, month, year)
	if err := s.store.Write(ctx, key, data, "application/json"); err != nil {
		return "", fmt.Errorf("write game record: %w", err)
	}
	return key, nil
}

// PreviousGame returns the record saved for the month before the given one,
// rolling December of the prior year when asked about January. A month with
// no saved answer yields (nil, nil).
func (s *Service) PreviousGame(ctx context.Context, month time.Month, year int) (*GameRecord, error) {
	if year == 0 {
		year = s.now().In(s.loc).Year()
	}
	prevMonth := month - 1
	prevYear := year
	if prevMonth < time.January {
		prevMonth = time.December
		prevYear--
	}

	key := fmt.Sprintf("%s%s-%d.json", gamesPrefix, strings.ToLower(prevMonth.String()), prevYear)
	data, err := s.store.Read(ctx, key)
	if errors.Is(err, blob.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read game record: %w", err)
	}
	var rec GameRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode game record: %w", err)
	}
	return &rec, nil
}
