package ops

import (
	"context"
	"crypto/rand"
	"database/sql"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/pvallone/quill/internal/db"
	"github.com/pvallone/quill/internal/entry"
)

// Pagination limits
const (
	DefaultListLimit   = 20
	MaxListLimit       = 100
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// clampLimit applies default and maximum bounds to a requested limit.
func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// cleanOptionalString trims an optional string, returning nil if it becomes empty.
func cleanOptionalString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// normalizeTag applies entry.Normalize to an optional mood/location tag,
// returning nil if nothing remains. Tags are stored and filtered in
// normalized form so "Happy" and "happy" address the same entries.
func normalizeTag(s *string) *string {
	if s == nil {
		return nil
	}
	norm := entry.Normalize(*s)
	if norm == "" {
		return nil
	}
	return &norm
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// entrySource adapts the database to the suggestion engine's read interface.
type entrySource struct {
	db *sql.DB
}

// NewEntrySource wraps the database as a suggest.EntrySource.
func NewEntrySource(database *sql.DB) *entrySource {
	return &entrySource{db: database}
}

func (s *entrySource) EntriesBetween(ctx context.Context, start, end int64) ([]entry.Entry, error) {
	return db.EntriesBetween(ctx, s.db, start, end)
}

func (s *entrySource) LatestEntry(ctx context.Context) (*entry.Entry, error) {
	return db.Latest(ctx, s.db)
}

func (s *entrySource) CountBetween(ctx context.Context, start, end int64) (int, error) {
	return db.CountBetween(ctx, s.db, start, end)
}

func (s *entrySource) Totals(ctx context.Context) (int, int64, error) {
	return db.Totals(ctx, s.db)
}
