package db

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/pvallone/quill/internal/entry"
	"github.com/pvallone/quill/internal/errors"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

var entrySeq int

// makeEntry builds a minimal valid entry with the given plain text and timestamp.
func makeEntry(plain string, createdAt int64) *entry.Entry {
	entrySeq++
	return &entry.Entry{
		ID:        fmt.Sprintf("01TEST%020d", entrySeq),
		Content:   plain,
		PlainText: plain,
		WordCount: entry.CountWords(plain),
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestInsertAndGetByID(t *testing.T) {
	database := testDB(t)

	mood := "calm"
	location := "harbor cafe"
	temp := 18.5
	now := time.Now().UnixMilli()

	e := makeEntry("walked along the water before work", now)
	e.Mood = &mood
	e.Location = &location
	e.WeatherCondition = stringPtr("Partly cloudy")
	e.WeatherTemp = &temp

	if err := Insert(database, e); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	got, err := GetByID(database, e.ID, false)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.PlainText != e.PlainText {
		t.Errorf("PlainText = %q, want %q", got.PlainText, e.PlainText)
	}
	if got.Mood == nil || *got.Mood != "calm" {
		t.Errorf("Mood = %v, want calm", got.Mood)
	}
	if got.Location == nil || *got.Location != "harbor cafe" {
		t.Errorf("Location = %v, want harbor cafe", got.Location)
	}
	if got.WeatherTemp == nil || *got.WeatherTemp != 18.5 {
		t.Errorf("WeatherTemp = %v, want 18.5", got.WeatherTemp)
	}
	if got.WordCount != 6 {
		t.Errorf("WordCount = %d, want 6", got.WordCount)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	database := testDB(t)

	_, err := GetByID(database, "missing", false)
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("GetByID() error = %v, want NOT_FOUND", err)
	}
}

func TestInsert_DuplicateID(t *testing.T) {
	database := testDB(t)

	e := makeEntry("first", time.Now().UnixMilli())
	if err := Insert(database, e); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	dup := makeEntry("second", time.Now().UnixMilli())
	dup.ID = e.ID
	err := Insert(database, dup)
	if !errors.Is(err, errors.ErrConflict) {
		t.Fatalf("Insert() duplicate error = %v, want CONFLICT", err)
	}
}

func TestLatest(t *testing.T) {
	database := testDB(t)

	// Empty store: nil, no error
	got, err := Latest(context.Background(), database)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if got != nil {
		t.Fatalf("Latest() on empty store = %+v, want nil", got)
	}

	now := time.Now().UnixMilli()
	older := makeEntry("older", now-1000)
	newer := makeEntry("newer", now)
	if err := Insert(database, older); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := Insert(database, newer); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	got, err = Latest(context.Background(), database)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if got == nil || got.ID != newer.ID {
		t.Errorf("Latest() = %v, want %s", got, newer.ID)
	}
}

func TestListRecent_OrderAndPagination(t *testing.T) {
	database := testDB(t)

	base := time.Now().UnixMilli()
	for i := 0; i < 5; i++ {
		e := makeEntry(fmt.Sprintf("entry number %d", i), base+int64(i*1000))
		if err := Insert(database, e); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	entries, total, err := ListRecent(database, nil, 2, 0, false)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	// Newest first
	if entries[0].CreatedAt < entries[1].CreatedAt {
		t.Errorf("entries not newest-first: %d then %d", entries[0].CreatedAt, entries[1].CreatedAt)
	}

	// Offset past the end
	entries, _, err = ListRecent(database, nil, 10, 5, false)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}
}

func TestListRecent_MoodFilter(t *testing.T) {
	database := testDB(t)

	now := time.Now().UnixMilli()
	calm := makeEntry("a calm day", now)
	calm.Mood = stringPtr("calm")
	tense := makeEntry("a tense day", now+1)
	tense.Mood = stringPtr("tense")
	for _, e := range []*entry.Entry{calm, tense} {
		if err := Insert(database, e); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	mood := "calm"
	entries, total, err := ListRecent(database, &mood, 10, 0, false)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if total != 1 || len(entries) != 1 {
		t.Fatalf("total = %d, len = %d, want 1/1", total, len(entries))
	}
	if entries[0].ID != calm.ID {
		t.Errorf("ID = %s, want %s", entries[0].ID, calm.ID)
	}
}

func TestEntriesBetween(t *testing.T) {
	database := testDB(t)

	inside := makeEntry("inside the window", 5000)
	before := makeEntry("before the window", 999)
	after := makeEntry("after the window", 10001)
	for _, e := range []*entry.Entry{inside, before, after} {
		if err := Insert(database, e); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	entries, err := EntriesBetween(context.Background(), database, 1000, 10000)
	if err != nil {
		t.Fatalf("EntriesBetween() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].ID != inside.ID {
		t.Errorf("ID = %s, want %s", entries[0].ID, inside.ID)
	}

	// Bounds are inclusive
	count, err := CountBetween(context.Background(), database, 999, 999)
	if err != nil {
		t.Fatalf("CountBetween() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountBetween(999, 999) = %d, want 1", count)
	}
}

func TestTotals(t *testing.T) {
	database := testDB(t)

	count, words, err := Totals(context.Background(), database)
	if err != nil {
		t.Fatalf("Totals() error = %v", err)
	}
	if count != 0 || words != 0 {
		t.Errorf("Totals() on empty store = %d/%d, want 0/0", count, words)
	}

	now := time.Now().UnixMilli()
	if err := Insert(database, makeEntry("three words here", now)); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := Insert(database, makeEntry("two words", now+1)); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	count, words, err = Totals(context.Background(), database)
	if err != nil {
		t.Fatalf("Totals() error = %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if words != 5 {
		t.Errorf("words = %d, want 5", words)
	}
}

func TestSearchFTS(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	now := time.Now().UnixMilli()
	if err := Insert(database, makeEntry("morning coffee at the harbor", now)); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := Insert(database, makeEntry("evening run in the park", now+1)); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	results, total, err := SearchFTS(ctx, database, `coffee*`, 10, 0)
	if err != nil {
		t.Fatalf("SearchFTS() error = %v", err)
	}
	if total != 1 || len(results) != 1 {
		t.Fatalf("total = %d, len = %d, want 1/1", total, len(results))
	}
	if results[0].Snippet == "" {
		t.Error("Snippet should not be empty")
	}

	// No hits for the no-match sentinel token
	results, total, err = SearchFTS(ctx, database, `"noresultsentinel"`, 10, 0)
	if err != nil {
		t.Fatalf("SearchFTS() sentinel error = %v", err)
	}
	if total != 0 || len(results) != 0 {
		t.Errorf("sentinel matched %d results, want 0", total)
	}
}

func TestSearchFTS_UpdateReindexes(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	e := makeEntry("original text about gardening", time.Now().UnixMilli())
	if err := Insert(database, e); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	e.Content = "now about sailing instead"
	e.PlainText = e.Content
	e.WordCount = entry.CountWords(e.Content)
	e.UpdatedAt = time.Now().UnixMilli()
	if err := UpdateByID(database, e); err != nil {
		t.Fatalf("UpdateByID() error = %v", err)
	}

	_, total, err := SearchFTS(ctx, database, `gardening*`, 10, 0)
	if err != nil {
		t.Fatalf("SearchFTS() error = %v", err)
	}
	if total != 0 {
		t.Errorf("stale index: gardening still matches %d entries", total)
	}

	_, total, err = SearchFTS(ctx, database, `sailing*`, 10, 0)
	if err != nil {
		t.Fatalf("SearchFTS() error = %v", err)
	}
	if total != 1 {
		t.Errorf("sailing matches %d entries, want 1", total)
	}
}

func TestSoftDeleteAndPurge(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	e := makeEntry("to be removed", time.Now().UnixMilli())
	if err := Insert(database, e); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	deletedAt := time.Now().UnixMilli()
	if err := SoftDelete(database, e.ID, deletedAt); err != nil {
		t.Fatalf("SoftDelete() error = %v", err)
	}

	// Hidden from default reads
	if _, err := GetByID(database, e.ID, false); !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("GetByID() after delete = %v, want NOT_FOUND", err)
	}

	// Still visible with includeDeleted
	if _, err := GetByID(database, e.ID, true); err != nil {
		t.Fatalf("GetByID(includeDeleted) error = %v", err)
	}

	// Hidden from search
	_, total, err := SearchFTS(ctx, database, `removed*`, 10, 0)
	if err != nil {
		t.Fatalf("SearchFTS() error = %v", err)
	}
	if total != 0 {
		t.Errorf("deleted entry still matches search")
	}

	// Second delete on the same id is NOT_FOUND
	if err := SoftDelete(database, e.ID, deletedAt); !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("second SoftDelete() = %v, want NOT_FOUND", err)
	}

	purged, err := Purge(database, nil)
	if err != nil {
		t.Fatalf("Purge() error = %v", err)
	}
	if purged != 1 {
		t.Errorf("purged = %d, want 1", purged)
	}

	if _, err := GetByID(database, e.ID, true); !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("GetByID() after purge = %v, want NOT_FOUND", err)
	}
}

func TestPurge_Cutoff(t *testing.T) {
	database := testDB(t)

	old := makeEntry("deleted long ago", 1000)
	recent := makeEntry("deleted just now", 2000)
	for _, e := range []*entry.Entry{old, recent} {
		if err := Insert(database, e); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}
	if err := SoftDelete(database, old.ID, 5000); err != nil {
		t.Fatalf("SoftDelete() error = %v", err)
	}
	if err := SoftDelete(database, recent.ID, 9000); err != nil {
		t.Fatalf("SoftDelete() error = %v", err)
	}

	cutoff := int64(6000)
	purged, err := Purge(database, &cutoff)
	if err != nil {
		t.Fatalf("Purge() error = %v", err)
	}
	if purged != 1 {
		t.Errorf("purged = %d, want 1 (only the old deletion)", purged)
	}
}

func stringPtr(s string) *string {
	return &s
}

func TestEntriesBetween_CancelledContext(t *testing.T) {
	database := testDB(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := EntriesBetween(ctx, database, 0, time.Now().UnixMilli()); err == nil {
		t.Error("expected error from cancelled context")
	}
}
