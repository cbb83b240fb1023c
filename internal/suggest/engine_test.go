package suggest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pvallone/quill/internal/entry"
)

// fakeSource is an in-memory EntrySource. Entries must be newest-first.
type fakeSource struct {
	entries []entry.Entry
	err     error
}

func (f *fakeSource) EntriesBetween(_ context.Context, start, end int64) ([]entry.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []entry.Entry
	for _, e := range f.entries {
		if e.CreatedAt >= start && e.CreatedAt <= end {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeSource) LatestEntry(_ context.Context) (*entry.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.entries) == 0 {
		return nil, nil
	}
	e := f.entries[0]
	return &e, nil
}

func (f *fakeSource) CountBetween(ctx context.Context, start, end int64) (int, error) {
	entries, err := f.EntriesBetween(ctx, start, end)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

func (f *fakeSource) Totals(_ context.Context) (int, int64, error) {
	if f.err != nil {
		return 0, 0, f.err
	}
	var words int64
	for _, e := range f.entries {
		words += int64(e.WordCount)
	}
	return len(f.entries), words, nil
}

// testNow is mid-afternoon on a fixed day.
var testNow = time.Date(2025, time.July, 16, 14, 0, 0, 0, time.Local)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// testEntry builds an entry with the given text at the given time.
func testEntry(text string, at time.Time) entry.Entry {
	return entry.Entry{
		ID:        fmt.Sprintf("e-%d", at.UnixMilli()),
		Content:   text,
		PlainText: text,
		WordCount: entry.CountWords(text),
		CreatedAt: at.UnixMilli(),
		UpdatedAt: at.UnixMilli(),
	}
}

// richHistory builds enough varied history that every generator has signal.
func richHistory(now time.Time) []entry.Entry {
	var entries []entry.Entry
	moods := []string{"calm", "calm", "calm", "tired", "bright"}
	locations := []string{"harbor cafe", "city library", "harbor cafe"}

	// Entries today and the previous 4 days (streak of 5), newest-first.
	for i := 0; i < 5; i++ {
		e := testEntry("a reasonably detailed entry about the day and what happened in it", now.AddDate(0, 0, -i))
		e.Mood = &moods[i]
		if i < len(locations) {
			e.Location = &locations[i]
		}
		if i == 0 {
			cond := "Light rain"
			e.WeatherCondition = &cond
		}
		entries = append(entries, e)
	}

	// One entry a year ago for the anniversary signal.
	entries = append(entries, testEntry("last summer we sailed out past the point", now.AddDate(-1, 0, 0)))

	// Older filler so totals cross the habit threshold.
	for i := 30; i < 40; i++ {
		entries = append(entries, testEntry("an older entry with a handful of words in it", now.AddDate(0, 0, -i)))
	}

	return entries
}

func TestGenerate_DeterministicWithinDay(t *testing.T) {
	src := &fakeSource{entries: richHistory(testNow)}
	engine := NewEngine(src, WithClock(fixedClock(testNow)))

	first, err := engine.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	second, err := engine.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Category != second[i].Category || first[i].Title != second[i].Title {
			t.Errorf("position %d differs: %s/%q vs %s/%q",
				i, first[i].Category, first[i].Title, second[i].Category, second[i].Title)
		}
	}
}

func TestGenerate_DifferentDaysMayDiffer(t *testing.T) {
	src := &fakeSource{entries: richHistory(testNow)}

	dayOne := NewEngine(src, WithClock(fixedClock(testNow)))
	first, err := dayOne.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// Same data, shifted clock: the shuffle seed changes with the day of year.
	// Check a run of days; at least one must produce a different ordering.
	differed := false
	for offset := 1; offset <= 5 && !differed; offset++ {
		shifted := NewEngine(src, WithClock(fixedClock(testNow.AddDate(0, 0, offset))))
		other, err := shifted.Generate(context.Background())
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if len(other) != len(first) {
			differed = true
			break
		}
		for i := range other {
			if other[i].Category != first[i].Category || other[i].Title != first[i].Title {
				differed = true
				break
			}
		}
	}
	if !differed {
		t.Error("five consecutive day seeds all produced identical output")
	}
}

func TestGenerate_CappedAtLimit(t *testing.T) {
	src := &fakeSource{entries: richHistory(testNow)}
	engine := NewEngine(src, WithClock(fixedClock(testNow)))

	suggestions, err := engine.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(suggestions) > DefaultLimit {
		t.Errorf("len(suggestions) = %d, want <= %d", len(suggestions), DefaultLimit)
	}
	// The rich history feeds all seven generators, so the cap must bind.
	if len(suggestions) != DefaultLimit {
		t.Errorf("len(suggestions) = %d, want exactly %d with rich history", len(suggestions), DefaultLimit)
	}
}

func TestGenerate_CustomLimit(t *testing.T) {
	src := &fakeSource{entries: richHistory(testNow)}
	engine := NewEngine(src, WithClock(fixedClock(testNow)), WithLimit(2))

	suggestions, err := engine.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(suggestions) != 2 {
		t.Errorf("len(suggestions) = %d, want 2", len(suggestions))
	}
}

func TestGenerate_EmptyHistory(t *testing.T) {
	engine := NewEngine(&fakeSource{}, WithClock(fixedClock(testNow)))

	suggestions, err := engine.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	// Only the time-of-day generator fires without history.
	if len(suggestions) != 1 {
		t.Fatalf("len(suggestions) = %d, want 1", len(suggestions))
	}
	if suggestions[0].Category != CategoryTimeOfDay {
		t.Errorf("Category = %s, want %s", suggestions[0].Category, CategoryTimeOfDay)
	}
}

func TestGenerate_SourceErrorPropagates(t *testing.T) {
	src := &fakeSource{err: fmt.Errorf("store unavailable")}
	engine := NewEngine(src, WithClock(fixedClock(testNow)))

	if _, err := engine.Generate(context.Background()); err == nil {
		t.Fatal("Generate() should propagate the source error")
	}
}

func TestRecent_NewestFirst(t *testing.T) {
	src := &fakeSource{entries: richHistory(testNow)}
	engine := NewEngine(src, WithClock(fixedClock(testNow)))

	suggestions, err := engine.Recent(context.Background())
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	for i := 1; i < len(suggestions); i++ {
		if suggestions[i-1].CreatedAt < suggestions[i].CreatedAt {
			t.Errorf("suggestions not newest-first at %d", i)
		}
	}
}
