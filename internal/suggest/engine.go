package suggest

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pvallone/quill/internal/entry"
)

// EntrySource is the read-only view of the journal the engine consumes.
// All timestamps are epoch millis; ranges are inclusive.
type EntrySource interface {
	// EntriesBetween returns active entries in [start, end], newest-first.
	EntriesBetween(ctx context.Context, start, end int64) ([]entry.Entry, error)

	// LatestEntry returns the most recent active entry, or nil if none exist.
	LatestEntry(ctx context.Context) (*entry.Entry, error)

	// CountBetween returns the number of active entries in [start, end].
	CountBetween(ctx context.Context, start, end int64) (int, error)

	// Totals returns the active entry count and summed word count.
	Totals(ctx context.Context) (count int, words int64, err error)
}

// DefaultLimit is the maximum number of suggestions per generation.
const DefaultLimit = 6

// Engine produces a bounded, varied, deterministic-per-day list of writing
// prompts derived from the journal history.
type Engine struct {
	src   EntrySource
	limit int
	now   func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLimit overrides the suggestion cap.
func WithLimit(limit int) Option {
	return func(e *Engine) {
		if limit > 0 {
			e.limit = limit
		}
	}
}

// WithClock overrides the engine's notion of "now". Used in tests to pin the
// day-of-year seed and time-of-day bucket.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an Engine reading from src.
func NewEngine(src EntrySource, opts ...Option) *Engine {
	e := &Engine{
		src:   src,
		limit: DefaultLimit,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// generator produces zero or more suggestions from the journal history.
// An empty result is a valid outcome, not an error.
type generator func(ctx context.Context, now time.Time) ([]Suggestion, error)

// generators returns the engine's signal generators in fixed order. The
// order matters for determinism: the day-seeded shuffle permutes a
// stable concatenation.
func (e *Engine) generators() []generator {
	return []generator{
		e.locationSuggestions,
		e.weatherSuggestion,
		e.streakSuggestion,
		e.timeOfDaySuggestion,
		e.anniversarySuggestion,
		e.moodSuggestion,
		e.habitSuggestion,
	}
}

// Generate runs all generators concurrently, concatenates their output, and
// returns a day-stable selection of at most the configured limit. The same
// calendar day always yields the same selection and ordering; a failure in
// any generator cancels the rest and propagates.
func (e *Engine) Generate(ctx context.Context) ([]Suggestion, error) {
	now := e.now()
	gens := e.generators()
	results := make([][]Suggestion, len(gens))

	g, ctx := errgroup.WithContext(ctx)
	for i, gen := range gens {
		g.Go(func() error {
			out, err := gen(ctx, now)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []Suggestion
	for _, out := range results {
		all = append(all, out...)
	}

	// Day-of-year seed: stable within a day, different across days.
	rng := rand.New(rand.NewSource(int64(now.YearDay())))
	rng.Shuffle(len(all), func(i, j int) {
		all[i], all[j] = all[j], all[i]
	})

	if len(all) > e.limit {
		all = all[:e.limit]
	}
	return all, nil
}

// Recent re-runs generation and orders by creation time, newest first.
// Since suggestions are never persisted, every generation stamps "now", so
// this behaves as "freshly generated, newest-first".
func (e *Engine) Recent(ctx context.Context) ([]Suggestion, error) {
	suggestions, err := e.Generate(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].CreatedAt > suggestions[j].CreatedAt
	})
	return suggestions, nil
}
