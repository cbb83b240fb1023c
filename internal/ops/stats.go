package ops

import (
	"context"
	"database/sql"
	"time"

	"github.com/pvallone/quill/internal/db"
	"github.com/pvallone/quill/internal/suggest"
)

const dayMillis = int64(24 * time.Hour / time.Millisecond)

// StatsInput contains parameters for the Stats operation.
type StatsInput struct{}

// StatsOutput contains aggregate journal statistics.
type StatsOutput struct {
	TotalEntries     int     `json:"total_entries"`
	TotalWords       int64   `json:"total_words"`
	AverageWords     float64 `json:"average_words"`
	WritingStreak    int     `json:"writing_streak"`
	EntriesThisWeek  int     `json:"entries_this_week"`
	EntriesThisMonth int     `json:"entries_this_month"`
}

// Stats computes aggregate statistics over active entries.
func Stats(ctx context.Context, database *sql.DB, _ StatsInput) (*StatsOutput, error) {
	count, words, err := db.Totals(ctx, database)
	if err != nil {
		return nil, err
	}

	avg := 0.0
	if count > 0 {
		avg = float64(words) / float64(count)
	}

	engine := suggest.NewEngine(NewEntrySource(database))
	streak, err := engine.CalculateWritingStreak(ctx)
	if err != nil {
		return nil, err
	}

	week, month, err := recentCounts(ctx, database)
	if err != nil {
		return nil, err
	}

	return &StatsOutput{
		TotalEntries:     count,
		TotalWords:       words,
		AverageWords:     avg,
		WritingStreak:    streak,
		EntriesThisWeek:  week,
		EntriesThisMonth: month,
	}, nil
}

// recentCounts counts entries created in the trailing 7 and 30 days.
func recentCounts(ctx context.Context, database *sql.DB) (week, month int, err error) {
	now := time.Now().UnixMilli()
	week, err = db.CountBetween(ctx, database, now-7*dayMillis, now)
	if err != nil {
		return 0, 0, err
	}
	month, err = db.CountBetween(ctx, database, now-30*dayMillis, now)
	if err != nil {
		return 0, 0, err
	}
	return week, month, nil
}
