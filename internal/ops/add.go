package ops

import (
	"database/sql"
	"strings"
	"time"

	"github.com/pvallone/quill/internal/config"
	"github.com/pvallone/quill/internal/db"
	"github.com/pvallone/quill/internal/entry"
	"github.com/pvallone/quill/internal/errors"
)

// AddInput contains parameters for the Add operation.
type AddInput struct {
	Content          string // required, markdown
	Mood             *string
	Location         *string
	WeatherCondition *string
	WeatherTemp      *float64
}

// AddOutput contains the result of the Add operation.
type AddOutput struct {
	ID        string `json:"id"`
	WordCount int    `json:"word_count"`
	CreatedAt int64  `json:"created_at"`
}

// Add creates a new journal entry.
func Add(database *sql.DB, cfg *config.Config, input AddInput) (*AddOutput, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, errors.NewInvalidRequest("content is required")
	}

	chars := entry.CountChars(input.Content)
	if chars > cfg.EntryMaxChars {
		return nil, errors.NewEntryTooLarge(cfg.EntryMaxChars, chars)
	}

	input.Mood = normalizeTag(input.Mood)
	input.Location = normalizeTag(input.Location)
	input.WeatherCondition = cleanOptionalString(input.WeatherCondition)

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	plain := entry.PlainText(input.Content)
	now := time.Now().UnixMilli()

	e := &entry.Entry{
		ID:               id,
		Content:          input.Content,
		PlainText:        plain,
		Mood:             input.Mood,
		Location:         input.Location,
		WeatherCondition: input.WeatherCondition,
		WeatherTemp:      input.WeatherTemp,
		WordCount:        entry.CountWords(plain),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := db.Insert(database, e); err != nil {
		return nil, err
	}

	return &AddOutput{
		ID:        e.ID,
		WordCount: e.WordCount,
		CreatedAt: e.CreatedAt,
	}, nil
}
