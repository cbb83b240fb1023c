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

// UpdateInput contains parameters for the Update operation.
type UpdateInput struct {
	ID string

	// Editable fields (nil = don't change)
	Content          *string
	Mood             *string
	Location         *string
	WeatherCondition *string
	WeatherTemp      *float64
}

// UpdateOutput contains the result of the Update operation.
type UpdateOutput struct {
	ID        string `json:"id"`
	WordCount int    `json:"word_count"`
	UpdatedAt int64  `json:"updated_at"`
}

// Update modifies an existing entry.
func Update(database *sql.DB, cfg *config.Config, input UpdateInput) (*UpdateOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	if input.Content == nil && input.Mood == nil && input.Location == nil &&
		input.WeatherCondition == nil && input.WeatherTemp == nil {
		return nil, errors.NewInvalidRequest("at least one editable field must be provided")
	}

	// Fetch existing entry (active only)
	e, err := db.GetByID(database, id, false)
	if err != nil {
		return nil, err
	}

	if input.Content != nil {
		if strings.TrimSpace(*input.Content) == "" {
			return nil, errors.NewInvalidRequest("content must not be empty")
		}
		chars := entry.CountChars(*input.Content)
		if chars > cfg.EntryMaxChars {
			return nil, errors.NewEntryTooLarge(cfg.EntryMaxChars, chars)
		}
		plain := entry.PlainText(*input.Content)
		e.Content = *input.Content
		e.PlainText = plain
		e.WordCount = entry.CountWords(plain)
	}

	if input.Mood != nil {
		e.Mood = normalizeTag(input.Mood)
	}
	if input.Location != nil {
		e.Location = normalizeTag(input.Location)
	}
	if input.WeatherCondition != nil {
		e.WeatherCondition = cleanOptionalString(input.WeatherCondition)
	}
	if input.WeatherTemp != nil {
		e.WeatherTemp = input.WeatherTemp
	}

	e.UpdatedAt = time.Now().UnixMilli()

	if err := db.UpdateByID(database, e); err != nil {
		return nil, err
	}

	return &UpdateOutput{
		ID:        e.ID,
		WordCount: e.WordCount,
		UpdatedAt: e.UpdatedAt,
	}, nil
}
