package ops

import (
	"context"
	"database/sql"

	"github.com/pvallone/quill/internal/config"
	"github.com/pvallone/quill/internal/errors"
	"github.com/pvallone/quill/internal/suggest"
)

// SuggestInput contains parameters for the Suggest operation.
type SuggestInput struct {
	Limit  int  // default: cfg.SuggestionLimit
	Recent bool // order by creation time, newest first
}

// SuggestOutput contains the result of the Suggest operation.
type SuggestOutput struct {
	Items []suggest.Suggestion `json:"items"`
}

// Suggest generates writing prompts from recent journal history.
func Suggest(ctx context.Context, database *sql.DB, cfg *config.Config, input SuggestInput) (*SuggestOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = cfg.SuggestionLimit
	}

	var opts []suggest.Option
	if limit > 0 {
		opts = append(opts, suggest.WithLimit(limit))
	}

	engine := suggest.NewEngine(NewEntrySource(database), opts...)

	var items []suggest.Suggestion
	var err error
	if input.Recent {
		items, err = engine.Recent(ctx)
	} else {
		items, err = engine.Generate(ctx)
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.NewCancelled("suggest")
		}
		return nil, err
	}

	if items == nil {
		items = []suggest.Suggestion{}
	}

	return &SuggestOutput{Items: items}, nil
}
