package ops

import (
	"database/sql"

	"github.com/pvallone/quill/internal/db"
	"github.com/pvallone/quill/internal/entry"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Mood           *string // optional filter
	Limit          int     // default: 20, max: 100
	Offset         int     // default: 0
	IncludeDeleted bool
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items      []entry.Summary `json:"items"`
	Pagination Pagination      `json:"pagination"`
	Sort       string          `json:"sort"`
}

// List retrieves entry summaries with pagination, newest first.
func List(database *sql.DB, input ListInput) (*ListOutput, error) {
	limit := clampLimit(input.Limit, DefaultListLimit, MaxListLimit)
	offset := max(input.Offset, 0)
	mood := normalizeTag(input.Mood)

	entries, total, err := db.ListRecent(database, mood, limit, offset, input.IncludeDeleted)
	if err != nil {
		return nil, err
	}

	items := make([]entry.Summary, 0, len(entries))
	for i := range entries {
		items = append(items, entries[i].ToSummary())
	}

	hasMore := offset+len(items) < total

	return &ListOutput{
		Items: items,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: hasMore,
			Total:   total,
		},
		Sort: "created_at_desc",
	}, nil
}
