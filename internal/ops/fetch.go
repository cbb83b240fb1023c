package ops

import (
	"database/sql"
	"strings"

	"github.com/pvallone/quill/internal/db"
	"github.com/pvallone/quill/internal/entry"
	"github.com/pvallone/quill/internal/errors"
)

// FetchInput contains parameters for the Fetch operation.
type FetchInput struct {
	ID             string
	IncludeDeleted bool
}

// FetchOutput contains the result of the Fetch operation.
type FetchOutput struct {
	entry.Entry // embedded (copy, not pointer)
}

// Fetch retrieves an entry by ID.
func Fetch(database *sql.DB, input FetchInput) (*FetchOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	e, err := db.GetByID(database, id, input.IncludeDeleted)
	if err != nil {
		return nil, err
	}

	return &FetchOutput{Entry: *e}, nil
}
