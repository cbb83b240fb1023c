package ops

import (
	"database/sql"
	"strings"
	"time"

	"github.com/pvallone/quill/internal/db"
	"github.com/pvallone/quill/internal/errors"
)

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	ID string
}

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// Delete soft-deletes an entry.
func Delete(database *sql.DB, input DeleteInput) (*DeleteOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	// Verify it exists and is active
	if _, err := db.GetByID(database, id, false); err != nil {
		return nil, err
	}

	if err := db.SoftDelete(database, id, time.Now().UnixMilli()); err != nil {
		return nil, err
	}

	return &DeleteOutput{
		Deleted: true,
		ID:      id,
	}, nil
}
