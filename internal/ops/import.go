package ops

import (
	"bufio"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pvallone/quill/internal/config"
	"github.com/pvallone/quill/internal/db"
	"github.com/pvallone/quill/internal/entry"
	"github.com/pvallone/quill/internal/errors"
)

// ImportMode controls collision behavior during import.
type ImportMode string

const (
	ImportModeError   ImportMode = "error"   // fail on collision (atomic)
	ImportModeSkip    ImportMode = "skip"    // keep existing entry on collision
	ImportModeReplace ImportMode = "replace" // overwrite on collision
)

// ImportInput contains parameters for the Import operation.
type ImportInput struct {
	Path string     // required
	Mode ImportMode // default: error
}

// ImportOutput contains the result of the Import operation.
type ImportOutput struct {
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	Errors   []ImportError `json:"errors"`
}

// ImportError represents an error that occurred during import.
type ImportError struct {
	Line    int    `json:"line,omitempty"`
	ID      string `json:"id,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Import reads journal entries from a JSONL export file.
func Import(database *sql.DB, cfg *config.Config, input ImportInput) (*ImportOutput, error) {
	if input.Path == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}
	if input.Mode == "" {
		input.Mode = ImportModeError
	}
	if input.Mode != ImportModeError && input.Mode != ImportModeSkip && input.Mode != ImportModeReplace {
		return nil, errors.NewInvalidRequest("mode must be one of: error, skip, replace")
	}

	if err := ValidatePath(input.Path, PathCheckRead, cfg); err != nil {
		return nil, err
	}

	if _, err := os.Stat(input.Path); os.IsNotExist(err) {
		return nil, errors.NewFileNotFound(input.Path)
	}

	file, err := openFileNoFollowRead(input.Path)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to open import file: %w", err))
	}
	defer file.Close()

	records, parseErrors := parseExportFile(file)

	// For mode:error, fail on any parse errors
	if input.Mode == ImportModeError && len(parseErrors) > 0 {
		return &ImportOutput{
			Imported: 0,
			Skipped:  0,
			Errors:   parseErrors,
		}, nil
	}

	switch input.Mode {
	case ImportModeError:
		return importModeError(database, records)
	default:
		return importModeLenient(database, records, parseErrors, input.Mode)
	}
}

// parseExportFile parses a JSONL export file into records.
func parseExportFile(file *os.File) ([]entry.ExportRecord, []ImportError) {
	var records []entry.ExportRecord
	var parseErrors []ImportError

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()

		var record entry.ExportRecord
		if err := json.Unmarshal(line, &record); err != nil {
			parseErrors = append(parseErrors, ImportError{
				Line:    lineNum,
				Code:    "PARSE_ERROR",
				Message: fmt.Sprintf("invalid JSON: %v", err),
			})
			continue
		}

		// Skip header line
		if record.QuillExport {
			continue
		}

		if record.ID == "" {
			parseErrors = append(parseErrors, ImportError{
				Line:    lineNum,
				Code:    "INVALID_RECORD",
				Message: "missing id field",
			})
			continue
		}

		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		parseErrors = append(parseErrors, ImportError{
			Line:    lineNum,
			Code:    "READ_ERROR",
			Message: fmt.Sprintf("failed to read file: %v", err),
		})
	}

	return records, parseErrors
}

// importModeError imports all records atomically, aborting on any collision.
func importModeError(database *sql.DB, records []entry.ExportRecord) (*ImportOutput, error) {
	tx, err := database.Begin()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer tx.Rollback() //nolint:errcheck

	imported := 0

	for i := range records {
		record := &records[i]

		existing, err := db.GetByID(database, record.ID, true)
		if err != nil && !errors.Is(err, errors.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			return &ImportOutput{
				Imported: 0,
				Skipped:  0,
				Errors: []ImportError{{
					ID:      record.ID,
					Code:    "ID_COLLISION",
					Message: fmt.Sprintf("entry with id %q already exists", record.ID),
				}},
			}, nil
		}

		if err := db.InsertTx(tx, record.ToEntry()); err != nil {
			return nil, err
		}
		imported++
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return &ImportOutput{
		Imported: imported,
		Skipped:  0,
		Errors:   []ImportError{},
	}, nil
}

// importModeLenient imports records one by one, skipping or replacing on
// collision depending on mode.
func importModeLenient(database *sql.DB, records []entry.ExportRecord, parseErrors []ImportError, mode ImportMode) (*ImportOutput, error) {
	imported := 0
	skipped := len(parseErrors)
	importErrors := append([]ImportError{}, parseErrors...)

	for i := range records {
		record := &records[i]
		e := record.ToEntry()

		existing, err := db.GetByID(database, record.ID, true)
		if err != nil && !errors.Is(err, errors.ErrNotFound) {
			return nil, err
		}

		switch {
		case existing == nil:
			if err := db.Insert(database, e); err != nil {
				importErrors = append(importErrors, ImportError{
					ID:      e.ID,
					Code:    "INSERT_FAILED",
					Message: fmt.Sprintf("failed to insert: %v", err),
				})
				skipped++
				continue
			}
			imported++
		case mode == ImportModeReplace:
			if err := db.UpdateFull(database, e); err != nil {
				importErrors = append(importErrors, ImportError{
					ID:      e.ID,
					Code:    "UPDATE_FAILED",
					Message: fmt.Sprintf("failed to replace: %v", err),
				})
				skipped++
				continue
			}
			imported++
		default:
			skipped++
		}
	}

	return &ImportOutput{
		Imported: imported,
		Skipped:  skipped,
		Errors:   importErrors,
	}, nil
}
