package db

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pvallone/quill/internal/entry"
	"github.com/pvallone/quill/internal/errors"
)

// entryColumns is the column list shared by all entry SELECTs.
const entryColumns = `id, content, plain_text, mood, location,
	weather_condition, weather_temp, word_count,
	created_at, updated_at, deleted_at`

// Insert stores a new entry in the database.
func Insert(db *sql.DB, e *entry.Entry) error {
	query := `
		INSERT INTO entries (
			id, content, plain_text, mood, location,
			weather_condition, weather_temp, word_count,
			created_at, updated_at, deleted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		e.ID, e.Content, e.PlainText,
		toNullString(e.Mood), toNullString(e.Location),
		toNullString(e.WeatherCondition), toNullFloat(e.WeatherTemp),
		e.WordCount, e.CreatedAt, e.UpdatedAt, toNullInt(e.DeletedAt),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return errors.NewConflict("entry with this id already exists")
		}
		return errors.NewInternal(err)
	}

	return nil
}

// InsertTx stores a new entry within an existing transaction.
func InsertTx(tx *sql.Tx, e *entry.Entry) error {
	query := `
		INSERT INTO entries (
			id, content, plain_text, mood, location,
			weather_condition, weather_temp, word_count,
			created_at, updated_at, deleted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := tx.Exec(query,
		e.ID, e.Content, e.PlainText,
		toNullString(e.Mood), toNullString(e.Location),
		toNullString(e.WeatherCondition), toNullFloat(e.WeatherTemp),
		e.WordCount, e.CreatedAt, e.UpdatedAt, toNullInt(e.DeletedAt),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return errors.NewConflict("entry with this id already exists")
		}
		return errors.NewInternal(err)
	}

	return nil
}

// isUniqueConstraintError checks if the error is a SQLite UNIQUE constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	// SQLite returns "UNIQUE constraint failed: ..." for unique violations
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// GetByID retrieves an entry by its ULID.
// If includeDeleted is false, soft-deleted entries are excluded.
func GetByID(db *sql.DB, id string, includeDeleted bool) (*entry.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = ?`
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}

	e, err := scanEntry(db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return e, nil
}

// Latest retrieves the most recent active entry, or nil if none exist.
func Latest(ctx context.Context, db *sql.DB) (*entry.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC LIMIT 1`

	e, err := scanEntry(db.QueryRowContext(ctx, query))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return e, nil
}

// ListRecent returns active entries newest-first with pagination, plus the
// total count of matching entries. An optional mood filters by the
// normalized mood tag.
func ListRecent(db *sql.DB, mood *string, limit, offset int, includeDeleted bool) ([]entry.Entry, int, error) {
	where := "1=1"
	args := []any{}
	if !includeDeleted {
		where += " AND deleted_at IS NULL"
	}
	if mood != nil {
		where += " AND mood = ?"
		args = append(args, *mood)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM entries WHERE " + where
	if err := db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	query := `SELECT ` + entryColumns + ` FROM entries WHERE ` + where +
		` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	entries, err := collectEntries(rows)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// EntriesBetween returns active entries whose created_at falls within
// [start, end] (epoch millis, inclusive), newest-first.
func EntriesBetween(ctx context.Context, db *sql.DB, start, end int64) ([]entry.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries
		WHERE deleted_at IS NULL AND created_at BETWEEN ? AND ?
		ORDER BY created_at DESC`

	rows, err := db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// AllEntries returns every entry newest-first, optionally including
// soft-deleted ones. Used by export.
func AllEntries(db *sql.DB, includeDeleted bool) ([]entry.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries`
	if !includeDeleted {
		query += " WHERE deleted_at IS NULL"
	}
	query += " ORDER BY created_at DESC"

	rows, err := db.Query(query)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// CountBetween returns the number of active entries whose created_at falls
// within [start, end] (epoch millis, inclusive).
func CountBetween(ctx context.Context, db *sql.DB, start, end int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM entries
		WHERE deleted_at IS NULL AND created_at BETWEEN ? AND ?`
	if err := db.QueryRowContext(ctx, query, start, end).Scan(&count); err != nil {
		return 0, errors.NewInternal(err)
	}
	return count, nil
}

// Totals returns the active entry count and the sum of their word counts.
func Totals(ctx context.Context, db *sql.DB) (int, int64, error) {
	var count int
	var words int64
	query := `SELECT COUNT(*), COALESCE(SUM(word_count), 0) FROM entries WHERE deleted_at IS NULL`
	if err := db.QueryRowContext(ctx, query).Scan(&count, &words); err != nil {
		return 0, 0, errors.NewInternal(err)
	}
	return count, words, nil
}

// FTSResult pairs an entry summary with a match snippet.
type FTSResult struct {
	Entry   entry.Entry
	Snippet string
}

// Snippet highlight markers produced by the FTS query below. They are
// converted to <b> tags (with everything else escaped) at the ops layer.
const (
	SnippetOpenMark  = "[[[B]]]"
	SnippetCloseMark = "[[[/B]]]"
)

// SearchFTS performs a full-text search with the given FTS5 MATCH expression.
// Results are ranked by relevance (BM25). The caller is responsible for
// producing a syntactically valid match expression (see internal/search).
func SearchFTS(ctx context.Context, db *sql.DB, matchExpr string, limit, offset int) ([]FTSResult, int, error) {
	var total int
	countQuery := `
		SELECT COUNT(*)
		FROM entries_fts f
		JOIN entries e ON e.rowid = f.rowid
		WHERE entries_fts MATCH ? AND e.deleted_at IS NULL
	`
	if err := db.QueryRowContext(ctx, countQuery, matchExpr).Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	query := `
		SELECT e.id, e.content, e.plain_text, e.mood, e.location,
			e.weather_condition, e.weather_temp, e.word_count,
			e.created_at, e.updated_at, e.deleted_at,
			snippet(entries_fts, 0, '` + SnippetOpenMark + `', '` + SnippetCloseMark + `', '...', 12)
		FROM entries_fts f
		JOIN entries e ON e.rowid = f.rowid
		WHERE entries_fts MATCH ? AND e.deleted_at IS NULL
		ORDER BY bm25(entries_fts)
		LIMIT ? OFFSET ?
	`

	rows, err := db.QueryContext(ctx, query, matchExpr, limit, offset)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	var results []FTSResult
	for rows.Next() {
		var e entry.Entry
		var mood, location, weather sql.NullString
		var temp sql.NullFloat64
		var deletedAt sql.NullInt64
		var snippet string

		err := rows.Scan(
			&e.ID, &e.Content, &e.PlainText, &mood, &location,
			&weather, &temp, &e.WordCount,
			&e.CreatedAt, &e.UpdatedAt, &deletedAt, &snippet,
		)
		if err != nil {
			return nil, 0, errors.NewInternal(err)
		}

		e.Mood = fromNullString(mood)
		e.Location = fromNullString(location)
		e.WeatherCondition = fromNullString(weather)
		e.WeatherTemp = fromNullFloat(temp)
		e.DeletedAt = fromNullInt(deletedAt)

		results = append(results, FTSResult{Entry: e, Snippet: snippet})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	return results, total, nil
}

// UpdateByID updates mutable fields of an existing entry.
// Sets updated_at to the given timestamp. Does NOT change: id, created_at.
func UpdateByID(db *sql.DB, e *entry.Entry) error {
	query := `
		UPDATE entries
		SET content = ?, plain_text = ?, mood = ?, location = ?,
			weather_condition = ?, weather_temp = ?, word_count = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := db.Exec(query,
		e.Content, e.PlainText,
		toNullString(e.Mood), toNullString(e.Location),
		toNullString(e.WeatherCondition), toNullFloat(e.WeatherTemp),
		e.WordCount, e.UpdatedAt, e.ID,
	)
	if err != nil {
		return errors.NewInternal(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if affected == 0 {
		return errors.NewNotFound(e.ID)
	}

	return nil
}

// UpdateFull replaces every field of an existing entry, including timestamps
// and deletion state. Used by import in replace mode.
func UpdateFull(db *sql.DB, e *entry.Entry) error {
	query := `
		UPDATE entries
		SET content = ?, plain_text = ?, mood = ?, location = ?,
			weather_condition = ?, weather_temp = ?, word_count = ?,
			created_at = ?, updated_at = ?, deleted_at = ?
		WHERE id = ?
	`

	result, err := db.Exec(query,
		e.Content, e.PlainText,
		toNullString(e.Mood), toNullString(e.Location),
		toNullString(e.WeatherCondition), toNullFloat(e.WeatherTemp),
		e.WordCount, e.CreatedAt, e.UpdatedAt, toNullInt(e.DeletedAt), e.ID,
	)
	if err != nil {
		return errors.NewInternal(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if affected == 0 {
		return errors.NewNotFound(e.ID)
	}

	return nil
}

// SoftDelete marks an entry as deleted at the given timestamp (epoch millis).
func SoftDelete(db *sql.DB, id string, deletedAt int64) error {
	result, err := db.Exec(
		`UPDATE entries SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		deletedAt, id,
	)
	if err != nil {
		return errors.NewInternal(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if affected == 0 {
		return errors.NewNotFound(id)
	}

	return nil
}

// Purge permanently removes soft-deleted entries. If cutoff is non-nil, only
// entries deleted at or before the cutoff (epoch millis) are removed.
// Returns the number of purged entries.
func Purge(db *sql.DB, cutoff *int64) (int, error) {
	query := `DELETE FROM entries WHERE deleted_at IS NOT NULL`
	args := []any{}
	if cutoff != nil {
		query += " AND deleted_at <= ?"
		args = append(args, *cutoff)
	}

	result, err := db.Exec(query, args...)
	if err != nil {
		return 0, errors.NewInternal(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewInternal(err)
	}

	return int(affected), nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanEntry.
type scanner interface {
	Scan(dest ...any) error
}

// scanEntry scans a single entry row using the entryColumns ordering.
func scanEntry(row scanner) (*entry.Entry, error) {
	var e entry.Entry
	var mood, location, weather sql.NullString
	var temp sql.NullFloat64
	var deletedAt sql.NullInt64

	err := row.Scan(
		&e.ID, &e.Content, &e.PlainText, &mood, &location,
		&weather, &temp, &e.WordCount,
		&e.CreatedAt, &e.UpdatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Mood = fromNullString(mood)
	e.Location = fromNullString(location)
	e.WeatherCondition = fromNullString(weather)
	e.WeatherTemp = fromNullFloat(temp)
	e.DeletedAt = fromNullInt(deletedAt)

	return &e, nil
}

// collectEntries drains rows into a slice of entries.
func collectEntries(rows *sql.Rows) ([]entry.Entry, error) {
	var entries []entry.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return entries, nil
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func toNullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func fromNullFloat(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	return &nf.Float64
}

func toNullInt(i *int64) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *i, Valid: true}
}

func fromNullInt(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	return &ni.Int64
}
