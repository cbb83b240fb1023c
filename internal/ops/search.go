package ops

import (
	"context"
	"database/sql"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/pvallone/quill/internal/db"
	"github.com/pvallone/quill/internal/entry"
	"github.com/pvallone/quill/internal/errors"
	"github.com/pvallone/quill/internal/search"
)

// Search limits
const (
	MaxQueryLength  = 1000
	MaxSnippetChars = 300
)

// SearchInput contains parameters for the Search operation.
type SearchInput struct {
	Query  string // required
	Limit  int    // default: 20, max: 100
	Offset int    // default: 0
}

// SearchResultItem wraps an entry summary with a match snippet.
type SearchResultItem struct {
	entry.Summary
	// Snippet is HTML-safe: user-controlled content is escaped; only <b>...</b>
	// highlight tags are present. Empty for date-range matches.
	Snippet string `json:"snippet"`
}

// SearchOutput contains the result of the Search operation.
type SearchOutput struct {
	Items      []SearchResultItem `json:"items"`
	Pagination Pagination         `json:"pagination"`
	Sort       string             `json:"sort"` // "relevance" or "created_at_desc"
}

// Search finds entries matching a query. Natural-language date queries
// ("yesterday", "march 5 2024") resolve to a creation-date range; anything
// else goes through full-text search ranked by relevance (BM25).
func Search(ctx context.Context, database *sql.DB, input SearchInput) (*SearchOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, errors.NewInvalidRequest("query is required")
	}
	if utf8.RuneCountInString(query) > MaxQueryLength {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("query exceeds maximum length of %d characters", MaxQueryLength))
	}

	limit := clampLimit(input.Limit, DefaultSearchLimit, MaxSearchLimit)
	offset := max(input.Offset, 0)

	if r := search.ParseDateRange(query); r != nil {
		return searchByDate(ctx, database, r, limit, offset)
	}

	matchExpr := search.BuildFTSQuery(query)
	results, total, err := db.SearchFTS(ctx, database, matchExpr, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]SearchResultItem, len(results))
	for i, r := range results {
		// Escape user content to prevent XSS, then truncate (preserves UTF-8
		// and closes unclosed tags).
		snippet := escapeSnippetHTML(r.Snippet)
		snippet = truncateSnippet(snippet, MaxSnippetChars)

		items[i] = SearchResultItem{
			Summary: r.Entry.ToSummary(),
			Snippet: snippet,
		}
	}

	hasMore := offset+len(items) < total

	return &SearchOutput{
		Items: items,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: hasMore,
			Total:   total,
		},
		Sort: "relevance",
	}, nil
}

// searchByDate lists entries created inside the resolved date range,
// newest first.
func searchByDate(ctx context.Context, database *sql.DB, r *search.DateRange, limit, offset int) (*SearchOutput, error) {
	entries, err := db.EntriesBetween(ctx, database, r.StartMillis, r.EndMillis)
	if err != nil {
		return nil, err
	}

	total := len(entries)
	if offset > total {
		offset = total
	}
	end := min(offset+limit, total)

	items := make([]SearchResultItem, 0, end-offset)
	for i := offset; i < end; i++ {
		items = append(items, SearchResultItem{Summary: entries[i].ToSummary()})
	}

	hasMore := end < total

	return &SearchOutput{
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

// truncateSnippet truncates a snippet to approximately maxChars while:
// 1. Preserving valid UTF-8 (never splits multi-byte runes)
// 2. Preserving markup integrity (closes any open <b> tags)
// 3. Preferring word boundaries when possible
func truncateSnippet(s string, maxChars int) string {
	if maxChars <= 0 {
		return "..."
	}

	if len(s) <= maxChars {
		return s
	}

	// Find a safe truncation point that doesn't split UTF-8 runes
	truncateAt := maxChars
	for truncateAt > 0 && !utf8.RuneStart(s[truncateAt]) {
		truncateAt--
	}

	if truncateAt == 0 {
		return "..."
	}

	truncated := s[:truncateAt]

	// Avoid returning malformed HTML by trimming any partial tag/entity suffix.
	// At this point the only tags present should be <b> and </b>, and user
	// content may contain HTML entities (e.g., &lt;).
	if lastLT := strings.LastIndex(truncated, "<"); lastLT != -1 && !strings.Contains(truncated[lastLT:], ">") {
		truncated = truncated[:lastLT]
	}
	if lastAmp := strings.LastIndex(truncated, "&"); lastAmp != -1 && !strings.Contains(truncated[lastAmp:], ";") {
		truncated = truncated[:lastAmp]
	}

	// Try to cut at word boundary if we're not losing too much content
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > truncateAt/2 {
		truncated = truncated[:lastSpace]
	}

	// Fix unclosed <b> tags to maintain valid HTML structure
	openTags := strings.Count(truncated, "<b>")
	closeTags := strings.Count(truncated, "</b>")
	unclosedCount := openTags - closeTags

	for range unclosedCount {
		truncated += "</b>"
	}

	return truncated + "..."
}

// escapeSnippetHTML escapes user content in a snippet while preserving our <b>
// highlight markers. This prevents XSS from user-controlled entry content.
//
// The snippet from SQLite FTS5 contains:
//   - User content (potentially malicious HTML/JS)
//   - Our markers from internal/db/queries.go snippet() args
func escapeSnippetHTML(s string) string {
	// Use unlikely placeholders that won't appear in normal content
	const (
		openPlaceholder  = "\x00QUILL_B_OPEN\x00"
		closePlaceholder = "\x00QUILL_B_CLOSE\x00"
	)

	s = strings.ReplaceAll(s, db.SnippetOpenMark, openPlaceholder)
	s = strings.ReplaceAll(s, db.SnippetCloseMark, closePlaceholder)

	// Escape all HTML in user content
	s = html.EscapeString(s)

	// Restore highlight tags (and only highlight tags).
	s = strings.ReplaceAll(s, openPlaceholder, "<b>")
	s = strings.ReplaceAll(s, closePlaceholder, "</b>")

	return s
}
