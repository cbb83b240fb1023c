package mcp

import "github.com/mark3labs/mcp-go/mcp"

var addToolDef = mcp.NewTool("journal_add",
	mcp.WithDescription("Create a new journal entry. Content is markdown; mood, location and weather are optional metadata."),
	mcp.WithString("content", mcp.Required(), mcp.Description("Entry content in markdown")),
	mcp.WithString("mood", mcp.Description("Mood tag, e.g. calm, anxious, excited")),
	mcp.WithString("location", mcp.Description("Where the entry was written")),
	mcp.WithString("weather_condition", mcp.Description("Weather at writing time, e.g. sunny, rain")),
	mcp.WithNumber("weather_temp", mcp.Description("Temperature in degrees Celsius")),
)

var fetchToolDef = mcp.NewTool("journal_fetch",
	mcp.WithDescription("Retrieve a single journal entry by its ID."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Entry ULID")),
	mcp.WithBoolean("include_deleted", mcp.Description("Also match soft-deleted entries")),
)

var listToolDef = mcp.NewTool("journal_list",
	mcp.WithDescription("List journal entry summaries, newest first, with pagination."),
	mcp.WithString("mood", mcp.Description("Filter by mood tag")),
	mcp.WithNumber("limit", mcp.Description("Max results (default 20, max 100)")),
	mcp.WithNumber("offset", mcp.Description("Pagination offset")),
	mcp.WithBoolean("include_deleted", mcp.Description("Include soft-deleted entries")),
)

var searchToolDef = mcp.NewTool("journal_search",
	mcp.WithDescription("Search entries. Natural-language dates (\"yesterday\", \"last week\", \"march 5 2024\") match by creation date; other queries use full-text search."),
	mcp.WithString("query", mcp.Required(), mcp.Description("Search text or date phrase")),
	mcp.WithNumber("limit", mcp.Description("Max results (default 20, max 100)")),
	mcp.WithNumber("offset", mcp.Description("Pagination offset")),
)

var suggestToolDef = mcp.NewTool("journal_suggest",
	mcp.WithDescription("Generate writing prompts from recent journal history (locations, moods, streaks, anniversaries)."),
	mcp.WithNumber("limit", mcp.Description("Max suggestions (default 6)")),
	mcp.WithBoolean("recent", mcp.Description("Order by creation time, newest first")),
)

var statsToolDef = mcp.NewTool("journal_stats",
	mcp.WithDescription("Aggregate journal statistics: totals, average length, writing streak, recent activity."),
)

var updateToolDef = mcp.NewTool("journal_update",
	mcp.WithDescription("Update an existing entry. Only provided fields change."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Entry ULID")),
	mcp.WithString("content", mcp.Description("Replacement markdown content")),
	mcp.WithString("mood", mcp.Description("Replacement mood tag")),
	mcp.WithString("location", mcp.Description("Replacement location")),
	mcp.WithString("weather_condition", mcp.Description("Replacement weather condition")),
	mcp.WithNumber("weather_temp", mcp.Description("Replacement temperature in degrees Celsius")),
)

var deleteToolDef = mcp.NewTool("journal_delete",
	mcp.WithDescription("Soft-delete an entry. Deleted entries are recoverable until purged."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Entry ULID")),
)

var purgeToolDef = mcp.NewTool("journal_purge",
	mcp.WithDescription("Permanently remove soft-deleted entries."),
	mcp.WithNumber("older_than_days", mcp.Description("Only purge entries deleted more than N days ago")),
)

var exportToolDef = mcp.NewTool("journal_export",
	mcp.WithDescription("Export entries to a JSONL file under ~/.quill/exports or a configured allowed path."),
	mcp.WithString("path", mcp.Description("Destination .jsonl path (default: ~/.quill/exports/journal-<timestamp>.jsonl)")),
	mcp.WithBoolean("include_deleted", mcp.Description("Include soft-deleted entries")),
)

var importToolDef = mcp.NewTool("journal_import",
	mcp.WithDescription("Import entries from a JSONL export file."),
	mcp.WithString("path", mcp.Required(), mcp.Description("Source .jsonl path")),
	mcp.WithString("mode", mcp.Description("Collision handling: error (default, atomic), skip, or replace")),
)
