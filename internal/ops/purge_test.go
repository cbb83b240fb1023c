package ops

import (
	"testing"

	"github.com/pvallone/quill/internal/config"
	"github.com/pvallone/quill/internal/errors"
)

func TestPurge_RemovesDeleted(t *testing.T) {
	database := testDB(t)
	cfg := config.DefaultConfig()

	kept, err := Add(database, cfg, AddInput{Content: "kept"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	gone, err := Add(database, cfg, AddInput{Content: "gone"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := Delete(database, DeleteInput{ID: gone.ID}); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	output, err := Purge(database, PurgeInput{})
	if err != nil {
		t.Fatalf("Purge failed: %v", err)
	}
	if output.Purged != 1 {
		t.Errorf("Purged = %d, want 1", output.Purged)
	}

	// Purged entry is gone even with IncludeDeleted
	if _, err := Fetch(database, FetchInput{ID: gone.ID, IncludeDeleted: true}); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("expected NOT_FOUND after purge, got %v", err)
	}

	// Active entry untouched
	if _, err := Fetch(database, FetchInput{ID: kept.ID}); err != nil {
		t.Errorf("active entry should survive purge: %v", err)
	}
}

func TestPurge_OlderThanDays(t *testing.T) {
	database := testDB(t)
	cfg := config.DefaultConfig()

	recent, err := Add(database, cfg, AddInput{Content: "recently deleted"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := Delete(database, DeleteInput{ID: recent.ID}); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	// Deleted moments ago, so a 7-day cutoff keeps it
	output, err := Purge(database, PurgeInput{OlderThanDays: intPtr(7)})
	if err != nil {
		t.Fatalf("Purge failed: %v", err)
	}
	if output.Purged != 0 {
		t.Errorf("Purged = %d, want 0", output.Purged)
	}
}

func TestFormatPurgeMessage(t *testing.T) {
	if got := formatPurgeMessage(0, nil); got != "No deleted entries to purge" {
		t.Errorf("formatPurgeMessage(0) = %q", got)
	}
	if got := formatPurgeMessage(1, nil); got != "Permanently deleted 1 entry" {
		t.Errorf("formatPurgeMessage(1) = %q", got)
	}
	if got := formatPurgeMessage(3, intPtr(7)); got != "Permanently deleted 3 entries (deleted more than 7 days ago)" {
		t.Errorf("formatPurgeMessage(3, 7) = %q", got)
	}
}
