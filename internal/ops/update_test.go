package ops

import (
	"testing"

	"github.com/pvallone/quill/internal/config"
	"github.com/pvallone/quill/internal/errors"
)

func TestUpdate_Content(t *testing.T) {
	database := testDB(t)
	cfg := config.DefaultConfig()

	added, err := Add(database, cfg, AddInput{Content: "first draft"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	output, err := Update(database, cfg, UpdateInput{
		ID:      added.ID,
		Content: stringPtr("a much longer second draft of this entry"),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if output.WordCount != 8 {
		t.Errorf("WordCount = %d, want 8", output.WordCount)
	}

	fetched, err := Fetch(database, FetchInput{ID: added.ID})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if fetched.Content != "a much longer second draft of this entry" {
		t.Errorf("Content not updated: %q", fetched.Content)
	}
}

func TestUpdate_MetadataOnly(t *testing.T) {
	database := testDB(t)
	cfg := config.DefaultConfig()

	added, err := Add(database, cfg, AddInput{Content: "unchanged"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if _, err := Update(database, cfg, UpdateInput{
		ID:          added.ID,
		Mood:        stringPtr("reflective"),
		WeatherTemp: floatPtr(18.5),
	}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	fetched, err := Fetch(database, FetchInput{ID: added.ID})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if fetched.Content != "unchanged" {
		t.Errorf("Content = %q, want unchanged", fetched.Content)
	}
	if fetched.Mood == nil || *fetched.Mood != "reflective" {
		t.Errorf("Mood = %v, want reflective", fetched.Mood)
	}
	if fetched.WeatherTemp == nil || *fetched.WeatherTemp != 18.5 {
		t.Errorf("WeatherTemp = %v, want 18.5", fetched.WeatherTemp)
	}
}

func TestUpdate_NoFields(t *testing.T) {
	database := testDB(t)
	cfg := config.DefaultConfig()

	added, err := Add(database, cfg, AddInput{Content: "entry"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	_, err = Update(database, cfg, UpdateInput{ID: added.ID})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("expected INVALID_REQUEST, got %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	database := testDB(t)

	_, err := Update(database, config.DefaultConfig(), UpdateInput{
		ID:      "01MISSING",
		Content: stringPtr("new"),
	})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestUpdate_EmptyContent(t *testing.T) {
	database := testDB(t)
	cfg := config.DefaultConfig()

	added, err := Add(database, cfg, AddInput{Content: "entry"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	_, err = Update(database, cfg, UpdateInput{ID: added.ID, Content: stringPtr("  ")})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("expected INVALID_REQUEST, got %v", err)
	}
}

func TestUpdate_NormalizesTags(t *testing.T) {
	database := testDB(t)
	cfg := config.DefaultConfig()

	out, err := Add(database, cfg, AddInput{Content: "starting point"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if _, err := Update(database, cfg, UpdateInput{
		ID:   out.ID,
		Mood: stringPtr("Wistful  And Tired"),
	}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	fetched, err := Fetch(database, FetchInput{ID: out.ID})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if fetched.Mood == nil || *fetched.Mood != "wistful and tired" {
		t.Errorf("Mood = %v, want %q", fetched.Mood, "wistful and tired")
	}
}
