package suggest

import "github.com/google/uuid"

// Category tags a suggestion with the heuristic that produced it.
type Category string

const (
	CategoryLocation    Category = "location"
	CategoryWeather     Category = "weather"
	CategoryStreak      Category = "streak"
	CategoryTimeOfDay   Category = "timeofday"
	CategoryAnniversary Category = "anniversary"
	CategoryMood        Category = "mood"
	CategoryHabit       Category = "habit"
)

// Suggestion is a generated writing-prompt card. Suggestions are created
// fresh on every generation call and never persisted; their lifetime is a
// single presentation.
type Suggestion struct {
	ID        uuid.UUID `json:"id"`
	Category  Category  `json:"category"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle,omitempty"`
	Prompt    string    `json:"prompt"`
	Icon      string    `json:"icon"`
	CreatedAt int64     `json:"created_at"`
	Source    *string   `json:"source,omitempty"`
}
