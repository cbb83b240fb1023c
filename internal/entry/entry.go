package entry

// Entry represents a single journal entry.
type Entry struct {
	// ID is a ULID that uniquely identifies this entry
	ID string

	// Content is the entry body as markdown
	Content string

	// PlainText is the plain-text rendering of Content, used for search and previews
	PlainText string

	// Mood is an optional mood tag (e.g., "calm", "anxious")
	Mood *string

	// Location is an optional place name recorded with the entry
	Location *string

	// WeatherCondition is an optional weather description (e.g., "Partly cloudy")
	WeatherCondition *string

	// WeatherTemp is an optional temperature in degrees Celsius
	WeatherTemp *float64

	// WordCount is the number of words in PlainText
	WordCount int

	// CreatedAt is the creation timestamp in epoch milliseconds (UTC)
	CreatedAt int64

	// UpdatedAt is the last-update timestamp in epoch milliseconds (UTC)
	UpdatedAt int64

	// DeletedAt is the soft-delete timestamp in epoch milliseconds (nullable)
	DeletedAt *int64
}

// PreviewChars is the maximum rune count of a summary preview.
const PreviewChars = 120

// Summary represents an entry's metadata without the full content.
// Used for browse operations (list, search) to reduce data transfer.
type Summary struct {
	ID               string   `json:"id"`
	Preview          string   `json:"preview"`
	Mood             *string  `json:"mood,omitempty"`
	Location         *string  `json:"location,omitempty"`
	WeatherCondition *string  `json:"weather_condition,omitempty"`
	WeatherTemp      *float64 `json:"weather_temp,omitempty"`
	WordCount        int      `json:"word_count"`
	CreatedAt        int64    `json:"created_at"`
	UpdatedAt        int64    `json:"updated_at"`
	DeletedAt        *int64   `json:"deleted_at,omitempty"`
}

// ToSummary converts an Entry to a Summary by stripping the content down to a preview.
func (e *Entry) ToSummary() Summary {
	return Summary{
		ID:               e.ID,
		Preview:          Preview(e.PlainText, PreviewChars),
		Mood:             e.Mood,
		Location:         e.Location,
		WeatherCondition: e.WeatherCondition,
		WeatherTemp:      e.WeatherTemp,
		WordCount:        e.WordCount,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
		DeletedAt:        e.DeletedAt,
	}
}
