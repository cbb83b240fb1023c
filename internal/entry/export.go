package entry

// ExportRecord represents a journal entry in JSONL export format.
// It is used for parsing export files during import.
type ExportRecord struct {
	// Header detection field - true only for header line
	QuillExport bool `json:"_quill_export,omitempty"`

	// Header fields (only present in header line)
	SchemaVersion string `json:"schema_version,omitempty"`
	ExportedAt    int64  `json:"exported_at,omitempty"`

	// Entry fields
	ID               string   `json:"id"`
	Content          string   `json:"content"`
	PlainText        string   `json:"plain_text"` // IGNORED on import, recomputed
	Mood             *string  `json:"mood"`
	Location         *string  `json:"location"`
	WeatherCondition *string  `json:"weather_condition"`
	WeatherTemp      *float64 `json:"weather_temp"`
	WordCount        int      `json:"word_count"` // IGNORED on import, recomputed
	CreatedAt        int64    `json:"created_at"`
	UpdatedAt        int64    `json:"updated_at"`
	DeletedAt        *int64   `json:"deleted_at"`
}

// ToEntry converts an ExportRecord to an Entry, recomputing derived fields.
func (r *ExportRecord) ToEntry() *Entry {
	plain := PlainText(r.Content)
	return &Entry{
		ID:               r.ID,
		Content:          r.Content,
		PlainText:        plain,             // Recompute
		WordCount:        CountWords(plain), // Recompute
		Mood:             r.Mood,
		Location:         r.Location,
		WeatherCondition: r.WeatherCondition,
		WeatherTemp:      r.WeatherTemp,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
		DeletedAt:        r.DeletedAt,
	}
}

// FromEntry converts an Entry to an ExportRecord.
func FromEntry(e *Entry) ExportRecord {
	return ExportRecord{
		ID:               e.ID,
		Content:          e.Content,
		PlainText:        e.PlainText,
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
