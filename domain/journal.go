package domain

import "time"

// Moods trackable in the journal.
var moods = map[string]struct{}{
	"happy": {}, "sad": {}, "bored": {}, "neutral": {}, "excited": {},
	"angry": {}, "anxious": {}, "relaxed": {}, "tired": {}, "confused": {},
	"grateful": {}, "frustrated": {},
}

// ValidMood reports whether m is a trackable mood.
func ValidMood(m string) bool {
	_, ok := moods[m]
	return ok
}

// JournalEntry is a dated markdown note.
type JournalEntry struct {
	ID              string    `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Date            Date      `json:"date" db:"date"`
	ContentMarkdown string    `json:"contentMarkdown" db:"content_markdown"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// Validate checks a journal entry before it is persisted.
func (e JournalEntry) Validate() ValidationError {
	errs := ValidationError{}
	if e.Title == "" {
		errs["title"] = "title must not be empty"
	}
	if e.Date.IsZero() {
		errs["date"] = "date is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// MoodEntry is a point-in-time mood sample. RecordedAt is stamped by the
// server on creation.
type MoodEntry struct {
	ID         string    `json:"id" db:"id"`
	RecordedAt time.Time `json:"recordedAt" db:"recorded_at"`
	Mood       string    `json:"mood" db:"mood"`
	Notes      string    `json:"notes,omitempty" db:"notes"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// Validate checks a mood entry before it is persisted.
func (e MoodEntry) Validate() ValidationError {
	errs := ValidationError{}
	if !ValidMood(e.Mood) {
		errs["mood"] = "unknown mood"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
