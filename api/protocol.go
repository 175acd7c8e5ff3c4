package api

import (
	"time"

	"lifeboard-api/domain"
)

const requestBodyMaxSize = 64 * 1024 // 64 KiB

// idempotencyHeader optionally carries a client-chosen key for mutating
// posts; duplicates are answered without reapplying the mutation.
const idempotencyHeader = "X-Idempotency-Key"

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type errorResponse struct {
	Error  string                 `json:"error,omitempty"`
	Errors domain.ValidationError `json:"errors,omitempty"`
}

type boardResponse struct {
	Columns []domain.Column `json:"columns"`
}

type moveRequest struct {
	TaskID string `json:"taskId"`
	Status string `json:"status"`
}

// moveResponse carries either the moved task, or on rejection the current
// board so the client UI does not blank.
type moveResponse struct {
	Task      *domain.Task    `json:"task,omitempty"`
	Duplicate bool            `json:"duplicate,omitempty"`
	Error     string          `json:"error,omitempty"`
	Board     []domain.Column `json:"board,omitempty"`
}

type taskRequest struct {
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	Status          string       `json:"status"`
	Priority        int          `json:"priority"`
	DueDate         *domain.Date `json:"dueDate"`
	EstimateMinutes *int         `json:"estimateMinutes"`
	Energy          string       `json:"energy"`
	ProjectID       *string      `json:"projectId"`
	Tags            []string     `json:"tags"`
}

type taskDetailResponse struct {
	Task     domain.Task      `json:"task"`
	Comments []domain.Comment `json:"comments"`
}

type commentRequest struct {
	Content string `json:"content"`
}

type contactRequest struct {
	Slug                 string       `json:"slug"`
	Name                 string       `json:"name"`
	Priority             int          `json:"priority"`
	Relationship         string       `json:"relationship"`
	Birthday             *domain.Date `json:"birthday"`
	Notes                string       `json:"notes"`
	Timezone             string       `json:"timezone"`
	PreferredChannel     string       `json:"preferredChannel"`
	CheckInFrequencyDays int          `json:"checkInFrequencyDays"`
}

// contactItem is a contact overview with a humanized recency string for
// direct rendering.
type contactItem struct {
	domain.ContactOverview
	LastContactedHuman string `json:"lastContactedHuman,omitempty"`
}

type contactListResponse struct {
	Contacts []contactItem `json:"contacts"`
	Today    domain.Date   `json:"today"`
}

type contactDetailResponse struct {
	Contact     contactItem         `json:"contact"`
	Touchpoints []domain.Touchpoint `json:"touchpoints"`
	Today       domain.Date         `json:"today"`
}

type touchpointRequest struct {
	Date      *domain.Date `json:"date"`
	Channel   string       `json:"channel"`
	Sentiment string       `json:"sentiment"`
	Notes     string       `json:"notes"`
}

type projectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type tagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type journalEntryRequest struct {
	Title           string       `json:"title"`
	Date            *domain.Date `json:"date"`
	ContentMarkdown string       `json:"contentMarkdown"`
}

// journalItem is a journal entry with a humanized age string.
type journalItem struct {
	domain.JournalEntry
	AgeHuman string `json:"ageHuman"`
}

type moodEntryRequest struct {
	Mood  string `json:"mood"`
	Notes string `json:"notes"`
}
