package api

import (
	"context"
	"time"

	"lifeboard-api/domain"
)

// Storage abstracts persistence for handlers.
type Storage interface {
	Ping(ctx context.Context) error

	BoardTasks(ctx context.Context) ([]domain.Task, error)
	MoveTask(ctx context.Context, id, newStatus string, now time.Time) (domain.Task, error)
	CreateTask(ctx context.Context, t domain.Task) (domain.Task, error)
	GetTask(ctx context.Context, id string) (domain.Task, error)
	ListTasks(ctx context.Context, f domain.TaskFilter) ([]domain.Task, error)
	UpdateTask(ctx context.Context, id string, u domain.TaskUpdate, now time.Time) (domain.Task, error)
	CreateComment(ctx context.Context, c domain.Comment) (domain.Comment, error)
	ListComments(ctx context.Context, taskID string) ([]domain.Comment, error)

	CreateProject(ctx context.Context, p domain.Project) (domain.Project, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
	GetProject(ctx context.Context, id string) (domain.Project, error)
	ArchiveProject(ctx context.Context, id string, now time.Time) (domain.Project, error)
	CreateTag(ctx context.Context, t domain.Tag) (domain.Tag, error)
	ListTags(ctx context.Context) ([]domain.Tag, error)

	CreateContact(ctx context.Context, c domain.Contact) (domain.Contact, error)
	ContactOverviews(ctx context.Context, today domain.Date) ([]domain.ContactOverview, error)
	GetContactOverview(ctx context.Context, slug string, today domain.Date) (domain.ContactOverview, error)
	CreateTouchpoint(ctx context.Context, tp domain.Touchpoint) (domain.Touchpoint, error)
	ListTouchpoints(ctx context.Context, slug string) ([]domain.Touchpoint, error)

	CreateJournalEntry(ctx context.Context, e domain.JournalEntry) (domain.JournalEntry, error)
	ListJournalEntries(ctx context.Context) ([]domain.JournalEntry, error)
	CreateMoodEntry(ctx context.Context, e domain.MoodEntry) (domain.MoodEntry, error)
	ListMoodEntries(ctx context.Context) ([]domain.MoodEntry, error)
}

// Authenticator is implemented by types able to extract the authenticated
// subject from an Authorization header.
type Authenticator interface {
	SubjectFromAuthHeader(string) (string, error)
	Superuser() string
}

// Deduper prevents reprocessing of duplicate mutation submissions.
type Deduper interface {
	// Add records the idempotency key and returns true if it was newly added.
	Add(ctx context.Context, subject, key string) (bool, error)
	// Remove deletes a previously added key, used when the mutation fails so
	// the client may retry.
	Remove(ctx context.Context, subject, key string) error
}
