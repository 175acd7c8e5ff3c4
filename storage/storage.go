package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"lifeboard-api/domain"
)

func init() {
	// The modernc driver registers as "sqlite"; teach sqlx its placeholder style.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Storage provides access to the relational store.
type Storage struct {
	db *sqlx.DB
}

// New opens (or creates) the sqlite database at path and ensures the schema
// exists. Safe to call against an existing database.
func New(path string) (*Storage, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// sqlite permits a single writer; one pooled connection avoids busy errors.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Storage) Close() error { return s.db.Close() }

// Ping verifies the database is reachable.
func (s *Storage) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

const schema = `
CREATE TABLE IF NOT EXISTS projects (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    is_active   INTEGER NOT NULL DEFAULT 1,
    archived_at TIMESTAMP,
    created_at  TIMESTAMP NOT NULL,
    updated_at  TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS tags (
    name       TEXT PRIMARY KEY,
    color      TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
    id               TEXT PRIMARY KEY,
    title            TEXT NOT NULL,
    description      TEXT NOT NULL DEFAULT '',
    status           TEXT NOT NULL DEFAULT 'todo',
    priority         INTEGER NOT NULL DEFAULT 2,
    sort_order       INTEGER NOT NULL DEFAULT 0,
    due_date         DATE,
    estimate_minutes INTEGER,
    energy           TEXT NOT NULL DEFAULT 'MEDIUM',
    project_id       TEXT REFERENCES projects(id),
    completed_at     TIMESTAMP,
    created_at       TIMESTAMP NOT NULL,
    updated_at       TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks(due_date);

CREATE TABLE IF NOT EXISTS task_tags (
    task_id  TEXT NOT NULL REFERENCES tasks(id),
    tag_name TEXT NOT NULL REFERENCES tags(name),
    PRIMARY KEY (task_id, tag_name)
);

CREATE TABLE IF NOT EXISTS comments (
    id         TEXT PRIMARY KEY,
    task_id    TEXT NOT NULL REFERENCES tasks(id),
    content    TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_comments_task ON comments(task_id);

CREATE TABLE IF NOT EXISTS contacts (
    slug                    TEXT PRIMARY KEY,
    name                    TEXT NOT NULL,
    priority                INTEGER NOT NULL DEFAULT 1,
    relationship            TEXT NOT NULL,
    birthday                DATE,
    notes                   TEXT NOT NULL DEFAULT '',
    timezone                TEXT NOT NULL DEFAULT 'America/New_York',
    preferred_channel       TEXT NOT NULL DEFAULT '',
    check_in_frequency_days INTEGER NOT NULL DEFAULT 30,
    last_contacted_at       DATE,
    created_at              TIMESTAMP NOT NULL,
    updated_at              TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS touchpoints (
    id           TEXT PRIMARY KEY,
    contact_slug TEXT NOT NULL REFERENCES contacts(slug),
    date         DATE NOT NULL,
    channel      TEXT NOT NULL,
    sentiment    TEXT NOT NULL DEFAULT '',
    notes        TEXT NOT NULL DEFAULT '',
    created_at   TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_touchpoints_contact_date ON touchpoints(contact_slug, date);

CREATE TABLE IF NOT EXISTS journal_entries (
    id               TEXT PRIMARY KEY,
    title            TEXT NOT NULL,
    date             DATE NOT NULL,
    content_markdown TEXT NOT NULL DEFAULT '',
    created_at       TIMESTAMP NOT NULL,
    updated_at       TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS mood_entries (
    id          TEXT PRIMARY KEY,
    recorded_at TIMESTAMP NOT NULL,
    mood        TEXT NOT NULL,
    notes       TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMP NOT NULL
);
`

// columnOrdering is the composite sort for tasks within a status column:
// manual placement first, then priority, due date (unset dates last) and
// recency.
const columnOrdering = `sort_order ASC, priority DESC,
	CASE WHEN due_date IS NULL THEN 1 ELSE 0 END ASC, due_date ASC, created_at DESC`

// --- tasks ---

// CreateTask inserts a task, assigning its order by appending to the target
// status column.
func (s *Storage) CreateTask(ctx context.Context, t domain.Task) (domain.Task, error) {
	next, err := s.nextColumnOrder(ctx, t.Status)
	if err != nil {
		return domain.Task{}, err
	}
	t.Order = next
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, description, status, priority, sort_order,
			due_date, estimate_minutes, energy, project_id, completed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, t.Status, t.Priority, t.Order,
		t.DueDate, t.EstimateMinutes, t.Energy, t.ProjectID, t.CompletedAt, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return domain.Task{}, fmt.Errorf("insert task: %w", err)
	}
	if err := s.replaceTaskTags(ctx, t.ID, t.Tags, t.CreatedAt); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

// GetTask returns a single task with its tags.
func (s *Storage) GetTask(ctx context.Context, id string) (domain.Task, error) {
	var t domain.Task
	err := s.db.GetContext(ctx, &t, `SELECT * FROM tasks WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Task{}, fmt.Errorf("get task: %w", err)
	}
	tasks := []domain.Task{t}
	if err := s.attachTags(ctx, tasks); err != nil {
		return domain.Task{}, err
	}
	return tasks[0], nil
}

// ListTasks returns tasks matching the filter in composite column order.
func (s *Storage) ListTasks(ctx context.Context, f domain.TaskFilter) ([]domain.Task, error) {
	query := `SELECT tasks.* FROM tasks`
	args := []any{}
	where := []string{}
	if f.Tag != "" {
		query += ` JOIN task_tags ON task_tags.task_id = tasks.id`
		where = append(where, `task_tags.tag_name = ?`)
		args = append(args, f.Tag)
	}
	if f.Status != "" {
		where = append(where, `tasks.status = ?`)
		args = append(args, f.Status)
	}
	if f.ProjectID != "" {
		where = append(where, `tasks.project_id = ?`)
		args = append(args, f.ProjectID)
	}
	for i, cond := range where {
		if i == 0 {
			query += ` WHERE ` + cond
		} else {
			query += ` AND ` + cond
		}
	}
	query += ` ORDER BY ` + columnOrdering
	tasks := []domain.Task{}
	if err := s.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if err := s.attachTags(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// BoardTasks returns every task holding a board-visible status. The done
// retention filter is applied by the board assembly, not here.
func (s *Storage) BoardTasks(ctx context.Context) ([]domain.Task, error) {
	tasks := []domain.Task{}
	err := s.db.SelectContext(ctx, &tasks, `
		SELECT * FROM tasks
		WHERE status IN (?, ?, ?, ?)
		ORDER BY `+columnOrdering,
		domain.StatusTodo, domain.StatusInProgress, domain.StatusBlocked, domain.StatusDone)
	if err != nil {
		return nil, fmt.Errorf("board tasks: %w", err)
	}
	if err := s.attachTags(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// MoveTask sets the task's status and appends it to the target column.
// Moving to done stamps completed_at only when it was previously unset.
//
// The max(order) read and the update are intentionally not wrapped in a
// transaction: two concurrent moves into the same column may compute the
// same order, and the duplicate tie-breaks on the secondary sort keys.
func (s *Storage) MoveTask(ctx context.Context, id, newStatus string, now time.Time) (domain.Task, error) {
	t, err := s.GetTask(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	next, err := s.nextColumnOrder(ctx, newStatus)
	if err != nil {
		return domain.Task{}, err
	}

	t.Status = newStatus
	t.Order = next
	t.UpdatedAt = now
	if newStatus == domain.StatusDone && t.CompletedAt == nil {
		stamped := now
		t.CompletedAt = &stamped
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE tasks SET status = ?, sort_order = ?, completed_at = ?, updated_at = ?
		WHERE id = ?`,
		t.Status, t.Order, t.CompletedAt, t.UpdatedAt, t.ID)
	if err != nil {
		return domain.Task{}, fmt.Errorf("move task: %w", err)
	}
	return t, nil
}

// UpdateTask applies a partial update. A status change goes through the
// same append-and-stamp path as a board move.
func (s *Storage) UpdateTask(ctx context.Context, id string, u domain.TaskUpdate, now time.Time) (domain.Task, error) {
	t, err := s.GetTask(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.DueDate != nil {
		t.DueDate = u.DueDate
	}
	if u.EstimateMinutes != nil {
		t.EstimateMinutes = u.EstimateMinutes
	}
	if u.Energy != nil {
		t.Energy = *u.Energy
	}
	if u.ProjectID != nil {
		t.ProjectID = u.ProjectID
	}
	if u.Status != nil && *u.Status != t.Status {
		next, err := s.nextColumnOrder(ctx, *u.Status)
		if err != nil {
			return domain.Task{}, err
		}
		t.Status = *u.Status
		t.Order = next
		if t.Status == domain.StatusDone && t.CompletedAt == nil {
			stamped := now
			t.CompletedAt = &stamped
		}
	}
	t.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		UPDATE tasks SET title = ?, description = ?, status = ?, priority = ?,
			sort_order = ?, due_date = ?, estimate_minutes = ?, energy = ?,
			project_id = ?, completed_at = ?, updated_at = ?
		WHERE id = ?`,
		t.Title, t.Description, t.Status, t.Priority, t.Order, t.DueDate,
		t.EstimateMinutes, t.Energy, t.ProjectID, t.CompletedAt, t.UpdatedAt, t.ID)
	if err != nil {
		return domain.Task{}, fmt.Errorf("update task: %w", err)
	}
	return t, nil
}

func (s *Storage) nextColumnOrder(ctx context.Context, status string) (int, error) {
	var max int
	err := s.db.GetContext(ctx, &max,
		`SELECT COALESCE(MAX(sort_order), 0) FROM tasks WHERE status = ?`, status)
	if err != nil {
		return 0, fmt.Errorf("max column order: %w", err)
	}
	return max + 1, nil
}

func (s *Storage) replaceTaskTags(ctx context.Context, taskID string, tags []string, now time.Time) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM task_tags WHERE task_id = ?`, taskID); err != nil {
		return fmt.Errorf("clear task tags: %w", err)
	}
	for _, name := range tags {
		if _, err := s.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO tags (name, color, created_at) VALUES (?, '', ?)`, name, now); err != nil {
			return fmt.Errorf("ensure tag: %w", err)
		}
		if _, err := s.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO task_tags (task_id, tag_name) VALUES (?, ?)`, taskID, name); err != nil {
			return fmt.Errorf("link tag: %w", err)
		}
	}
	return nil
}

func (s *Storage) attachTags(ctx context.Context, tasks []domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	ids := make([]string, len(tasks))
	index := make(map[string]int, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
		index[t.ID] = i
	}
	query, args, err := sqlx.In(
		`SELECT task_id, tag_name FROM task_tags WHERE task_id IN (?) ORDER BY tag_name`, ids)
	if err != nil {
		return fmt.Errorf("build tag query: %w", err)
	}
	rows := []struct {
		TaskID  string `db:"task_id"`
		TagName string `db:"tag_name"`
	}{}
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("load tags: %w", err)
	}
	for _, r := range rows {
		i := index[r.TaskID]
		tasks[i].Tags = append(tasks[i].Tags, r.TagName)
	}
	return nil
}

// --- comments ---

// CreateComment appends a comment to a task.
func (s *Storage) CreateComment(ctx context.Context, c domain.Comment) (domain.Comment, error) {
	if err := s.taskExists(ctx, c.TaskID); err != nil {
		return domain.Comment{}, err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO comments (id, task_id, content, created_at) VALUES (?, ?, ?, ?)`,
		c.ID, c.TaskID, c.Content, c.CreatedAt)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("insert comment: %w", err)
	}
	return c, nil
}

// ListComments returns a task's comments oldest first.
func (s *Storage) ListComments(ctx context.Context, taskID string) ([]domain.Comment, error) {
	comments := []domain.Comment{}
	err := s.db.SelectContext(ctx, &comments,
		`SELECT * FROM comments WHERE task_id = ? ORDER BY created_at ASC`, taskID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (s *Storage) taskExists(ctx context.Context, id string) error {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(1) FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("task exists: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --- projects and tags ---

func (s *Storage) CreateProject(ctx context.Context, p domain.Project) (domain.Project, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, description, is_active, archived_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.IsActive, p.ArchivedAt, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return domain.Project{}, fmt.Errorf("insert project: %w", err)
	}
	return p, nil
}

func (s *Storage) ListProjects(ctx context.Context) ([]domain.Project, error) {
	projects := []domain.Project{}
	err := s.db.SelectContext(ctx, &projects, `SELECT * FROM projects ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (s *Storage) GetProject(ctx context.Context, id string) (domain.Project, error) {
	var p domain.Project
	err := s.db.GetContext(ctx, &p, `SELECT * FROM projects WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Project{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Project{}, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// ArchiveProject marks a project inactive. Projects are never deleted.
func (s *Storage) ArchiveProject(ctx context.Context, id string, now time.Time) (domain.Project, error) {
	p, err := s.GetProject(ctx, id)
	if err != nil {
		return domain.Project{}, err
	}
	if p.ArchivedAt == nil {
		archived := now
		p.ArchivedAt = &archived
	}
	p.IsActive = false
	p.UpdatedAt = now
	_, err = s.db.ExecContext(ctx,
		`UPDATE projects SET is_active = 0, archived_at = ?, updated_at = ? WHERE id = ?`,
		p.ArchivedAt, p.UpdatedAt, p.ID)
	if err != nil {
		return domain.Project{}, fmt.Errorf("archive project: %w", err)
	}
	return p, nil
}

func (s *Storage) CreateTag(ctx context.Context, t domain.Tag) (domain.Tag, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tags (name, color, created_at) VALUES (?, ?, ?)`,
		t.Name, t.Color, t.CreatedAt)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("insert tag: %w", err)
	}
	return t, nil
}

func (s *Storage) ListTags(ctx context.Context) ([]domain.Tag, error) {
	tags := []domain.Tag{}
	if err := s.db.SelectContext(ctx, &tags, `SELECT * FROM tags ORDER BY name ASC`); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// --- contacts and touchpoints ---

func (s *Storage) CreateContact(ctx context.Context, c domain.Contact) (domain.Contact, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contacts (slug, name, priority, relationship, birthday, notes,
			timezone, preferred_channel, check_in_frequency_days, last_contacted_at,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Slug, c.Name, c.Priority, c.Relationship, c.Birthday, c.Notes,
		c.Timezone, c.PreferredChannel, c.CheckInFrequencyDays, c.LastContactedAt,
		c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return domain.Contact{}, fmt.Errorf("insert contact: %w", err)
	}
	return c, nil
}

const contactOverviewQuery = `
	SELECT c.*,
	       MAX(t.date) AS last_touchpoint,
	       COUNT(CASE WHEN t.date >= ? THEN 1 END) AS touchpoints_recent
	FROM contacts c
	LEFT JOIN touchpoints t ON t.contact_slug = c.slug`

// ContactOverviews returns every contact annotated with its max touchpoint
// date and the count of touchpoints inside the recent window, computed in
// one batch query. The window boundary is inclusive.
func (s *Storage) ContactOverviews(ctx context.Context, today domain.Date) ([]domain.ContactOverview, error) {
	cutoff := today.AddDays(-domain.RecentWindowDays)
	overviews := []domain.ContactOverview{}
	err := s.db.SelectContext(ctx, &overviews,
		contactOverviewQuery+` GROUP BY c.slug ORDER BY c.name ASC`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("contact overviews: %w", err)
	}
	return overviews, nil
}

// GetContactOverview returns one contact with the same annotations.
func (s *Storage) GetContactOverview(ctx context.Context, slug string, today domain.Date) (domain.ContactOverview, error) {
	cutoff := today.AddDays(-domain.RecentWindowDays)
	var o domain.ContactOverview
	err := s.db.GetContext(ctx, &o,
		contactOverviewQuery+` WHERE c.slug = ? GROUP BY c.slug`, cutoff, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ContactOverview{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.ContactOverview{}, fmt.Errorf("contact overview: %w", err)
	}
	return o, nil
}

// CreateTouchpoint appends a touchpoint and advances the contact's cached
// last-contacted date when the new touchpoint is newer. This is the single
// update path for the denormalized cache, keeping it equal to the max
// touchpoint date.
func (s *Storage) CreateTouchpoint(ctx context.Context, tp domain.Touchpoint) (domain.Touchpoint, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(1) FROM contacts WHERE slug = ?`, tp.ContactSlug); err != nil {
		return domain.Touchpoint{}, fmt.Errorf("contact exists: %w", err)
	}
	if n == 0 {
		return domain.Touchpoint{}, domain.ErrNotFound
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO touchpoints (id, contact_slug, date, channel, sentiment, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tp.ID, tp.ContactSlug, tp.Date, tp.Channel, tp.Sentiment, tp.Notes, tp.CreatedAt)
	if err != nil {
		return domain.Touchpoint{}, fmt.Errorf("insert touchpoint: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		UPDATE contacts SET last_contacted_at = ?, updated_at = ?
		WHERE slug = ? AND (last_contacted_at IS NULL OR last_contacted_at < ?)`,
		tp.Date, tp.CreatedAt, tp.ContactSlug, tp.Date)
	if err != nil {
		return domain.Touchpoint{}, fmt.Errorf("advance last contacted: %w", err)
	}
	return tp, nil
}

// ListTouchpoints returns a contact's touchpoints newest first.
func (s *Storage) ListTouchpoints(ctx context.Context, slug string) ([]domain.Touchpoint, error) {
	touchpoints := []domain.Touchpoint{}
	err := s.db.SelectContext(ctx, &touchpoints,
		`SELECT * FROM touchpoints WHERE contact_slug = ? ORDER BY date DESC, created_at DESC`, slug)
	if err != nil {
		return nil, fmt.Errorf("list touchpoints: %w", err)
	}
	return touchpoints, nil
}

// --- journal ---

func (s *Storage) CreateJournalEntry(ctx context.Context, e domain.JournalEntry) (domain.JournalEntry, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO journal_entries (id, title, date, content_markdown, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Title, e.Date, e.ContentMarkdown, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("insert journal entry: %w", err)
	}
	return e, nil
}

func (s *Storage) ListJournalEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	entries := []domain.JournalEntry{}
	err := s.db.SelectContext(ctx, &entries,
		`SELECT * FROM journal_entries ORDER BY date DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	return entries, nil
}

func (s *Storage) CreateMoodEntry(ctx context.Context, e domain.MoodEntry) (domain.MoodEntry, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO mood_entries (id, recorded_at, mood, notes, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.RecordedAt, e.Mood, e.Notes, e.CreatedAt)
	if err != nil {
		return domain.MoodEntry{}, fmt.Errorf("insert mood entry: %w", err)
	}
	return e, nil
}

func (s *Storage) ListMoodEntries(ctx context.Context) ([]domain.MoodEntry, error) {
	entries := []domain.MoodEntry{}
	err := s.db.SelectContext(ctx, &entries,
		`SELECT * FROM mood_entries ORDER BY recorded_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list mood entries: %w", err)
	}
	return entries, nil
}
