package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"lifeboard-api/domain"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func mustCreateTask(t *testing.T, s *Storage, title, status string) domain.Task {
	t.Helper()
	now := time.Now().UTC()
	created, err := s.CreateTask(context.Background(), domain.Task{
		ID:        title,
		Title:     title,
		Status:    status,
		Priority:  domain.PriorityNormal,
		Energy:    domain.EnergyMedium,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("create task %q: %v", title, err)
	}
	return created
}

func setOrder(t *testing.T, s *Storage, id string, order int) {
	t.Helper()
	if _, err := s.db.Exec(`UPDATE tasks SET sort_order = ? WHERE id = ?`, order, id); err != nil {
		t.Fatalf("set order: %v", err)
	}
}

func TestCreateTaskAppendsToColumn(t *testing.T) {
	s := newTestStorage(t)

	first := mustCreateTask(t, s, "a", domain.StatusTodo)
	second := mustCreateTask(t, s, "b", domain.StatusTodo)
	other := mustCreateTask(t, s, "c", domain.StatusBlocked)

	if first.Order != 1 {
		t.Fatalf("first task in empty column should get order 1, got %d", first.Order)
	}
	if second.Order != 2 {
		t.Fatalf("second task should append with order 2, got %d", second.Order)
	}
	if other.Order != 1 {
		t.Fatalf("columns count independently, expected order 1 got %d", other.Order)
	}
}

func TestMoveTaskAppendsPastDuplicateOrders(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	a := mustCreateTask(t, s, "a", domain.StatusInProgress)
	b := mustCreateTask(t, s, "b", domain.StatusInProgress)
	c := mustCreateTask(t, s, "c", domain.StatusInProgress)
	setOrder(t, s, a.ID, 3)
	setOrder(t, s, b.ID, 3)
	setOrder(t, s, c.ID, 7)

	moved, err := s.MoveTask(ctx, mustCreateTask(t, s, "d", domain.StatusTodo).ID, domain.StatusInProgress, time.Now().UTC())
	if err != nil {
		t.Fatalf("move task: %v", err)
	}
	if moved.Order != 8 {
		t.Fatalf("expected append past max order {3,3,7} to yield 8, got %d", moved.Order)
	}
	if moved.Status != domain.StatusInProgress {
		t.Fatalf("unexpected status: %s", moved.Status)
	}
}

func TestMoveTaskStampsCompletionOnce(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	task := mustCreateTask(t, s, "a", domain.StatusTodo)

	done, err := s.MoveTask(ctx, task.ID, domain.StatusDone, time.Now().UTC())
	if err != nil {
		t.Fatalf("move to done: %v", err)
	}
	if done.CompletedAt == nil {
		t.Fatal("expected completed_at to be stamped on first completion")
	}
	stamped := *done.CompletedAt

	if _, err := s.MoveTask(ctx, task.ID, domain.StatusTodo, time.Now().UTC()); err != nil {
		t.Fatalf("move back to todo: %v", err)
	}
	redone, err := s.MoveTask(ctx, task.ID, domain.StatusDone, time.Now().UTC().Add(time.Hour))
	if err != nil {
		t.Fatalf("move to done again: %v", err)
	}
	if redone.CompletedAt == nil || !redone.CompletedAt.Equal(stamped) {
		t.Fatalf("completed_at must keep its first value, got %v want %v", redone.CompletedAt, stamped)
	}
}

func TestMoveTaskUnknownID(t *testing.T) {
	s := newTestStorage(t)
	_, err := s.MoveTask(context.Background(), "nope", domain.StatusDone, time.Now().UTC())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateTaskStatusChangeAppends(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	mustCreateTask(t, s, "occupant", domain.StatusBlocked)
	task := mustCreateTask(t, s, "a", domain.StatusTodo)

	status := domain.StatusBlocked
	title := "renamed"
	updated, err := s.UpdateTask(ctx, task.ID, domain.TaskUpdate{Title: &title, Status: &status}, time.Now().UTC())
	if err != nil {
		t.Fatalf("update task: %v", err)
	}
	if updated.Title != "renamed" {
		t.Fatalf("unexpected title: %s", updated.Title)
	}
	if updated.Order != 2 {
		t.Fatalf("status change should append to target column, got order %d", updated.Order)
	}
}

func TestListTasksFilters(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	now := time.Now().UTC()

	if _, err := s.CreateTask(ctx, domain.Task{
		ID: "tagged", Title: "tagged", Status: domain.StatusTodo,
		Priority: domain.PriorityNormal, Energy: domain.EnergyMedium,
		CreatedAt: now, UpdatedAt: now, Tags: []string{"deep-work"},
	}); err != nil {
		t.Fatalf("create tagged task: %v", err)
	}
	mustCreateTask(t, s, "plain", domain.StatusDone)

	byStatus, err := s.ListTasks(ctx, domain.TaskFilter{Status: domain.StatusDone})
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if len(byStatus) != 1 || byStatus[0].ID != "plain" {
		t.Fatalf("unexpected status filter result: %#v", byStatus)
	}

	byTag, err := s.ListTasks(ctx, domain.TaskFilter{Tag: "deep-work"})
	if err != nil {
		t.Fatalf("list by tag: %v", err)
	}
	if len(byTag) != 1 || byTag[0].ID != "tagged" {
		t.Fatalf("unexpected tag filter result: %#v", byTag)
	}
	if len(byTag[0].Tags) != 1 || byTag[0].Tags[0] != "deep-work" {
		t.Fatalf("expected tags attached, got %#v", byTag[0].Tags)
	}
}

func TestCommentsRequireExistingTask(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	_, err := s.CreateComment(ctx, domain.Comment{ID: "c1", TaskID: "missing", Content: "x", CreatedAt: time.Now().UTC()})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	task := mustCreateTask(t, s, "a", domain.StatusTodo)
	if _, err := s.CreateComment(ctx, domain.Comment{ID: "c2", TaskID: task.ID, Content: "note", CreatedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("create comment: %v", err)
	}
	comments, err := s.ListComments(ctx, task.ID)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(comments) != 1 || comments[0].Content != "note" {
		t.Fatalf("unexpected comments: %#v", comments)
	}
}

func TestArchiveProjectKeepsFirstTimestamp(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	now := time.Now().UTC()

	if _, err := s.CreateProject(ctx, domain.Project{
		ID: "p1", Name: "Home lab", IsActive: true, CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatalf("create project: %v", err)
	}

	first, err := s.ArchiveProject(ctx, "p1", now)
	if err != nil {
		t.Fatalf("archive project: %v", err)
	}
	if first.IsActive || first.ArchivedAt == nil {
		t.Fatalf("expected archived project, got %#v", first)
	}

	again, err := s.ArchiveProject(ctx, "p1", now.Add(time.Hour))
	if err != nil {
		t.Fatalf("archive project twice: %v", err)
	}
	if !again.ArchivedAt.Equal(*first.ArchivedAt) {
		t.Fatalf("archived_at must keep its first value, got %v want %v", again.ArchivedAt, first.ArchivedAt)
	}
}

func mustCreateContact(t *testing.T, s *Storage, slug string, cadence int) domain.Contact {
	t.Helper()
	now := time.Now().UTC()
	created, err := s.CreateContact(context.Background(), domain.Contact{
		Slug: slug, Name: slug, Priority: 1,
		Relationship:         domain.RelationshipFriend,
		Timezone:             "America/New_York",
		CheckInFrequencyDays: cadence,
		CreatedAt:            now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("create contact %q: %v", slug, err)
	}
	return created
}

func mustCreateTouchpoint(t *testing.T, s *Storage, slug string, date domain.Date) {
	t.Helper()
	tp := domain.Touchpoint{
		ID:          slug + "-" + date.String(),
		ContactSlug: slug,
		Date:        date,
		Channel:     domain.ChannelPhone,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := s.CreateTouchpoint(context.Background(), tp); err != nil {
		t.Fatalf("create touchpoint: %v", err)
	}
}

func TestTouchpointAdvancesLastContacted(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	today := domain.Today()

	mustCreateContact(t, s, "ada", 30)
	mustCreateTouchpoint(t, s, "ada", today.AddDays(-10))

	o, err := s.GetContactOverview(ctx, "ada", today)
	if err != nil {
		t.Fatalf("get overview: %v", err)
	}
	if o.LastContactedAt == nil || o.LastContactedAt.String() != today.AddDays(-10).String() {
		t.Fatalf("unexpected last_contacted_at: %v", o.LastContactedAt)
	}

	// Backfilling an older touchpoint must not regress the cached date.
	mustCreateTouchpoint(t, s, "ada", today.AddDays(-40))
	o, err = s.GetContactOverview(ctx, "ada", today)
	if err != nil {
		t.Fatalf("get overview: %v", err)
	}
	if o.LastContactedAt.String() != today.AddDays(-10).String() {
		t.Fatalf("last_contacted_at regressed to %v", o.LastContactedAt)
	}

	mustCreateTouchpoint(t, s, "ada", today.AddDays(-2))
	o, err = s.GetContactOverview(ctx, "ada", today)
	if err != nil {
		t.Fatalf("get overview: %v", err)
	}
	if o.LastContactedAt.String() != today.AddDays(-2).String() {
		t.Fatalf("last_contacted_at did not advance: %v", o.LastContactedAt)
	}
}

func TestTouchpointUnknownContact(t *testing.T) {
	s := newTestStorage(t)
	_, err := s.CreateTouchpoint(context.Background(), domain.Touchpoint{
		ID: "x", ContactSlug: "ghost", Date: domain.Today(),
		Channel: domain.ChannelEmail, CreatedAt: time.Now().UTC(),
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestContactOverviewRecentWindow(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	today := domain.Today()

	mustCreateContact(t, s, "grace", 30)
	mustCreateTouchpoint(t, s, "grace", today.AddDays(-domain.RecentWindowDays))   // on the boundary, counts
	mustCreateTouchpoint(t, s, "grace", today.AddDays(-domain.RecentWindowDays-1)) // just outside
	mustCreateTouchpoint(t, s, "grace", today.AddDays(-5))

	o, err := s.GetContactOverview(ctx, "grace", today)
	if err != nil {
		t.Fatalf("get overview: %v", err)
	}
	if o.TouchpointsRecent != 2 {
		t.Fatalf("expected 2 touchpoints inside the inclusive window, got %d", o.TouchpointsRecent)
	}
	if o.LastTouchpoint == nil || o.LastTouchpoint.String() != today.AddDays(-5).String() {
		t.Fatalf("unexpected last touchpoint: %v", o.LastTouchpoint)
	}
}

func TestContactOverviewsNoTouchpoints(t *testing.T) {
	s := newTestStorage(t)
	mustCreateContact(t, s, "new-hire", 14)

	overviews, err := s.ContactOverviews(context.Background(), domain.Today())
	if err != nil {
		t.Fatalf("overviews: %v", err)
	}
	if len(overviews) != 1 {
		t.Fatalf("expected 1 overview, got %d", len(overviews))
	}
	o := overviews[0]
	if o.LastTouchpoint != nil || o.TouchpointsRecent != 0 {
		t.Fatalf("expected empty annotations, got %#v", o)
	}
	o.AttachStrength(domain.Today())
	if o.Strength.State != "danger" || o.Strength.Score != 25 {
		t.Fatalf("expected cold-start strength, got %#v", o.Strength)
	}
}

func TestJournalAndMoodRoundTrip(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	now := time.Now().UTC()

	if _, err := s.CreateJournalEntry(ctx, domain.JournalEntry{
		ID: "j1", Title: "Weekly review", Date: domain.Today().AddDays(-1),
		ContentMarkdown: "# Done\n- things", CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatalf("create journal entry: %v", err)
	}
	if _, err := s.CreateJournalEntry(ctx, domain.JournalEntry{
		ID: "j2", Title: "Today", Date: domain.Today(),
		CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatalf("create journal entry: %v", err)
	}
	entries, err := s.ListJournalEntries(ctx)
	if err != nil {
		t.Fatalf("list journal entries: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "j2" {
		t.Fatalf("expected newest first, got %#v", entries)
	}

	if _, err := s.CreateMoodEntry(ctx, domain.MoodEntry{
		ID: "m1", RecordedAt: now, Mood: "relaxed", CreatedAt: now,
	}); err != nil {
		t.Fatalf("create mood entry: %v", err)
	}
	moods, err := s.ListMoodEntries(ctx)
	if err != nil {
		t.Fatalf("list mood entries: %v", err)
	}
	if len(moods) != 1 || moods[0].Mood != "relaxed" {
		t.Fatalf("unexpected moods: %#v", moods)
	}
}
