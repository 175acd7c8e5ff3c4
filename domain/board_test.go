package domain

import (
	"testing"
	"time"
)

func TestNextOrderAppends(t *testing.T) {
	if got := NextOrder([]int{3, 3, 7}); got != 8 {
		t.Fatalf("expected 8 after {3,3,7}, got %d", got)
	}
	if got := NextOrder(nil); got != 1 {
		t.Fatalf("expected 1 for an empty column, got %d", got)
	}
}

func TestAssembleBoardColumnOrder(t *testing.T) {
	cols := AssembleBoard(nil, time.Now())
	want := []string{StatusTodo, StatusInProgress, StatusBlocked, StatusDone}
	if len(cols) != len(want) {
		t.Fatalf("expected %d columns, got %d", len(want), len(cols))
	}
	for i, w := range want {
		if cols[i].Code != w {
			t.Fatalf("column %d: expected %s, got %s", i, w, cols[i].Code)
		}
		if cols[i].Tasks == nil {
			t.Fatalf("column %s should render an empty list, not null", w)
		}
	}
}

func TestAssembleBoardExcludesCancelled(t *testing.T) {
	tasks := []Task{
		{ID: "a", Status: StatusTodo},
		{ID: "b", Status: StatusCancelled},
	}
	cols := AssembleBoard(tasks, time.Now())
	for _, col := range cols {
		for _, task := range col.Tasks {
			if task.ID == "b" {
				t.Fatalf("cancelled task rendered in column %s", col.Code)
			}
		}
	}
}

func TestAssembleBoardDoneRetention(t *testing.T) {
	now := time.Now()
	old := now.Add(-20 * 24 * time.Hour)
	recent := now.Add(-10 * 24 * time.Hour)
	tasks := []Task{
		{ID: "old", Status: StatusDone, CompletedAt: &old},
		{ID: "recent", Status: StatusDone, CompletedAt: &recent},
	}
	cols := AssembleBoard(tasks, now)
	done := cols[3]
	if len(done.Tasks) != 1 || done.Tasks[0].ID != "recent" {
		t.Fatalf("expected only the 10-day-old task in done, got %+v", done.Tasks)
	}
}

func TestAssembleBoardColumnSorting(t *testing.T) {
	now := time.Now()
	early := NewDate(2025, time.January, 5)
	late := NewDate(2025, time.June, 5)
	tasks := []Task{
		{ID: "high-order", Status: StatusTodo, Order: 9, Priority: PriorityUrgent, CreatedAt: now},
		{ID: "low-order", Status: StatusTodo, Order: 1, Priority: PriorityLow, CreatedAt: now},
		{ID: "tie-urgent", Status: StatusTodo, Order: 5, Priority: PriorityUrgent, CreatedAt: now},
		{ID: "tie-normal-due-early", Status: StatusTodo, Order: 5, Priority: PriorityNormal, DueDate: &early, CreatedAt: now},
		{ID: "tie-normal-due-late", Status: StatusTodo, Order: 5, Priority: PriorityNormal, DueDate: &late, CreatedAt: now},
		{ID: "tie-normal-no-due-older", Status: StatusTodo, Order: 5, Priority: PriorityNormal, CreatedAt: now.Add(-time.Hour)},
		{ID: "tie-normal-no-due-newer", Status: StatusTodo, Order: 5, Priority: PriorityNormal, CreatedAt: now},
	}
	cols := AssembleBoard(tasks, now)
	got := make([]string, 0, len(cols[0].Tasks))
	for _, task := range cols[0].Tasks {
		got = append(got, task.ID)
	}
	want := []string{
		"low-order",
		"tie-urgent",
		"tie-normal-due-early",
		"tie-normal-due-late",
		"tie-normal-no-due-newer",
		"tie-normal-no-due-older",
		"high-order",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d tasks, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %s, got %s (full order %v)", i, want[i], got[i], got)
		}
	}
}

func TestBoardVisible(t *testing.T) {
	for _, s := range []string{StatusTodo, StatusInProgress, StatusBlocked, StatusDone} {
		if !BoardVisible(s) {
			t.Fatalf("%s should be board visible", s)
		}
	}
	if BoardVisible(StatusCancelled) {
		t.Fatal("cancelled must not be board visible")
	}
	if BoardVisible("bogus") {
		t.Fatal("unknown status must not be board visible")
	}
}
