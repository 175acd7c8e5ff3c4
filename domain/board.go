package domain

import (
	"sort"
	"time"
)

// DoneRetentionDays is how long completed tasks stay visible on the board.
// Older done tasks remain in storage; the filter is read-side only.
const DoneRetentionDays = 14

// BoardStatuses lists the board columns in display order. Cancelled tasks
// are valid but never rendered on the board, and moves targeting cancelled
// are rejected.
var BoardStatuses = [...]string{StatusTodo, StatusInProgress, StatusBlocked, StatusDone}

// BoardVisible reports whether a status has a column on the board.
func BoardVisible(status string) bool {
	for _, s := range BoardStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Column is one rendered board column.
type Column struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Tasks []Task `json:"tasks"`
}

// NextOrder returns the append position for a column: one past the largest
// order currently present, with an empty column treated as max 0.
func NextOrder(orders []int) int {
	max := 0
	for _, o := range orders {
		if o > max {
			max = o
		}
	}
	return max + 1
}

// AssembleBoard groups tasks into the fixed column sequence. Done tasks
// whose completion is older than the retention window are dropped, and each
// column is sorted by (order asc, priority desc, due date asc with unset
// dates last, created_at desc).
func AssembleBoard(tasks []Task, now time.Time) []Column {
	cutoff := now.Add(-DoneRetentionDays * 24 * time.Hour)
	byStatus := make(map[string][]Task, len(BoardStatuses))
	for _, t := range tasks {
		if !BoardVisible(t.Status) {
			continue
		}
		if t.Status == StatusDone && t.CompletedAt != nil && t.CompletedAt.Before(cutoff) {
			continue
		}
		byStatus[t.Status] = append(byStatus[t.Status], t)
	}

	columns := make([]Column, 0, len(BoardStatuses))
	for _, status := range BoardStatuses {
		col := byStatus[status]
		sort.SliceStable(col, func(i, j int) bool { return lessColumnTasks(col[i], col[j]) })
		if col == nil {
			col = []Task{}
		}
		columns = append(columns, Column{Code: status, Label: StatusLabel(status), Tasks: col})
	}
	return columns
}

func lessColumnTasks(a, b Task) bool {
	if a.Order != b.Order {
		return a.Order < b.Order
	}
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	switch {
	case a.DueDate != nil && b.DueDate == nil:
		return true
	case a.DueDate == nil && b.DueDate != nil:
		return false
	case a.DueDate != nil && b.DueDate != nil && !a.DueDate.Time().Equal(b.DueDate.Time()):
		return a.DueDate.Before(*b.DueDate)
	}
	return a.CreatedAt.After(b.CreatedAt)
}
