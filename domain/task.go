package domain

import "time"

// Workflow statuses a task can hold.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusBlocked    = "blocked"
	StatusCancelled  = "cancelled"
	StatusDone       = "done"
)

// Priority ordinals.
const (
	PriorityLow    = 1
	PriorityNormal = 2
	PriorityHigh   = 3
	PriorityUrgent = 4
)

// Energy levels a task may require.
const (
	EnergyLow    = "LOW"
	EnergyMedium = "MEDIUM"
	EnergyHigh   = "HIGH"
)

var statusLabels = map[string]string{
	StatusTodo:       "To do",
	StatusInProgress: "In progress",
	StatusBlocked:    "Blocked",
	StatusCancelled:  "Cancelled",
	StatusDone:       "Done",
}

// ValidStatus reports whether s is one of the workflow statuses.
func ValidStatus(s string) bool {
	_, ok := statusLabels[s]
	return ok
}

// StatusLabel returns the display label for a status code.
func StatusLabel(s string) string { return statusLabels[s] }

// ValidPriority reports whether p is within the 1..4 ordinal range.
func ValidPriority(p int) bool { return p >= PriorityLow && p <= PriorityUrgent }

// ValidEnergy reports whether e is a known energy level.
func ValidEnergy(e string) bool {
	return e == EnergyLow || e == EnergyMedium || e == EnergyHigh
}

// Task represents a single board item.
type Task struct {
	ID          string `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description,omitempty" db:"description"`
	Status      string `json:"status" db:"status"`
	Priority    int    `json:"priority" db:"priority"`
	// Order is the manual secondary sort key within a status column. It is
	// assigned by appending and never renumbered, so gaps and duplicates
	// are expected.
	Order           int        `json:"order" db:"sort_order"`
	DueDate         *Date      `json:"dueDate,omitempty" db:"due_date"`
	EstimateMinutes *int       `json:"estimateMinutes,omitempty" db:"estimate_minutes"`
	Energy          string     `json:"energy" db:"energy"`
	ProjectID       *string    `json:"projectId,omitempty" db:"project_id"`
	CompletedAt     *time.Time `json:"completedAt,omitempty" db:"completed_at"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
	Tags            []string   `json:"tags,omitempty" db:"-"`
}

// TaskUpdate carries a partial update for a task's scalar fields. Nil fields
// are left untouched.
type TaskUpdate struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	Status          *string `json:"status"`
	Priority        *int    `json:"priority"`
	DueDate         *Date   `json:"dueDate"`
	EstimateMinutes *int    `json:"estimateMinutes"`
	Energy          *string `json:"energy"`
	ProjectID       *string `json:"projectId"`
}

// Validate checks the populated fields of a partial update.
func (u TaskUpdate) Validate() ValidationError {
	errs := ValidationError{}
	if u.Title != nil && *u.Title == "" {
		errs["title"] = "title must not be empty"
	}
	if u.Status != nil && !ValidStatus(*u.Status) {
		errs["status"] = "unknown status"
	}
	if u.Priority != nil && !ValidPriority(*u.Priority) {
		errs["priority"] = "priority must be between 1 and 4"
	}
	if u.Energy != nil && !ValidEnergy(*u.Energy) {
		errs["energy"] = "unknown energy level"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// TaskFilter narrows task listings. Zero values mean no filtering.
type TaskFilter struct {
	Status    string
	ProjectID string
	Tag       string
}

// Comment is a note attached to a task.
type Comment struct {
	ID        string    `json:"id" db:"id"`
	TaskID    string    `json:"taskId" db:"task_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
