package domain

import "time"

// Project groups tasks under a named effort.
type Project struct {
	ID          string     `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description,omitempty" db:"description"`
	IsActive    bool       `json:"isActive" db:"is_active"`
	ArchivedAt  *time.Time `json:"archivedAt,omitempty" db:"archived_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// Validate checks a project before it is persisted.
func (p Project) Validate() ValidationError {
	errs := ValidationError{}
	if p.Name == "" {
		errs["name"] = "name must not be empty"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Tag is a label applied to tasks. Names are unique.
type Tag struct {
	Name      string    `json:"name" db:"name"`
	Color     string    `json:"color,omitempty" db:"color"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Validate checks a tag before it is persisted.
func (t Tag) Validate() ValidationError {
	errs := ValidationError{}
	if t.Name == "" {
		errs["name"] = "name must not be empty"
	}
	if t.Color != "" && !validHexColor(t.Color) {
		errs["color"] = "color must be a #rrggbb value"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validHexColor(c string) bool {
	if len(c) != 7 || c[0] != '#' {
		return false
	}
	for _, r := range c[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
