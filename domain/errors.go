package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a referenced entity does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError carries field-level messages for a rejected form payload.
// It is recoverable: handlers re-render the form with the messages attached.
type ValidationError map[string]string

func (v ValidationError) Error() string {
	parts := make([]string, 0, len(v))
	for field, msg := range v {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
