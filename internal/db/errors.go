package db

import "fmt"

// DuplicateSubmissionError is returned when a user submits a second
// application for the same job or a second review for the same company. The
// first submission stands untouched.
type DuplicateSubmissionError struct {
	Kind     string // "application" or "review"
	EntityID string
}

func (e *DuplicateSubmissionError) Error() string {
	return fmt.Sprintf("duplicate %s for %s: one submission per user", e.Kind, e.EntityID)
}

// NotFoundError is returned when a referenced record does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}
