package wizard

import (
	"fmt"
	"sort"
	"strings"
)

// FieldErrors maps a payload field to the message of its first failing rule.
type FieldErrors map[string]string

// ValidationError indicates a step's payload failed validation. It is
// recoverable: the wizard stays on the failing step and entered data is kept.
type ValidationError struct {
	Step   int
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("step %d validation failed: %s", e.Step, strings.Join(fields, ", "))
}

// SubmitError wraps a failed terminal submission. The draft has already been
// re-persisted by the time the caller sees it, so no entered work is lost.
type SubmitError struct {
	Err error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("submission failed: %v", e.Err)
}

func (e *SubmitError) Unwrap() error { return e.Err }
