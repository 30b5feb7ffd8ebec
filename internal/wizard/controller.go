package wizard

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/karim/wadhifa/internal/draft"
)

// SubmitFunc performs the terminal submission with the accumulated payload.
// A nil error means the record was created.
type SubmitFunc[P any] func(ctx context.Context, payload P) error

// State is the controller's externally visible position: a 1-based step
// number, or the terminal success state. No other states exist.
type State struct {
	Step    int  `json:"step,omitempty"`
	Success bool `json:"success"`
}

// Controller drives one open wizard instance. It owns the payload, the
// current step, and the field errors for the lifetime of one modal; the
// draft store lets the payload survive close/reopen.
type Controller[P any] struct {
	flow     Flow[P]
	entityID string
	submit   SubmitFunc[P]
	drafts   *draft.Store

	payload     P
	current     int
	succeeded   bool
	fieldErrors FieldErrors
}

// NewController activates a wizard for (flow, entityID). If a non-empty
// draft exists it is merged into the payload: only fields present in the
// draft are set, so a partial draft never blanks out anything.
func NewController[P any](ctx context.Context, flow Flow[P], entityID string, submit SubmitFunc[P], drafts *draft.Store) *Controller[P] {
	c := &Controller[P]{
		flow:     flow,
		entityID: entityID,
		submit:   submit,
		drafts:   drafts,
		current:  1,
	}
	if raw := drafts.Load(ctx, c.draftKey()); raw != nil {
		// Unmarshal-over-existing only touches fields the draft carries.
		_ = json.Unmarshal(raw, &c.payload)
	}
	return c
}

func (c *Controller[P]) draftKey() string {
	return draft.Key(string(c.flow.Kind), c.entityID)
}

// State reports the current position.
func (c *Controller[P]) State() State {
	if c.succeeded {
		return State{Success: true}
	}
	return State{Step: c.current}
}

// Payload exposes the accumulated form data for editing.
func (c *Controller[P]) Payload() *P { return &c.payload }

// FieldErrors returns the errors from the last failed Next call, keyed by
// field. Empty once a step validates.
func (c *Controller[P]) FieldErrors() FieldErrors { return c.fieldErrors }

// StepValid reports whether the current step's fields would pass
// validation. It is side-effect free so the UI can gate its continue
// control without touching controller state.
func (c *Controller[P]) StepValid() bool {
	if c.succeeded {
		return false
	}
	return len(c.flow.ValidateStep(c.payload, c.current)) == 0
}

// Next validates the current step. On failure the controller stays put and
// records field errors. On success below the final step it advances; on the
// final step it submits. Submission success clears the draft and moves to
// the terminal success state; submission failure keeps the controller on the
// final step and persists the payload as a draft so the work survives.
func (c *Controller[P]) Next(ctx context.Context) error {
	if c.succeeded {
		return nil
	}

	if errs := c.flow.ValidateStep(c.payload, c.current); len(errs) > 0 {
		c.fieldErrors = errs
		return &ValidationError{Step: c.current, Fields: errs}
	}
	c.fieldErrors = nil

	if c.current < c.flow.Steps() {
		c.current++
		return nil
	}

	if err := c.submit(ctx, c.payload); err != nil {
		c.persistDraft(ctx)
		return &SubmitError{Err: err}
	}

	c.drafts.Clear(ctx, c.draftKey())
	c.succeeded = true
	return nil
}

// Back moves one step earlier. It never validates and is a no-op on the
// first step or after success.
func (c *Controller[P]) Back() {
	if !c.succeeded && c.current > 1 {
		c.current--
	}
}

// JumpToStep moves directly to an earlier step (edit links on a review
// screen). Jumps forward are rejected; steps skipped over on the way back
// are not re-validated.
func (c *Controller[P]) JumpToStep(step int) bool {
	if c.succeeded || step < 1 || step >= c.current {
		return false
	}
	c.current = step
	return true
}

// Close deactivates the wizard (modal dismissed). Unless the flow already
// succeeded, a non-empty payload is persisted for the next open.
func (c *Controller[P]) Close(ctx context.Context) {
	if c.succeeded {
		return
	}
	c.persistDraft(ctx)
}

func (c *Controller[P]) persistDraft(ctx context.Context) {
	if isZeroPayload(c.payload) {
		return
	}
	c.drafts.Save(ctx, c.draftKey(), c.payload)
}

// isZeroPayload reports whether the payload serializes identically to its
// zero value, i.e. the user has entered nothing worth keeping.
func isZeroPayload[P any](payload P) bool {
	var zero P
	a, err := json.Marshal(payload)
	if err != nil {
		return true
	}
	b, _ := json.Marshal(zero)
	return bytes.Equal(a, b)
}
