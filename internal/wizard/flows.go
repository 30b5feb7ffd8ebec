// Package wizard implements the generic multi-step submission state machine
// used by the job application and company review flows.
package wizard

import (
	"github.com/go-playground/validator/v10"

	"github.com/karim/wadhifa/internal/types"
)

// FlowKind distinguishes the two submission flows sharing the controller.
type FlowKind string

const (
	FlowApplication FlowKind = "application"
	FlowReview      FlowKind = "review"
)

var validate = validator.New()

// Flow describes one wizard flow: its kind and which payload fields each
// step validates.
type Flow[P any] struct {
	Kind       FlowKind
	stepFields [][]string
}

// ApplicationFlow is the 3-step job application flow.
func ApplicationFlow() Flow[types.ApplicationPayload] {
	return Flow[types.ApplicationPayload]{Kind: FlowApplication, stepFields: types.ApplicationStepFields}
}

// ReviewFlow is the 4-step company review flow.
func ReviewFlow() Flow[types.ReviewPayload] {
	return Flow[types.ReviewPayload]{Kind: FlowReview, stepFields: types.ReviewStepFields}
}

// Steps returns the number of steps in the flow.
func (f Flow[P]) Steps() int { return len(f.stepFields) }

// ValidateStep checks only the fields belonging to step (1-based) and
// returns the first failing rule per field. An empty result means the step
// may be advanced.
func (f Flow[P]) ValidateStep(payload P, step int) FieldErrors {
	if step < 1 || step > len(f.stepFields) {
		return nil
	}
	fields := f.stepFields[step-1]
	if len(fields) == 0 {
		return nil
	}
	return collectFieldErrors(validate.StructPartial(payload, fields...))
}

// ValidateAll checks every step's fields at once. Used by the server to
// re-validate the accumulated payload at terminal submission.
func (f Flow[P]) ValidateAll(payload P) FieldErrors {
	merged := FieldErrors{}
	for step := 1; step <= len(f.stepFields); step++ {
		for field, msg := range f.ValidateStep(payload, step) {
			if _, seen := merged[field]; !seen {
				merged[field] = msg
			}
		}
	}
	if len(merged) == 0 {
		return nil
	}
	return merged
}

// collectFieldErrors converts validator output into FieldErrors, keeping
// only the first failing rule per field.
func collectFieldErrors(err error) FieldErrors {
	if err == nil {
		return nil
	}
	out := FieldErrors{}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, ve := range verrs {
			if _, seen := out[ve.Field()]; !seen {
				out[ve.Field()] = ruleMessage(ve)
			}
		}
	}
	if len(out) == 0 {
		out["payload"] = "invalid payload"
	}
	return out
}

// ruleMessage renders a short user-facing message for a failed rule.
func ruleMessage(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		return "too short or too small (min " + ve.Param() + ")"
	case "max":
		return "too long or too large (max " + ve.Param() + ")"
	case "oneof":
		return "must be one of: " + ve.Param()
	default:
		return "failed rule: " + ve.Tag()
	}
}
