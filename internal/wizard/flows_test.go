package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karim/wadhifa/internal/types"
)

func TestApplicationFlow_StepCount(t *testing.T) {
	assert.Equal(t, 3, ApplicationFlow().Steps())
	assert.Equal(t, FlowApplication, ApplicationFlow().Kind)
}

func TestReviewFlow_StepCount(t *testing.T) {
	assert.Equal(t, 4, ReviewFlow().Steps())
	assert.Equal(t, FlowReview, ReviewFlow().Kind)
}

func TestValidateStep_OnlyChecksOwnFields(t *testing.T) {
	flow := ApplicationFlow()

	// Step 1 complete, later steps untouched: step 1 must pass even though
	// the cover letter (step 3) is still missing.
	payload := types.ApplicationPayload{
		FullName: "Layla Hassan",
		Email:    "layla@example.com",
	}

	assert.Empty(t, flow.ValidateStep(payload, 1))
	assert.NotEmpty(t, flow.ValidateStep(payload, 3))
}

func TestValidateStep_ReportsFailingFields(t *testing.T) {
	flow := ApplicationFlow()

	errs := flow.ValidateStep(types.ApplicationPayload{Email: "nope"}, 1)
	require.Contains(t, errs, "Email")
	require.Contains(t, errs, "FullName")
}

func TestValidateStep_OutOfRangeStepIsEmpty(t *testing.T) {
	flow := ApplicationFlow()
	assert.Empty(t, flow.ValidateStep(types.ApplicationPayload{}, 0))
	assert.Empty(t, flow.ValidateStep(types.ApplicationPayload{}, 9))
}

func TestValidateStep_ConfirmationStepHasNoRules(t *testing.T) {
	// Review step 4 only carries the anonymity choice.
	assert.Empty(t, ReviewFlow().ValidateStep(types.ReviewPayload{}, 4))
}

func TestValidateAll_MergesAllSteps(t *testing.T) {
	errs := ApplicationFlow().ValidateAll(types.ApplicationPayload{})

	require.Contains(t, errs, "FullName")
	require.Contains(t, errs, "ResumeURL")
	require.Contains(t, errs, "CoverLetter")
}

func TestValidateAll_CompletePayloadPasses(t *testing.T) {
	payload := types.ReviewPayload{
		Rating:           5,
		EmploymentStatus: "current",
		JobTitle:         "Data Engineer",
		Pros:             "Great mentorship and room to experiment with new tools.",
		Cons:             "Compensation reviews move slowly compared to the market.",
		Headline:         "Happy after two years",
	}

	assert.Nil(t, ReviewFlow().ValidateAll(payload))
}

func TestValidateStep_RatingBounds(t *testing.T) {
	flow := ReviewFlow()

	base := types.ReviewPayload{EmploymentStatus: "current", JobTitle: "Engineer"}

	base.Rating = 0
	assert.Contains(t, flow.ValidateStep(base, 1), "Rating")

	base.Rating = 6
	assert.Contains(t, flow.ValidateStep(base, 1), "Rating")

	base.Rating = 3
	assert.NotContains(t, flow.ValidateStep(base, 1), "Rating")
}

func TestValidateStep_EmploymentStatusEnum(t *testing.T) {
	flow := ReviewFlow()
	payload := types.ReviewPayload{Rating: 4, EmploymentStatus: "retired", JobTitle: "Engineer"}

	errs := flow.ValidateStep(payload, 1)
	require.Contains(t, errs, "EmploymentStatus")
	assert.Contains(t, errs["EmploymentStatus"], "current former")
}
