package types

import "time"

// ReviewPayload is the full payload accumulated by the 4-step company review
// wizard.
//
// Step 1: rating + relationship. Step 2: pros and cons. Step 3: headline and
// advice. Step 4: confirmation (anonymity choice).
type ReviewPayload struct {
	Rating           int    `json:"rating,omitempty" validate:"required,min=1,max=5"`
	EmploymentStatus string `json:"employment_status,omitempty" validate:"required,oneof=current former"`
	JobTitle         string `json:"job_title,omitempty" validate:"required,min=2"`
	YearsAtCompany   int    `json:"years_at_company,omitempty" validate:"omitempty,min=0,max=60"`
	Pros             string `json:"pros,omitempty" validate:"required,min=20"`
	Cons             string `json:"cons,omitempty" validate:"required,min=20"`
	Headline         string `json:"headline,omitempty" validate:"required,min=5,max=120"`
	Advice           string `json:"advice,omitempty" validate:"omitempty,max=2000"`
	Anonymous        bool   `json:"anonymous,omitempty"`
}

// ReviewStepFields lists, per wizard step, the struct fields validated before
// that step may be advanced. Step 4 is the confirmation screen and has no
// required fields of its own.
var ReviewStepFields = [][]string{
	{"Rating", "EmploymentStatus", "JobTitle", "YearsAtCompany"},
	{"Pros", "Cons"},
	{"Headline", "Advice"},
	{},
}

// Review is a stored company review as returned by the storage layer.
type Review struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"company_id"`
	AuthorID     string    `json:"author_id,omitempty"`
	Rating       int       `json:"rating"`
	Headline     string    `json:"headline"`
	Pros         string    `json:"pros"`
	Cons         string    `json:"cons"`
	Advice       string    `json:"advice,omitempty"`
	Anonymous    bool      `json:"anonymous"`
	HelpfulCount int       `json:"helpful_count"`
	CreatedAt    time.Time `json:"created_at"`
}
