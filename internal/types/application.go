package types

// ApplicationPayload is the full payload accumulated by the 3-step job
// application wizard. Fields are optional at the type level; per-step
// required rules are enforced by the wizard's step validators.
//
// Step 1: contact details. Step 2: experience. Step 3: cover letter + review.
type ApplicationPayload struct {
	FullName        string `json:"full_name,omitempty" validate:"required,min=2"`
	Email           string `json:"email,omitempty" validate:"required,email"`
	Phone           string `json:"phone,omitempty" validate:"omitempty,min=6"`
	ResumeURL       string `json:"resume_url,omitempty" validate:"required,url"`
	YearsExperience int    `json:"years_experience,omitempty" validate:"omitempty,min=0,max=60"`
	ExpectedSalary  int    `json:"expected_salary,omitempty" validate:"omitempty,min=0"`
	NoticePeriod    string `json:"notice_period,omitempty" validate:"omitempty,oneof=immediate 2-weeks 1-month 2-months 3-months"`
	CoverLetter     string `json:"cover_letter,omitempty" validate:"required,min=50"`
}

// ApplicationStepFields lists, per wizard step, the struct fields validated
// before that step may be advanced.
var ApplicationStepFields = [][]string{
	{"FullName", "Email", "Phone"},
	{"ResumeURL", "YearsExperience", "ExpectedSalary", "NoticePeriod"},
	{"CoverLetter"},
}
