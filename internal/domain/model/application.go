package model

import (
	"fmt"
	"strings"
	"time"
)

// Status is the review state of an application.
type Status string

// Review states. Any state may be overwritten by any other.
const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// ParseStatus maps a wire value onto a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, s)
	}
	return st, nil
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Candidate is the applicant's form snapshot shown on the roster.
type Candidate struct {
	Name       string `json:"name" validate:"required,max=120"`
	Course     string `json:"course" validate:"max=120"`
	Semester   string `json:"semester" validate:"max=60"`
	Motivation string `json:"motivation" validate:"max=4000"`
}

// Validate checks the form fields.
func (c Candidate) Validate() error {
	return validateStruct(c)
}

// Application records one candidate's interest in one project.
// (ProjectID, CandidateRef) is unique.
type Application struct {
	ProjectID    string    `json:"project_id"`
	CandidateRef string    `json:"candidate_ref"`
	Candidate    Candidate `json:"candidate"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// Key returns the uniqueness key of the application.
func (a Application) Key() ApplicationKey {
	return ApplicationKey{ProjectID: a.ProjectID, CandidateRef: a.CandidateRef}
}

// ApplicationKey addresses a single application.
type ApplicationKey struct {
	ProjectID    string
	CandidateRef string
}
