package model

import "time"

// Visibility scopes who may see a project.
type Visibility string

// Visibility scopes. The values double as the mode labels filtered on.
const (
	InstitutionOnly Visibility = "institution-only"
	AllInstitutions Visibility = "all-students"
)

// Valid reports whether v is a known scope.
func (v Visibility) Valid() bool {
	return v == InstitutionOnly || v == AllInstitutions
}

// Project is a research opportunity published by a professor.
type Project struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Requirements string     `json:"requirements"`
	Duration     string     `json:"duration,omitempty"`
	ProfessorRef string     `json:"professor_ref"`
	Institution  string     `json:"institution"`
	Visibility   Visibility `json:"visibility"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NewProject is the professor-supplied part of a project. Identity, owner and
// institution are filled from the session when the project is created.
type NewProject struct {
	Title        string     `json:"title" validate:"required,max=200"`
	Description  string     `json:"description" validate:"required,max=8000"`
	Requirements string     `json:"requirements" validate:"max=4000"`
	Duration     string     `json:"duration" validate:"max=120"`
	Visibility   Visibility `json:"visibility" validate:"omitempty,oneof=institution-only all-students"`
}

// Validate checks the form fields.
func (n NewProject) Validate() error {
	return validateStruct(n)
}
