// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Role identifies the actor driving the session.
type Role string

// Known roles.
const (
	RoleAnonymous Role = "anonymous"
	RoleStudent   Role = "student"
	RoleProfessor Role = "professor"
)

// ParseRole maps a wire value onto a Role. Only the two login roles parse.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent, nil
	case RoleProfessor:
		return RoleProfessor, nil
	}
	return RoleAnonymous, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, s)
}

// ExternalLinks holds the optional public profile links.
type ExternalLinks struct {
	Lattes   string `json:"lattes,omitempty" validate:"omitempty,url"`
	LinkedIn string `json:"linkedin,omitempty" validate:"omitempty,url"`
}

// Profile is the session owner's public data. It is always replaced whole.
type Profile struct {
	DisplayName     string        `json:"display_name" validate:"required,max=120"`
	Institution     string        `json:"institution" validate:"max=160"`
	PhotoRef        string        `json:"photo_ref,omitempty"`
	Bio             string        `json:"bio,omitempty" validate:"max=4000"`
	AcademicHistory string        `json:"academic_history,omitempty" validate:"max=4000"`
	Links           ExternalLinks `json:"external_links"`
}

// Validate checks the profile fields.
func (p Profile) Validate() error {
	return validateStruct(p)
}

// Session is the single live actor. The zero value is the anonymous session.
type Session struct {
	ActorID string  `json:"actor_id,omitempty"`
	Role    Role    `json:"role"`
	Profile Profile `json:"profile"`
}

// actorNamespace scopes actor ids derived by NewActorID.
var actorNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://nora.app/actors"))

// NewActorID derives the stored reference of whoever logs in as role under
// displayName. The same pair always yields the same id, so records survive a
// later logout and login.
func NewActorID(role Role, displayName string) string {
	key := string(role) + "\x00" + strings.TrimSpace(displayName)
	return uuid.NewSHA1(actorNamespace, []byte(key)).String()
}

// Anonymous returns a fresh anonymous session.
func Anonymous() Session {
	return Session{Role: RoleAnonymous}
}

// EffectiveRole normalizes the empty role to anonymous.
func (s Session) EffectiveRole() Role {
	if s.Role == "" {
		return RoleAnonymous
	}
	return s.Role
}

// LoggedIn reports whether a student or professor holds the session.
func (s Session) LoggedIn() bool {
	r := s.EffectiveRole()
	return r == RoleStudent || r == RoleProfessor
}

// ActorRef identifies the session owner in stored records. It is fixed at
// login and does not follow profile edits.
func (s Session) ActorRef() string {
	return s.ActorID
}
