package navigation

import (
	"fmt"

	"github.com/okian/nora/internal/domain/model"
)

// Policy decides whether a role may open a view.
type Policy interface {
	CanOpen(role model.Role, view string) bool
}

// State is the single authoritative navigation value.
type State struct {
	View   ViewID `json:"view"`
	Params Params `json:"params"`
}

// Reason explains why a navigation landed somewhere other than requested.
type Reason string

// Redirect reasons.
const (
	ReasonNone          Reason = ""
	ReasonUnknownView   Reason = "unknown_view"
	ReasonUnauthorized  Reason = "unauthorized"
	ReasonMissingParams Reason = "missing_params"
)

// Resolution is what the host renders after an intent.
type Resolution struct {
	State      State
	Device     Device
	Renderer   string
	Requested  string
	Redirected bool
	Reason     Reason
}

// Machine owns the session and navigation state. It is not safe for
// concurrent use; the owner serializes intents.
type Machine struct {
	policy  Policy
	session model.Session
	state   State
}

// NewMachine returns a machine with an anonymous session on the landing view.
func NewMachine(policy Policy) *Machine {
	return &Machine{
		policy:  policy,
		session: model.Anonymous(),
		state:   State{View: ViewLanding, Params: NoParams{}},
	}
}

// Session returns a copy of the live session.
func (m *Machine) Session() model.Session {
	return m.session
}

// State returns the committed navigation state.
func (m *Machine) State() State {
	return m.state
}

// Current renders the committed state for device without changing it.
func (m *Machine) Current(device Device) Resolution {
	return Resolution{
		State:     m.state,
		Device:    device,
		Renderer:  Renderer(device, m.state.View),
		Requested: string(m.state.View),
	}
}

// Home returns the home view of role.
func Home(role model.Role) ViewID {
	switch role {
	case model.RoleStudent:
		return ViewStudentHome
	case model.RoleProfessor:
		return ViewProfessorHome
	}
	return ViewLanding
}

// Navigate replaces the navigation state. Unknown targets land on the
// landing view; targets the role may not open, or that lack their payload,
// land on the role's home view. It never fails.
func (m *Machine) Navigate(device Device, target string, params Params) Resolution {
	res := Resolution{Device: device, Requested: target}

	view, known := ParseView(target)
	if !known {
		view = ViewLanding
		res.Redirected, res.Reason = true, ReasonUnknownView
	}

	role := m.session.EffectiveRole()
	if !m.policy.CanOpen(role, string(view)) {
		view = Home(role)
		res.Redirected, res.Reason = true, ReasonUnauthorized
	}

	p, ok := coerce(view, params)
	if !ok {
		view = Home(role)
		p = NoParams{}
		res.Redirected, res.Reason = true, ReasonMissingParams
	}

	m.state = State{View: view, Params: p}
	res.State = m.state
	res.Renderer = Renderer(device, view)
	return res
}

// Login replaces the session with role and profile, then navigates to the
// role's home view. Re-login with another role is allowed.
func (m *Machine) Login(device Device, role model.Role, profile model.Profile) (Resolution, error) {
	if role != model.RoleStudent && role != model.RoleProfessor {
		return Resolution{}, fmt.Errorf("%w: cannot log in as %q", model.ErrInvalidInput, role)
	}
	if err := profile.Validate(); err != nil {
		return Resolution{}, err
	}
	m.session = model.Session{
		ActorID: model.NewActorID(role, profile.DisplayName),
		Role:    role,
		Profile: profile,
	}
	return m.Navigate(device, string(Home(role)), NoParams{}), nil
}

// Logout resets the session to anonymous and navigates to the landing view.
func (m *Machine) Logout(device Device) Resolution {
	m.session = model.Anonymous()
	return m.Navigate(device, string(ViewLanding), NoParams{})
}

// UpdateProfile replaces the session profile whole. The role and actor id
// are untouched.
func (m *Machine) UpdateProfile(profile model.Profile) error {
	if !m.session.LoggedIn() {
		return fmt.Errorf("%w: no active session", model.ErrUnauthorized)
	}
	if err := profile.Validate(); err != nil {
		return err
	}
	m.session.Profile = profile
	return nil
}
