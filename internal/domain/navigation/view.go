// Package navigation owns the session and the navigation state and decides
// which concrete view is on screen.
package navigation

import "strings"

// ViewID names a screen independent of device class.
type ViewID string

// Known views.
const (
	ViewLanding             ViewID = "landing"
	ViewLogin               ViewID = "login"
	ViewSignup              ViewID = "signup"
	ViewStudentHome         ViewID = "student-home"
	ViewProfessorHome       ViewID = "professor-home"
	ViewProjectDetail       ViewID = "project-detail"
	ViewApplyForm           ViewID = "apply-form"
	ViewCandidateManagement ViewID = "candidate-management"
	ViewProfile             ViewID = "profile"
)

var views = map[ViewID]struct{}{
	ViewLanding:             {},
	ViewLogin:               {},
	ViewSignup:              {},
	ViewStudentHome:         {},
	ViewProfessorHome:       {},
	ViewProjectDetail:       {},
	ViewApplyForm:           {},
	ViewCandidateManagement: {},
	ViewProfile:             {},
}

// aliases maps the page names used by older hosts onto views.
var aliases = map[string]ViewID{
	"home":            ViewLanding,
	"student":         ViewStudentHome,
	"professor":       ViewProfessorHome,
	"project":         ViewProjectDetail,
	"project-details": ViewProjectDetail,
}

// ParseView maps an intent's view identifier onto a ViewID.
func ParseView(s string) (ViewID, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if v, ok := aliases[s]; ok {
		return v, true
	}
	v := ViewID(s)
	_, ok := views[v]
	return v, ok
}

// Device is the externally supplied device class.
type Device int

// Device classes.
const (
	Desktop Device = iota
	Mobile
)

// DeviceFor converts the host's narrow-viewport signal.
func DeviceFor(narrow bool) Device {
	if narrow {
		return Mobile
	}
	return Desktop
}

func (d Device) String() string {
	if d == Mobile {
		return "mobile"
	}
	return "desktop"
}

// Renderer names the concrete screen for view on device.
func Renderer(d Device, v ViewID) string {
	return d.String() + "/" + string(v)
}
