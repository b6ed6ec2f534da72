package navigation_test

import (
	"errors"
	"testing"

	"github.com/okian/nora/internal/domain/authz"
	"github.com/okian/nora/internal/domain/model"
	"github.com/okian/nora/internal/domain/navigation"
	. "github.com/smartystreets/goconvey/convey"
)

func newMachine() *navigation.Machine {
	policy, err := authz.New()
	if err != nil {
		panic(err)
	}
	return navigation.NewMachine(policy)
}

func profile(name, institution string) model.Profile {
	return model.Profile{DisplayName: name, Institution: institution}
}

func TestParseView(t *testing.T) {
	Convey("Given view identifiers", t, func() {
		Convey("When parsing canonical names and legacy aliases", func() {
			v1, ok1 := navigation.ParseView("apply-form")
			v2, ok2 := navigation.ParseView("Project-Details")
			v3, ok3 := navigation.ParseView("home")

			Convey("Then they resolve", func() {
				So(ok1 && ok2 && ok3, ShouldBeTrue)
				So(v1, ShouldEqual, navigation.ViewApplyForm)
				So(v2, ShouldEqual, navigation.ViewProjectDetail)
				So(v3, ShouldEqual, navigation.ViewLanding)
			})
		})

		Convey("When parsing an unknown name", func() {
			_, ok := navigation.ParseView("settings")

			Convey("Then it is not known", func() {
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestMachineInitialState(t *testing.T) {
	Convey("Given a fresh machine", t, func() {
		m := newMachine()

		Convey("Then the session is anonymous on the landing view", func() {
			So(m.Session().EffectiveRole(), ShouldEqual, model.RoleAnonymous)
			So(m.State().View, ShouldEqual, navigation.ViewLanding)
			So(m.Current(navigation.Mobile).Renderer, ShouldEqual, "mobile/landing")
		})
	})
}

func TestMachineLogin(t *testing.T) {
	Convey("Given a fresh machine", t, func() {
		m := newMachine()

		Convey("When a student logs in on desktop", func() {
			res, err := m.Login(navigation.Desktop, model.RoleStudent, profile("João Silva", "USP - Cardiologia"))

			Convey("Then the student home is rendered by the desktop set", func() {
				So(err, ShouldBeNil)
				So(res.State.View, ShouldEqual, navigation.ViewStudentHome)
				So(res.Renderer, ShouldEqual, "desktop/student-home")
				So(res.Redirected, ShouldBeFalse)
				So(m.Session().Role, ShouldEqual, model.RoleStudent)
			})
		})

		Convey("When a professor logs in on mobile", func() {
			res, err := m.Login(navigation.Mobile, model.RoleProfessor, profile("Prof. Ana Costa", "USP - Cardiologia"))

			Convey("Then the professor home is rendered by the mobile set", func() {
				So(err, ShouldBeNil)
				So(res.State.View, ShouldEqual, navigation.ViewProfessorHome)
				So(res.Renderer, ShouldEqual, "mobile/professor-home")
			})
		})

		Convey("When logging in as anonymous", func() {
			_, err := m.Login(navigation.Desktop, model.RoleAnonymous, profile("x", ""))

			Convey("Then it is rejected and nothing changes", func() {
				So(errors.Is(err, model.ErrInvalidInput), ShouldBeTrue)
				So(m.Session().LoggedIn(), ShouldBeFalse)
				So(m.State().View, ShouldEqual, navigation.ViewLanding)
			})
		})

		Convey("When logging in without a display name", func() {
			_, err := m.Login(navigation.Desktop, model.RoleStudent, model.Profile{})

			Convey("Then the session stays anonymous", func() {
				So(errors.Is(err, model.ErrInvalidInput), ShouldBeTrue)
				So(m.Session().LoggedIn(), ShouldBeFalse)
			})
		})

		Convey("When a student re-logs in as professor", func() {
			_, _ = m.Login(navigation.Desktop, model.RoleStudent, profile("Ana", "USP"))
			res, err := m.Login(navigation.Desktop, model.RoleProfessor, profile("Ana", "USP"))

			Convey("Then the role changes", func() {
				So(err, ShouldBeNil)
				So(m.Session().Role, ShouldEqual, model.RoleProfessor)
				So(res.State.View, ShouldEqual, navigation.ViewProfessorHome)
			})
		})
	})
}

func TestMachineNavigate(t *testing.T) {
	Convey("Given a logged in professor", t, func() {
		m := newMachine()
		_, err := m.Login(navigation.Desktop, model.RoleProfessor, profile("Prof. João Silva", "USP - Cardiologia"))
		So(err, ShouldBeNil)

		Convey("When the professor requests the student apply form", func() {
			res := m.Navigate(navigation.Desktop, "apply-form", navigation.ProjectParams{ProjectID: "1"})

			Convey("Then the resolver redirects to the professor home", func() {
				So(res.State.View, ShouldEqual, navigation.ViewProfessorHome)
				So(res.Redirected, ShouldBeTrue)
				So(res.Reason, ShouldEqual, navigation.ReasonUnauthorized)
				So(res.Requested, ShouldEqual, "apply-form")
				So(m.State().View, ShouldEqual, navigation.ViewProfessorHome)
			})
		})

		Convey("When the professor opens candidate management for a project", func() {
			res := m.Navigate(navigation.Mobile, "candidate-management", navigation.ProjectParams{ProjectID: "1"})

			Convey("Then the view carries the project payload", func() {
				So(res.State.View, ShouldEqual, navigation.ViewCandidateManagement)
				So(res.State.Params, ShouldResemble, navigation.ProjectParams{ProjectID: "1"})
				So(res.Renderer, ShouldEqual, "mobile/candidate-management")
			})
		})

		Convey("When a project view is requested without a project id", func() {
			res := m.Navigate(navigation.Desktop, "project-detail", navigation.NoParams{})

			Convey("Then the resolver falls back to home", func() {
				So(res.State.View, ShouldEqual, navigation.ViewProfessorHome)
				So(res.Reason, ShouldEqual, navigation.ReasonMissingParams)
			})
		})

		Convey("When a mismatched payload is sent to the profile view", func() {
			res := m.Navigate(navigation.Desktop, "profile", navigation.ProjectParams{ProjectID: "1"})

			Convey("Then the payload is dropped", func() {
				So(res.State.View, ShouldEqual, navigation.ViewProfile)
				So(res.State.Params, ShouldResemble, navigation.ProfileParams{})
			})
		})

		Convey("When an unknown view is requested", func() {
			res := m.Navigate(navigation.Desktop, "settings", nil)

			Convey("Then the landing view is shown", func() {
				So(res.State.View, ShouldEqual, navigation.ViewLanding)
				So(res.Reason, ShouldEqual, navigation.ReasonUnknownView)
			})
		})

		Convey("When logging out", func() {
			res := m.Logout(navigation.Mobile)

			Convey("Then the session is anonymous on landing", func() {
				So(res.State.View, ShouldEqual, navigation.ViewLanding)
				So(m.Session().LoggedIn(), ShouldBeFalse)
				So(m.Session().Profile, ShouldResemble, model.Profile{})
			})
		})
	})

	Convey("Given an anonymous session", t, func() {
		m := newMachine()

		Convey("When every protected view is requested", func() {
			for _, target := range []string{"student-home", "professor-home", "apply-form", "candidate-management", "profile"} {
				res := m.Navigate(navigation.Desktop, target, navigation.ProjectParams{ProjectID: "1"})
				So(res.State.View, ShouldEqual, navigation.ViewLanding)
				So(res.Redirected, ShouldBeTrue)
			}
		})

		Convey("When an unknown view is requested", func() {
			res := m.Navigate(navigation.Mobile, "", nil)

			Convey("Then the landing view is shown", func() {
				So(res.State.View, ShouldEqual, navigation.ViewLanding)
				So(res.Renderer, ShouldEqual, "mobile/landing")
			})
		})

		Convey("When signup is requested", func() {
			res := m.Navigate(navigation.Desktop, "signup", nil)

			Convey("Then it is allowed", func() {
				So(res.State.View, ShouldEqual, navigation.ViewSignup)
				So(res.Redirected, ShouldBeFalse)
			})
		})
	})
}

func TestMachineUpdateProfile(t *testing.T) {
	Convey("Given a machine", t, func() {
		m := newMachine()

		Convey("When updating the profile anonymously", func() {
			err := m.UpdateProfile(profile("Ana", "USP"))

			Convey("Then it is unauthorized", func() {
				So(errors.Is(err, model.ErrUnauthorized), ShouldBeTrue)
			})
		})

		Convey("When a student replaces the profile", func() {
			_, _ = m.Login(navigation.Desktop, model.RoleStudent, model.Profile{DisplayName: "Ana", Bio: "old"})
			before := m.Session().ActorRef()
			err := m.UpdateProfile(profile("Ana Costa", "UFRJ - Pediatria"))

			Convey("Then the record is replaced whole", func() {
				So(err, ShouldBeNil)
				So(before, ShouldEqual, model.NewActorID(model.RoleStudent, "Ana"))
				So(m.Session().ActorRef(), ShouldEqual, before)
				So(m.Session().Profile.Institution, ShouldEqual, "UFRJ - Pediatria")
				So(m.Session().Profile.Bio, ShouldEqual, "")
				So(m.Session().Role, ShouldEqual, model.RoleStudent)
			})
		})

		Convey("When the replacement is invalid", func() {
			_, _ = m.Login(navigation.Desktop, model.RoleStudent, profile("Ana", "USP"))
			err := m.UpdateProfile(model.Profile{})

			Convey("Then the old profile stays", func() {
				So(errors.Is(err, model.ErrInvalidInput), ShouldBeTrue)
				So(m.Session().Profile.DisplayName, ShouldEqual, "Ana")
			})
		})
	})
}

type denyAll struct{}

func (denyAll) CanOpen(model.Role, string) bool { return false }

func TestMachineWithDenyingPolicy(t *testing.T) {
	Convey("Given a policy that denies everything", t, func() {
		m := navigation.NewMachine(denyAll{})

		Convey("When any view is requested", func() {
			res := m.Navigate(navigation.Desktop, "signup", nil)

			Convey("Then the role home is committed", func() {
				So(res.State.View, ShouldEqual, navigation.Home(model.RoleAnonymous))
				So(res.Reason, ShouldEqual, navigation.ReasonUnauthorized)
			})
		})
	})
}
