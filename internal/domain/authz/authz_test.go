package authz_test

import (
	"testing"

	"github.com/okian/nora/internal/domain/authz"
	"github.com/okian/nora/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEnforcer(t *testing.T) {
	Convey("Given the embedded role policy", t, func() {
		e, err := authz.New()
		So(err, ShouldBeNil)

		Convey("When an anonymous actor asks for views", func() {
			Convey("Then only the entry views are open", func() {
				So(e.CanOpen(model.RoleAnonymous, "landing"), ShouldBeTrue)
				So(e.CanOpen(model.RoleAnonymous, "login"), ShouldBeTrue)
				So(e.CanOpen(model.RoleAnonymous, "signup"), ShouldBeTrue)
				So(e.CanOpen(model.RoleAnonymous, "student-home"), ShouldBeFalse)
				So(e.CanOpen(model.RoleAnonymous, "project-detail"), ShouldBeFalse)
			})
		})

		Convey("When a student asks for views", func() {
			Convey("Then student and shared views are open", func() {
				So(e.CanOpen(model.RoleStudent, "student-home"), ShouldBeTrue)
				So(e.CanOpen(model.RoleStudent, "apply-form"), ShouldBeTrue)
				So(e.CanOpen(model.RoleStudent, "project-detail"), ShouldBeTrue)
				So(e.CanOpen(model.RoleStudent, "profile"), ShouldBeTrue)
				So(e.CanOpen(model.RoleStudent, "landing"), ShouldBeTrue)
				So(e.CanOpen(model.RoleStudent, "candidate-management"), ShouldBeFalse)
				So(e.CanOpen(model.RoleStudent, "login"), ShouldBeFalse)
			})
		})

		Convey("When a professor asks for views", func() {
			Convey("Then the apply form stays closed", func() {
				So(e.CanOpen(model.RoleProfessor, "professor-home"), ShouldBeTrue)
				So(e.CanOpen(model.RoleProfessor, "candidate-management"), ShouldBeTrue)
				So(e.CanOpen(model.RoleProfessor, "apply-form"), ShouldBeFalse)
				So(e.CanOpen(model.RoleProfessor, "student-home"), ShouldBeFalse)
			})
		})

		Convey("When roles ask for catalog actions", func() {
			Convey("Then each role holds only its own", func() {
				So(e.Can(model.RoleStudent, authz.ActionApply), ShouldBeTrue)
				So(e.Can(model.RoleStudent, authz.ActionReview), ShouldBeFalse)
				So(e.Can(model.RoleStudent, authz.ActionCreate), ShouldBeFalse)
				So(e.Can(model.RoleProfessor, authz.ActionReview), ShouldBeTrue)
				So(e.Can(model.RoleProfessor, authz.ActionCreate), ShouldBeTrue)
				So(e.Can(model.RoleProfessor, authz.ActionApply), ShouldBeFalse)
				So(e.Can(model.RoleAnonymous, authz.ActionApply), ShouldBeFalse)
			})
		})

		Convey("When an unknown view is asked for", func() {
			Convey("Then it is denied for everyone", func() {
				So(e.CanOpen(model.RoleStudent, "settings"), ShouldBeFalse)
				So(e.CanOpen(model.RoleAnonymous, ""), ShouldBeFalse)
			})
		})
	})
}

func TestNewFromText(t *testing.T) {
	Convey("Given a malformed policy line", t, func() {
		_, err := authz.NewFromText(`[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`, "p, student\n")

		Convey("Then construction fails", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "line 1")
		})
	})
}
