package visibility

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/nora/internal/domain/model"
)

func catalog() []model.Project {
	return []model.Project{
		{ID: "1", Title: "Pesquisa em Doenças Cardiovasculares", Description: "Estudo sobre fatores de risco de doenças cardíacas", Institution: "USP - Cardiologia", Visibility: model.InstitutionOnly},
		{ID: "2", Title: "Neurociência e Neuroplasticidade", Description: "Pesquisa sobre plasticidade cerebral", Institution: "UNICAMP - Neurologia", Visibility: model.AllInstitutions},
		{ID: "3", Title: "Cardiologia Pediátrica", Description: "Análise de resultados em cuidados pediátricos", Institution: "UFRJ - Pediatria", Visibility: model.AllInstitutions},
		{ID: "4", Title: "Estudos Avançados em Bioquímica", Description: "Interações moleculares em processos celulares", Institution: "USP - Cardiologia", Visibility: model.InstitutionOnly},
	}
}

func viewer(institution string) model.Session {
	return model.Session{Role: model.RoleStudent, Profile: model.Profile{DisplayName: "Ana", Institution: institution}}
}

func ids(ps []model.Project) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestInstitutionToken(t *testing.T) {
	Convey("Given institution strings", t, func() {
		So(InstitutionToken("USP - Cardiologia"), ShouldEqual, "usp")
		So(InstitutionToken("  UNICAMP "), ShouldEqual, "unicamp")
		So(InstitutionToken("UFRJ-Pediatria"), ShouldEqual, "ufrj-pediatria")
		So(InstitutionToken(""), ShouldEqual, "")
	})
}

func TestVisible(t *testing.T) {
	restricted := model.Project{Institution: "USP - Cardiologia", Visibility: model.InstitutionOnly}

	Convey("Given an institution-only project", t, func() {
		Convey("When the viewer shares the institution prefix", func() {
			So(Visible(restricted, "USP"), ShouldBeTrue)
			So(Visible(restricted, "usp - Pediatria"), ShouldBeTrue)
		})

		Convey("When the viewer is from another institution", func() {
			So(Visible(restricted, "UFRJ"), ShouldBeFalse)
		})

		Convey("When the viewer token contains the project token", func() {
			So(Visible(model.Project{Institution: "USP", Visibility: model.InstitutionOnly}, "USP Ribeirão"), ShouldBeTrue)
		})

		Convey("When the viewer has no institution", func() {
			So(Visible(restricted, ""), ShouldBeFalse)
			So(Visible(model.Project{Visibility: model.InstitutionOnly}, ""), ShouldBeTrue)
		})
	})

	Convey("Given a project open to all institutions", t, func() {
		open := model.Project{Institution: "USP - Cardiologia", Visibility: model.AllInstitutions}

		Convey("Then every viewer passes the gate", func() {
			for _, inst := range []string{"", "USP", "UFRJ", "anything"} {
				So(Visible(open, inst), ShouldBeTrue)
			}
		})
	})
}

func TestMatches(t *testing.T) {
	p := catalog()[0]

	Convey("Given a project and criteria", t, func() {
		So(Matches(p, Criteria{}), ShouldBeTrue)
		So(Matches(p, Criteria{Text: "CARDIO"}), ShouldBeTrue)
		So(Matches(p, Criteria{Text: "neuro"}), ShouldBeFalse)
		So(Matches(p, Criteria{Institution: "usp"}), ShouldBeTrue)
		So(Matches(p, Criteria{ResearchArea: "risco"}), ShouldBeTrue)
		So(Matches(p, Criteria{Mode: "institution"}), ShouldBeTrue)
		So(Matches(p, Criteria{Mode: "all-students"}), ShouldBeFalse)
		So(Matches(p, Criteria{Text: "cardio", Institution: "unicamp"}), ShouldBeFalse)
	})
}

func TestResolveVisible(t *testing.T) {
	Convey("Given the demo catalog", t, func() {
		Convey("When a USP student filters by cardio", func() {
			got := ResolveVisible(catalog(), viewer("USP"), Criteria{Text: "cardio"})

			Convey("Then matching titles remain in catalog order", func() {
				So(ids(got), ShouldResemble, []string{"1", "3"})
			})
		})

		Convey("When a UFRJ student browses without filters", func() {
			got := ResolveVisible(catalog(), viewer("UFRJ - Pediatria"), Criteria{})

			Convey("Then restricted USP projects are hidden", func() {
				So(ids(got), ShouldResemble, []string{"2", "3"})
			})
		})

		Convey("When the viewer has no institution", func() {
			got := ResolveVisible(catalog(), viewer(""), Criteria{})

			Convey("Then only open projects are visible", func() {
				So(ids(got), ShouldResemble, []string{"2", "3"})
			})
		})

		Convey("When criteria are combined in any order", func() {
			a := ResolveVisible(catalog(), viewer("USP"), Criteria{Text: "e", Mode: "all"})
			b := ResolveVisible(ResolveVisible(catalog(), viewer("USP"), Criteria{Mode: "all"}), viewer("USP"), Criteria{Text: "e"})
			c := ResolveVisible(ResolveVisible(catalog(), viewer("USP"), Criteria{Text: "e"}), viewer("USP"), Criteria{Mode: "all"})

			Convey("Then the result is the same", func() {
				So(ids(a), ShouldResemble, ids(b))
				So(ids(a), ShouldResemble, ids(c))
				So(ids(a), ShouldResemble, []string{"2", "3"})
			})
		})

		Convey("When nothing matches", func() {
			got := ResolveVisible(catalog(), viewer("USP"), Criteria{Text: "astrofísica"})

			Convey("Then the result is empty but not nil", func() {
				So(got, ShouldNotBeNil)
				So(got, ShouldBeEmpty)
			})
		})
	})

	Convey("Given an empty catalog", t, func() {
		got := ResolveVisible(nil, viewer("USP"), Criteria{Text: "x"})

		Convey("Then the result is empty", func() {
			So(got, ShouldNotBeNil)
			So(got, ShouldBeEmpty)
		})
	})
}
