// Package visibility resolves which catalog projects a viewer may see and
// narrows them by the catalog filters.
package visibility

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/okian/nora/internal/domain/model"
)

// institutionSeparator splits an institution from its department suffix,
// as in "USP - Cardiologia".
const institutionSeparator = " - "

// Criteria holds the optional catalog filters. Empty fields do not constrain.
type Criteria struct {
	Text         string `json:"text,omitempty"`
	Institution  string `json:"institution,omitempty"`
	ResearchArea string `json:"research_area,omitempty"`
	Mode         string `json:"mode,omitempty"`
}

// Empty reports whether no filter is set.
func (c Criteria) Empty() bool {
	return c == Criteria{}
}

// fold returns the caseless form of s. A Caser holds state, so each call
// gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

// containsFold reports whether needle occurs in haystack ignoring case.
func containsFold(haystack, needle string) bool {
	return strings.Contains(fold(haystack), fold(needle))
}

// InstitutionToken returns the comparable part of an institution string:
// the text before the department suffix, trimmed and case folded.
func InstitutionToken(institution string) string {
	head, _, _ := strings.Cut(institution, institutionSeparator)
	return fold(strings.TrimSpace(head))
}

// Visible applies the visibility gate. Projects open to all institutions
// always pass. Institution-only projects pass when either token contains the
// other; an empty viewer token only matches projects whose token is empty too.
func Visible(p model.Project, viewerInstitution string) bool {
	if p.Visibility != model.InstitutionOnly {
		return true
	}
	viewer := InstitutionToken(viewerInstitution)
	owner := InstitutionToken(p.Institution)
	if viewer == "" || owner == "" {
		return viewer == owner
	}
	return strings.Contains(owner, viewer) || strings.Contains(viewer, owner)
}

// Matches reports whether p satisfies every set criterion.
func Matches(p model.Project, c Criteria) bool {
	if c.Text != "" && !containsFold(p.Title, c.Text) {
		return false
	}
	if c.Institution != "" && !containsFold(p.Institution, c.Institution) {
		return false
	}
	if c.ResearchArea != "" && !containsFold(p.Description, c.ResearchArea) {
		return false
	}
	if c.Mode != "" && !containsFold(string(p.Visibility), c.Mode) {
		return false
	}
	return true
}

// ResolveVisible returns the projects of catalog the viewer may see that
// match c, in catalog order. The result is never nil.
func ResolveVisible(catalog []model.Project, viewer model.Session, c Criteria) []model.Project {
	out := make([]model.Project, 0, len(catalog))
	institution := viewer.Profile.Institution
	for _, p := range catalog {
		if Visible(p, institution) && Matches(p, c) {
			out = append(out, p)
		}
	}
	return out
}
