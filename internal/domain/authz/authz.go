// Package authz holds the role policy: which views each role may open and
// which catalog actions it may perform.
package authz

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v3"
	casbinmodel "github.com/casbin/casbin/v3/model"

	"github.com/okian/nora/internal/domain/model"
)

//go:embed model.conf
var modelConf string

//go:embed policy.csv
var policyCSV string

// Action is a mutation on the project catalog.
type Action string

// Catalog actions.
const (
	ActionApply  Action = "apply"
	ActionReview Action = "review"
	ActionCreate Action = "create"
)

const (
	actOpen       = "open"
	objectProject = "project"
)

// Enforcer answers role questions against the embedded policy.
type Enforcer struct {
	enforcer *casbin.Enforcer
}

// New builds an Enforcer from the embedded model and policy.
func New() (*Enforcer, error) {
	return NewFromText(modelConf, policyCSV)
}

// NewFromText builds an Enforcer from a casbin model and a CSV policy.
func NewFromText(modelText, policyText string) (*Enforcer, error) {
	m, err := casbinmodel.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("authz: model: %w", err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("authz: enforcer: %w", err)
	}

	policies, groupings, err := parsePolicy(policyText)
	if err != nil {
		return nil, err
	}
	if len(policies) > 0 {
		if _, err := e.AddPolicies(policies); err != nil {
			return nil, fmt.Errorf("authz: policies: %w", err)
		}
	}
	if len(groupings) > 0 {
		if _, err := e.AddGroupingPolicies(groupings); err != nil {
			return nil, fmt.Errorf("authz: groupings: %w", err)
		}
	}
	return &Enforcer{enforcer: e}, nil
}

// parsePolicy splits casbin CSV lines into p and g rules.
func parsePolicy(text string) (policies, groupings [][]string, err error) {
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ",")
		for j := range fields {
			fields[j] = strings.TrimSpace(fields[j])
		}
		switch {
		case fields[0] == "p" && len(fields) == 4:
			policies = append(policies, fields[1:])
		case fields[0] == "g" && len(fields) == 3:
			groupings = append(groupings, fields[1:])
		default:
			return nil, nil, fmt.Errorf("authz: policy line %d: malformed %q", i+1, line)
		}
	}
	return policies, groupings, nil
}

// CanOpen reports whether role may open view. Enforcement errors deny.
func (a *Enforcer) CanOpen(role model.Role, view string) bool {
	ok, err := a.enforcer.Enforce(string(role), view, actOpen)
	return err == nil && ok
}

// Can reports whether role may perform action on the catalog. Enforcement errors deny.
func (a *Enforcer) Can(role model.Role, action Action) bool {
	ok, err := a.enforcer.Enforce(string(role), objectProject, string(action))
	return err == nil && ok
}
