package smoke

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/okian/nora/internal/domain/model"
)

// step is one request with its expected outcome.
type step struct {
	name   string
	method string
	path   string
	body   any
	status int
	check  func(response) error
}

type viewBody struct {
	View       string `json:"view"`
	Renderer   string `json:"renderer"`
	Redirected bool   `json:"redirected"`
}

const (
	studentName   = "Smoke Student"
	professorName = "Prof. João Silva"
)

func expectView(view string) func(response) error {
	return func(r response) error {
		var v viewBody
		if err := r.decode(&v); err != nil {
			return err
		}
		if v.View != view {
			return fmt.Errorf("expected view %s, got %s", view, v.View)
		}
		return nil
	}
}

func expectProjectIDs(ids ...string) func(response) error {
	return func(r response) error {
		var projects []model.Project
		if err := r.decode(&projects); err != nil {
			return err
		}
		if len(projects) != len(ids) {
			return fmt.Errorf("expected %d projects, got %d", len(ids), len(projects))
		}
		for i, id := range ids {
			if projects[i].ID != id {
				return fmt.Errorf("position %d: expected project %s, got %s", i, id, projects[i].ID)
			}
		}
		return nil
	}
}

func expectRoster(candidate string, status model.Status) func(response) error {
	return func(r response) error {
		var roster []model.Application
		if err := r.decode(&roster); err != nil {
			return err
		}
		found := 0
		for _, a := range roster {
			if a.CandidateRef != candidate {
				continue
			}
			found++
			if a.Status != status {
				return fmt.Errorf("expected %s to be %s, got %s", candidate, status, a.Status)
			}
		}
		if found != 1 {
			return fmt.Errorf("expected one record for %s, got %d", candidate, found)
		}
		return nil
	}
}

// scenario walks the demo catalog end to end. It expects a server started
// with the seeded catalog.
func scenario(cfg *Config) []step {
	q := "?mobile=" + strconv.FormatBool(cfg.Mobile)
	studentRef := model.NewActorID(model.RoleStudent, studentName)
	studentApp := "/projects/1/applications/" + url.PathEscape(studentRef)

	return []step{
		{name: "health", method: http.MethodGet, path: "/healthz", status: http.StatusOK},
		{name: "logout to start clean", method: http.MethodPost, path: "/logout" + q, status: http.StatusOK, check: expectView("landing")},
		{name: "unknown view lands on landing", method: http.MethodPost, path: "/navigate" + q, body: map[string]string{"view": "nowhere"}, status: http.StatusOK, check: expectView("landing")},
		{name: "student login", method: http.MethodPost, path: "/login" + q, status: http.StatusOK, check: expectView("student-home"),
			body: map[string]any{"role": "student", "profile": map[string]string{"display_name": studentName, "institution": "USP"}}},
		{name: "USP student sees restricted USP projects", method: http.MethodGet, path: "/projects", status: http.StatusOK, check: expectProjectIDs("1", "2", "3", "4")},
		{name: "text filter keeps catalog order", method: http.MethodGet, path: "/projects?text=cardio", status: http.StatusOK, check: expectProjectIDs("1")},
		{name: "open apply form", method: http.MethodPost, path: "/navigate" + q, body: map[string]string{"view": "apply-form", "project_id": "1"}, status: http.StatusOK, check: expectView("apply-form")},
		{name: "first application", method: http.MethodPost, path: "/projects/1/applications", body: model.Candidate{Name: studentName, Course: "Medicina"}, status: http.StatusCreated},
		{name: "duplicate application", method: http.MethodPost, path: "/projects/1/applications", body: model.Candidate{Name: studentName}, status: http.StatusConflict},
		{name: "professor login", method: http.MethodPost, path: "/login" + q, status: http.StatusOK, check: expectView("professor-home"),
			body: map[string]any{"role": "professor", "profile": map[string]string{"display_name": professorName, "institution": "USP - Cardiologia"}}},
		{name: "professor is redirected from apply form", method: http.MethodPost, path: "/navigate" + q, body: map[string]string{"view": "apply-form", "project_id": "1"}, status: http.StatusOK, check: expectView("professor-home")},
		{name: "accept", method: http.MethodPut, path: studentApp, body: map[string]string{"status": "accepted"}, status: http.StatusOK},
		{name: "back to pending", method: http.MethodPut, path: studentApp, body: map[string]string{"status": "pending"}, status: http.StatusOK},
		{name: "roster reflects pending", method: http.MethodGet, path: "/projects/1/applications", status: http.StatusOK, check: expectRoster(studentRef, model.StatusPending)},
	}
}

// burst submits the same application concurrently and expects exactly one
// to be accepted. It logs in a fresh student first.
func burst(ctx context.Context, c *httpClient, cfg *Config) error {
	name := "Burst Student"
	login := map[string]any{"role": "student", "profile": map[string]string{"display_name": name, "institution": "UNICAMP"}}
	if r, err := c.do(ctx, http.MethodPost, "/login", login); err != nil || r.Status != http.StatusOK {
		return fmt.Errorf("burst login failed: %v (status %d)", err, r.Status)
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		errs    []error
	)
	for i := 0; i < cfg.Parallel; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := c.do(ctx, http.MethodPost, "/projects/2/applications", model.Candidate{Name: name})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				errs = append(errs, err)
			case r.Status == http.StatusCreated:
				created++
			case r.Status != http.StatusConflict:
				errs = append(errs, fmt.Errorf("unexpected status %d", r.Status))
			}
		}()
	}
	wg.Wait()

	if len(errs) > 0 {
		return errs[0]
	}
	if created != 1 {
		return fmt.Errorf("expected exactly one accepted submission, got %d", created)
	}
	return nil
}
