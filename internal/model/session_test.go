package model_test

import (
	"errors"
	"strings"
	"testing"

	"jobmate/jobboard-service/internal/apperr"
	"jobmate/jobboard-service/internal/model"
)

func TestNewSession_StripsPassword(t *testing.T) {
	u := model.User{Meta: model.Meta{ID: "u1"}, Type: model.UserEmployer, Email: "hr@techcorp.com", Password: "password123"}
	s := model.NewSession(u)
	if s.Password != "" {
		t.Errorf("session password = %q, want empty", s.Password)
	}
	if u.Password != "password123" {
		t.Error("NewSession must not modify the source user")
	}
}

func TestSession_Predicates(t *testing.T) {
	cases := []struct {
		typ                     model.UserType
		admin, employer, seeker bool
	}{
		{model.UserAdmin, true, false, false},
		{model.UserEmployer, false, true, false},
		{model.UserJobSeeker, false, false, true},
	}
	for _, c := range cases {
		s := model.NewSession(model.User{Meta: model.Meta{ID: "x"}, Type: c.typ})
		if s.IsAdmin() != c.admin || s.IsEmployer() != c.employer || s.IsJobSeeker() != c.seeker {
			t.Errorf("%s: got admin=%v employer=%v seeker=%v", c.typ, s.IsAdmin(), s.IsEmployer(), s.IsJobSeeker())
		}
	}
}

func TestSession_NilIsLoggedOut(t *testing.T) {
	var s *model.Session
	if s.IsAuthenticated() || s.IsAdmin() || s.IsEmployer() || s.IsJobSeeker() {
		t.Error("nil session must not satisfy any predicate")
	}
	if s.UserID() != "" {
		t.Errorf("nil session UserID = %q", s.UserID())
	}
	if err := s.RequireAuth(); !errors.Is(err, apperr.ErrNotAuthenticated) {
		t.Errorf("RequireAuth = %v, want NotAuthenticated", err)
	}
	if s.CanManage("anything") {
		t.Error("nil session must not manage resources")
	}
}

func TestSession_RequireType(t *testing.T) {
	s := model.NewSession(model.User{Meta: model.Meta{ID: "u1"}, Type: model.UserJobSeeker})
	if err := s.RequireType(model.UserJobSeeker); err != nil {
		t.Errorf("RequireType(job_seeker) = %v", err)
	}
	if err := s.RequireType(model.UserEmployer); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("RequireType(employer) = %v, want Unauthorized", err)
	}
}

func TestSession_CanManage(t *testing.T) {
	owner := model.NewSession(model.User{Meta: model.Meta{ID: "emp1"}, Type: model.UserEmployer})
	other := model.NewSession(model.User{Meta: model.Meta{ID: "emp2"}, Type: model.UserEmployer})
	admin := model.NewSession(model.User{Meta: model.Meta{ID: "adm"}, Type: model.UserAdmin})

	if !owner.CanManage("emp1") {
		t.Error("owner should manage own resource")
	}
	if other.CanManage("emp1") {
		t.Error("non-owner employer must not manage")
	}
	if !admin.CanManage("emp1") {
		t.Error("admin should manage any resource")
	}
}

func TestJobPatch_Apply(t *testing.T) {
	j := model.Job{Meta: model.Meta{ID: "job1"}, EmployerID: "emp1", Title: "Old", Views: 4, Skills: []string{"Go"}}
	title := "New"
	remote := true
	skills := []string{"Go", "SQL"}
	model.JobPatch{Title: &title, Remote: &remote, Skills: &skills}.Apply(&j)

	if j.Title != "New" || !j.Remote || len(j.Skills) != 2 {
		t.Errorf("patch not applied: %+v", j)
	}
	if j.EmployerID != "emp1" || j.Views != 4 {
		t.Errorf("patch touched protected fields: %+v", j)
	}
	skills[0] = "mutated"
	if j.Skills[0] != "Go" {
		t.Error("patched skills must not alias the caller's slice")
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := model.NormalizeEmail("  John.DOE@Example.COM  "); got != "john.doe@example.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}

func TestValidate(t *testing.T) {
	err := model.Validate("user", model.User{Type: "recruiter", Email: "nope"})
	if apperr.KindOf(err) != apperr.KindInvalid {
		t.Fatalf("Validate = %v, want Invalid", err)
	}
	for _, field := range []string{"type", "email", "password"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("message %q does not mention %s", err.Error(), field)
		}
	}

	if err := model.Validate("job", model.Job{Title: "Go Developer"}); err != nil {
		t.Errorf("Validate(valid job) = %v", err)
	}
}
