package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"jobmate/jobboard-service/internal/apperr"
	"jobmate/jobboard-service/internal/auth"
	"jobmate/jobboard-service/internal/model"
	"jobmate/jobboard-service/internal/store"
)

func newService(t *testing.T) (*auth.Service, *store.Store) {
	t.Helper()
	s := store.New(store.NewMemoryBackend())
	if _, err := s.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return auth.NewService(s), s
}

func TestRegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	svc, s := newService(t)

	users := []model.User{
		{Type: model.UserJobSeeker, Email: "john@example.com", Password: "password123", Name: "John Doe", Skills: []string{"Go"}},
		{Type: model.UserEmployer, Email: "hr@techcorp.com", Password: "password123", CompanyName: "Tech Corp"},
		{Type: model.UserAdmin, Email: "admin@jobportal.com", Password: "admin123", Name: "Admin User"},
	}
	for _, u := range users {
		created, err := svc.Register(ctx, u)
		if err != nil {
			t.Fatalf("Register(%s): %v", u.Email, err)
		}
		if created.ID == "" || created.Password != "" {
			t.Errorf("Register(%s) returned %+v", u.Email, created)
		}

		sess, err := svc.Login(ctx, u.Email, u.Password)
		if err != nil {
			t.Fatalf("Login(%s): %v", u.Email, err)
		}
		if sess.Password != "" {
			t.Errorf("session for %s carries a password", u.Email)
		}
		data, _ := json.Marshal(sess)
		if strings.Contains(string(data), "password") {
			t.Errorf("serialized session has a password field: %s", data)
		}
		if sess.Type != u.Type || sess.ID != created.ID {
			t.Errorf("session = %+v", sess.User)
		}

		current, err := svc.Current(ctx)
		if err != nil || current == nil || current.ID != created.ID {
			t.Errorf("Current = (%+v, %v)", current, err)
		}
	}

	stored, _ := s.Users.All(ctx)
	if stored[0].Password != "password123" {
		t.Error("stored user lost its password")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, s := newService(t)

	u := model.User{Type: model.UserJobSeeker, Email: "john@example.com", Password: "a"}
	if _, err := svc.Register(ctx, u); err != nil {
		t.Fatalf("Register: %v", err)
	}
	u.Email = "  John@Example.com "
	if _, err := svc.Register(ctx, u); !errors.Is(err, apperr.ErrDuplicateEmail) {
		t.Errorf("second Register = %v, want DuplicateEmail", err)
	}
	if n, _ := s.Users.Count(ctx); n != 1 {
		t.Errorf("users = %d, want 1", n)
	}
}

func TestRegister_Invalid(t *testing.T) {
	svc, s := newService(t)
	cases := []model.User{
		{Type: model.UserJobSeeker, Email: "not-an-email", Password: "x"},
		{Type: model.UserJobSeeker, Email: "a@b.com"},
		{Type: "recruiter", Email: "a@b.com", Password: "x"},
		{Email: "a@b.com", Password: "x"},
	}
	for _, u := range cases {
		_, err := svc.Register(context.Background(), u)
		if apperr.KindOf(err) != apperr.KindInvalid {
			t.Errorf("Register(%+v) = %v, want Invalid", u, err)
		}
	}
	if n, _ := s.Users.Count(context.Background()); n != 0 {
		t.Errorf("invalid registrations stored %d users", n)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	svc.Register(ctx, model.User{Type: model.UserJobSeeker, Email: "john@example.com", Password: "password123"})

	cases := []struct{ email, password string }{
		{"john@example.com", "wrong"},
		{"nobody@example.com", "password123"},
		{"john@example.com", ""},
	}
	for _, c := range cases {
		if _, err := svc.Login(ctx, c.email, c.password); !errors.Is(err, apperr.ErrInvalidCredentials) {
			t.Errorf("Login(%q, %q) = %v, want InvalidCredentials", c.email, c.password, err)
		}
	}
	if sess, _ := svc.Current(ctx); sess != nil {
		t.Error("failed logins must not set a session")
	}

	if _, err := svc.Login(ctx, " JOHN@example.com", "password123"); err != nil {
		t.Errorf("Login with unnormalized email = %v", err)
	}
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	svc.Register(ctx, model.User{Type: model.UserEmployer, Email: "hr@techcorp.com", Password: "pw"})
	if _, err := svc.Login(ctx, "hr@techcorp.com", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	sess, err := svc.Current(ctx)
	if err != nil || sess != nil {
		t.Errorf("Current after logout = (%+v, %v)", sess, err)
	}
	if sess.IsAuthenticated() {
		t.Error("nil session reports authenticated")
	}
}
