package model

import "jobmate/jobboard-service/internal/apperr"

// Session is the authenticated user's public profile. It is passed
// explicitly into every service call; a nil *Session means "logged out".
type Session struct {
	User
}

// NewSession builds a Session from u, stripping the password.
func NewSession(u User) *Session {
	return &Session{User: u.Public()}
}

// UserID returns the session user's id, or "" for a nil session.
func (s *Session) UserID() string {
	if s == nil {
		return ""
	}
	return s.ID
}

func (s *Session) IsAuthenticated() bool { return s != nil && s.ID != "" }
func (s *Session) IsAdmin() bool         { return s.is(UserAdmin) }
func (s *Session) IsEmployer() bool      { return s.is(UserEmployer) }
func (s *Session) IsJobSeeker() bool     { return s.is(UserJobSeeker) }

func (s *Session) is(t UserType) bool {
	return s.IsAuthenticated() && s.Type == t
}

// RequireAuth returns ErrNotAuthenticated for a nil or empty session.
func (s *Session) RequireAuth() error {
	if !s.IsAuthenticated() {
		return apperr.ErrNotAuthenticated
	}
	return nil
}

// RequireType is RequireAuth plus a user-type check; a session of another
// type yields ErrUnauthorized.
func (s *Session) RequireType(t UserType) error {
	if err := s.RequireAuth(); err != nil {
		return err
	}
	if s.Type != t {
		return apperr.ErrUnauthorized
	}
	return nil
}

// CanManage reports whether the session may modify a resource owned by
// ownerID: the owner themselves or any admin.
func (s *Session) CanManage(ownerID string) bool {
	if !s.IsAuthenticated() {
		return false
	}
	return s.ID == ownerID || s.IsAdmin()
}
