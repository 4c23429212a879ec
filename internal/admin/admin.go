// Package admin exposes platform-wide views and moderation actions. Every
// operation requires an admin session.
package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobmate/jobboard-service/internal/apperr"
	"jobmate/jobboard-service/internal/model"
	"jobmate/jobboard-service/internal/store"
)

// activeWindow is how recently a job must have been posted to count as active.
const activeWindow = 30 * 24 * time.Hour

// Statistics summarizes the platform.
type Statistics struct {
	TotalUsers        int `json:"totalUsers"`
	JobSeekers        int `json:"jobSeekers"`
	Employers         int `json:"employers"`
	TotalJobs         int `json:"totalJobs"`
	TotalApplications int `json:"totalApplications"`
	ActiveJobs        int `json:"activeJobs"`
}

type Service struct {
	store *store.Store
}

func NewService(s *store.Store) *Service {
	return &Service{store: s}
}

func requireAdmin(sess *model.Session) error {
	if !sess.IsAdmin() {
		return apperr.ErrUnauthorized
	}
	return nil
}

// GetAllUsers returns every account with passwords removed.
func (s *Service) GetAllUsers(ctx context.Context, sess *model.Session) ([]model.User, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	users, err := s.store.Users.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("getAllUsers: %w", err)
	}
	out := make([]model.User, len(users))
	for i, u := range users {
		out[i] = u.Public()
	}
	return out, nil
}

func (s *Service) GetAllJobs(ctx context.Context, sess *model.Session) ([]model.Job, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	return s.store.Jobs.All(ctx)
}

func (s *Service) GetAllApplications(ctx context.Context, sess *model.Session) ([]model.Application, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	return s.store.Applications.All(ctx)
}

// DeleteUser removes an account. Records referencing it are kept; readers
// skip them. Deleting a missing user is a no-op.
func (s *Service) DeleteUser(ctx context.Context, sess *model.Session, userID string) error {
	if err := requireAdmin(sess); err != nil {
		return err
	}
	if err := s.store.Users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("deleteUser: %w", err)
	}
	return nil
}

// VerifyEmployer marks an account as verified.
func (s *Service) VerifyEmployer(ctx context.Context, sess *model.Session, userID string) (*model.User, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	u, err := s.store.Users.Update(ctx, userID, func(u *model.User) { u.Verified = true })
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil, apperr.NotFound("user")
	}
	if err != nil {
		return nil, fmt.Errorf("verifyEmployer: %w", err)
	}
	pub := u.Public()
	return &pub, nil
}

// GetStatistics counts users by type, jobs, applications and the jobs
// posted within the last 30 days, all from one snapshot.
func (s *Service) GetStatistics(ctx context.Context, sess *model.Session) (*Statistics, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	var st Statistics
	now := s.store.Now()
	err := s.store.View(ctx, func(d *store.Document) error {
		st.TotalUsers = len(d.Users)
		for _, u := range d.Users {
			switch u.Type {
			case model.UserJobSeeker:
				st.JobSeekers++
			case model.UserEmployer:
				st.Employers++
			}
		}
		st.TotalJobs = len(d.Jobs)
		st.TotalApplications = len(d.Applications)
		for _, j := range d.Jobs {
			if now.Sub(j.CreatedAt) <= activeWindow {
				st.ActiveJobs++
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("getStatistics: %w", err)
	}
	return &st, nil
}
