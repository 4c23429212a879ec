// Package jobs manages job postings and their view counter.
package jobs

import (
	"context"
	"errors"
	"fmt"

	"jobmate/jobboard-service/internal/apperr"
	"jobmate/jobboard-service/internal/events"
	"jobmate/jobboard-service/internal/model"
	"jobmate/jobboard-service/internal/store"
)

// ─── Service ─────────────────────────────────────────────────────────────────

// Service encapsulates job posting logic.
type Service struct {
	store *store.Store
	pub   events.Publisher
}

// NewService returns a configured Service. A nil pub drops events.
func NewService(s *store.Store, pub events.Publisher) *Service {
	return &Service{store: s, pub: pub}
}

// ─── Commands ────────────────────────────────────────────────────────────────

// CreateJob posts job on behalf of the session employer. The owner is taken
// from the session and both counters start at zero.
func (s *Service) CreateJob(ctx context.Context, sess *model.Session, job model.Job) (*model.Job, error) {
	if err := sess.RequireType(model.UserEmployer); err != nil {
		return nil, err
	}
	if err := model.Validate("job", job); err != nil {
		return nil, err
	}

	job.EmployerID = sess.ID
	job.Views = 0
	job.Applications = 0
	job.Skills = append([]string{}, job.Skills...)

	created, err := s.store.Jobs.Add(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("createJob: %w", err)
	}

	events.Emit(ctx, s.pub, events.JobPosted, map[string]any{
		"jobId":      created.ID,
		"employerId": created.EmployerID,
		"title":      created.Title,
	})
	return &created, nil
}

// UpdateJob applies patch to a job owned by the session user. Admins may
// update any job.
func (s *Service) UpdateJob(ctx context.Context, sess *model.Session, id string, patch model.JobPatch) (*model.Job, error) {
	if _, err := s.authorize(ctx, sess, id); err != nil {
		return nil, err
	}
	if patch.Title != nil && *patch.Title == "" {
		return nil, apperr.Invalid("invalid job: title failed \"required\"")
	}

	updated, err := s.store.Jobs.Update(ctx, id, patch.Apply)
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil, apperr.NotFound("job")
	}
	if err != nil {
		return nil, fmt.Errorf("updateJob: %w", err)
	}
	return &updated, nil
}

// DeleteJob removes a job owned by the session user. Admins may delete any
// job. Applications and bookmarks referencing it are left in place.
func (s *Service) DeleteJob(ctx context.Context, sess *model.Session, id string) error {
	if _, err := s.authorize(ctx, sess, id); err != nil {
		return err
	}
	if err := s.store.Jobs.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleteJob: %w", err)
	}
	return nil
}

// RecordView increments the job's view counter by one and returns the job.
func (s *Service) RecordView(ctx context.Context, id string) (*model.Job, error) {
	job, err := s.store.Jobs.Update(ctx, id, func(j *model.Job) { j.Views++ })
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil, apperr.NotFound("job")
	}
	if err != nil {
		return nil, fmt.Errorf("recordView: %w", err)
	}
	return &job, nil
}

// authorize loads the job and checks the session may manage it.
func (s *Service) authorize(ctx context.Context, sess *model.Session, id string) (*model.Job, error) {
	if err := sess.RequireAuth(); err != nil {
		return nil, err
	}
	job, err := s.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sess.CanManage(job.EmployerID) {
		return nil, apperr.ErrUnauthorized
	}
	return job, nil
}

// ─── Queries ─────────────────────────────────────────────────────────────────

// GetJobByID returns the job and counts one view, so every call moves the
// counter. Use GetJob for a read without side effects.
func (s *Service) GetJobByID(ctx context.Context, id string) (*model.Job, error) {
	return s.RecordView(ctx, id)
}

// GetJob returns the job without touching its counters.
func (s *Service) GetJob(ctx context.Context, id string) (*model.Job, error) {
	job, err := s.store.Jobs.Get(ctx, id)
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil, apperr.NotFound("job")
	}
	if err != nil {
		return nil, fmt.Errorf("getJob: %w", err)
	}
	return &job, nil
}

// GetAllJobs returns every job in posting order.
func (s *Service) GetAllJobs(ctx context.Context) ([]model.Job, error) {
	return s.store.Jobs.All(ctx)
}

// GetJobsByEmployer returns the jobs posted by employerID.
func (s *Service) GetJobsByEmployer(ctx context.Context, employerID string) ([]model.Job, error) {
	return s.store.Jobs.Find(ctx, func(j *model.Job) bool { return j.EmployerID == employerID })
}

// GetEmployerInfo returns the public profile of the employer that posted a
// job.
func (s *Service) GetEmployerInfo(ctx context.Context, employerID string) (*model.User, error) {
	u, err := s.store.Users.Get(ctx, employerID)
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil, apperr.NotFound("employer")
	}
	if err != nil {
		return nil, fmt.Errorf("getEmployerInfo: %w", err)
	}
	pub := u.Public()
	return &pub, nil
}
