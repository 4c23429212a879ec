// Package applications links job seekers to jobs and tracks each
// application's status.
package applications

import (
	"context"
	"fmt"
	"slices"

	"jobmate/jobboard-service/internal/apperr"
	"jobmate/jobboard-service/internal/events"
	"jobmate/jobboard-service/internal/model"
	"jobmate/jobboard-service/internal/store"
)

// WithJob is an application joined with the job it targets.
type WithJob struct {
	model.Application
	Job model.Job `json:"job"`
}

// WithSeeker is an application joined with the applicant's public profile.
type WithSeeker struct {
	model.Application
	JobSeeker model.User `json:"jobSeeker"`
}

// Service encapsulates application logic.
type Service struct {
	store *store.Store
	pub   events.Publisher
}

// NewService returns a configured Service. A nil pub drops events.
func NewService(s *store.Store, pub events.Publisher) *Service {
	return &Service{store: s, pub: pub}
}

// ApplyToJob records the session job seeker's application to jobID with
// status Pending and bumps the job's application counter in the same write.
func (s *Service) ApplyToJob(ctx context.Context, sess *model.Session, jobID, coverLetter string, resume *string) (*model.Application, error) {
	if err := sess.RequireType(model.UserJobSeeker); err != nil {
		return nil, err
	}

	var app model.Application
	err := s.store.Update(ctx, func(d *store.Document) error {
		job := s.store.Jobs.Lookup(d, jobID)
		if job == nil {
			return apperr.NotFound("job")
		}
		for _, a := range *s.store.Applications.Items(d) {
			if a.JobID == jobID && a.JobSeekerID == sess.ID {
				return apperr.ErrDuplicateApplication
			}
		}

		app = s.store.Applications.Insert(d, model.Application{
			JobID:       jobID,
			JobSeekerID: sess.ID,
			CoverLetter: coverLetter,
			Resume:      resume,
			Status:      model.StatusPending,
		})
		job.Applications++
		s.store.Jobs.Touch(job)
		return nil
	})
	if err != nil {
		return nil, err
	}

	events.Emit(ctx, s.pub, events.ApplicationSubmitted, map[string]any{
		"applicationId": app.ID,
		"jobId":         jobID,
		"jobSeekerId":   sess.ID,
	})
	return &app, nil
}

// GetMyApplications returns the session job seeker's applications joined
// with their jobs, newest first. Applications whose job has been deleted
// are left out.
func (s *Service) GetMyApplications(ctx context.Context, sess *model.Session) ([]WithJob, error) {
	if err := sess.RequireType(model.UserJobSeeker); err != nil {
		return nil, err
	}

	out := []WithJob{}
	err := s.store.View(ctx, func(d *store.Document) error {
		for _, a := range d.Applications {
			if a.JobSeekerID != sess.ID {
				continue
			}
			job := s.store.Jobs.Lookup(d, a.JobID)
			if job == nil {
				continue
			}
			out = append(out, WithJob{Application: a, Job: *job})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("getMyApplications: %w", err)
	}

	slices.SortStableFunc(out, func(a, b WithJob) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

// GetJobApplications returns the applications to jobID joined with each
// applicant, newest first. Only the job's employer or an admin may list
// them; applicants whose account has been deleted are left out.
func (s *Service) GetJobApplications(ctx context.Context, sess *model.Session, jobID string) ([]WithSeeker, error) {
	if err := sess.RequireAuth(); err != nil {
		return nil, err
	}

	out := []WithSeeker{}
	err := s.store.View(ctx, func(d *store.Document) error {
		job := s.store.Jobs.Lookup(d, jobID)
		if job == nil {
			return apperr.NotFound("job")
		}
		if !sess.CanManage(job.EmployerID) {
			return apperr.ErrUnauthorized
		}
		for _, a := range d.Applications {
			if a.JobID != jobID {
				continue
			}
			seeker := s.store.Users.Lookup(d, a.JobSeekerID)
			if seeker == nil {
				continue
			}
			out = append(out, WithSeeker{Application: a, JobSeeker: seeker.Public()})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(out, func(a, b WithSeeker) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

// UpdateStatus sets the status of an application to a job the session
// employer owns. Admins may update any application, including one whose
// job has been deleted. Any non-blank status is accepted and any status may
// follow any other.
func (s *Service) UpdateStatus(ctx context.Context, sess *model.Session, appID, status string) (*model.Application, error) {
	if err := sess.RequireAuth(); err != nil {
		return nil, err
	}
	next, err := model.ParseStatus(status)
	if err != nil {
		return nil, apperr.Invalid(err.Error())
	}

	var (
		updated model.Application
		prev    model.ApplicationStatus
	)
	err = s.store.Update(ctx, func(d *store.Document) error {
		app := s.store.Applications.Lookup(d, appID)
		if app == nil {
			return apperr.NotFound("application")
		}
		job := s.store.Jobs.Lookup(d, app.JobID)
		switch {
		case job == nil && !sess.IsAdmin():
			return apperr.ErrUnauthorized
		case job != nil && !sess.CanManage(job.EmployerID):
			return apperr.ErrUnauthorized
		}

		prev = app.Status
		app.Status = next
		s.store.Applications.Touch(app)
		updated = *app
		return nil
	})
	if err != nil {
		return nil, err
	}

	events.Emit(ctx, s.pub, events.ApplicationStatusChanged, map[string]any{
		"applicationId": updated.ID,
		"jobId":         updated.JobID,
		"jobSeekerId":   updated.JobSeekerID,
		"from":          string(prev),
		"to":            string(next),
	})
	return &updated, nil
}
