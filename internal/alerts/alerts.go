// Package alerts stores per-user search alerts and checks them against the
// live jobs on demand.
package alerts

import (
	"context"
	"errors"
	"fmt"

	"jobmate/jobboard-service/internal/apperr"
	"jobmate/jobboard-service/internal/model"
	"jobmate/jobboard-service/internal/store"
)

// Searcher runs a job search. *search.Service satisfies it.
type Searcher interface {
	SearchJobs(ctx context.Context, query string, c model.Criteria) ([]model.Job, error)
}

// Match pairs an alert with one job it currently matches.
type Match struct {
	Alert model.Alert `json:"alert"`
	Job   model.Job   `json:"job"`
}

type Service struct {
	store  *store.Store
	search Searcher
}

func NewService(s *store.Store, searcher Searcher) *Service {
	return &Service{store: s, search: searcher}
}

// CreateAlert stores an active alert on a snapshot of c.
func (s *Service) CreateAlert(ctx context.Context, sess *model.Session, c model.Criteria) (*model.Alert, error) {
	if err := sess.RequireAuth(); err != nil {
		return nil, err
	}
	a, err := s.store.Alerts.Add(ctx, model.Alert{UserID: sess.ID, Criteria: c.Clone(), Active: true})
	if err != nil {
		return nil, fmt.Errorf("createAlert: %w", err)
	}
	return &a, nil
}

// GetUserAlerts returns the session user's active alerts.
func (s *Service) GetUserAlerts(ctx context.Context, sess *model.Session) ([]model.Alert, error) {
	if err := sess.RequireAuth(); err != nil {
		return nil, err
	}
	return s.store.Alerts.Find(ctx, func(a *model.Alert) bool {
		return a.UserID == sess.ID && a.Active
	})
}

// DeactivateAlert stops an alert from matching without deleting it.
func (s *Service) DeactivateAlert(ctx context.Context, sess *model.Session, id string) error {
	if _, err := s.owned(ctx, sess, id); err != nil {
		return err
	}
	_, err := s.store.Alerts.Update(ctx, id, func(a *model.Alert) { a.Active = false })
	if errors.Is(err, store.ErrRecordNotFound) {
		return apperr.NotFound("alert")
	}
	return err
}

// DeleteAlert removes one of the session user's alerts.
func (s *Service) DeleteAlert(ctx context.Context, sess *model.Session, id string) error {
	if _, err := s.owned(ctx, sess, id); err != nil {
		return err
	}
	return s.store.Alerts.Delete(ctx, id)
}

func (s *Service) owned(ctx context.Context, sess *model.Session, id string) (*model.Alert, error) {
	if err := sess.RequireAuth(); err != nil {
		return nil, err
	}
	a, err := s.store.Alerts.Get(ctx, id)
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil, apperr.NotFound("alert")
	}
	if err != nil {
		return nil, err
	}
	if a.UserID != sess.ID {
		return nil, apperr.ErrUnauthorized
	}
	return &a, nil
}

// CheckAlerts runs each of the session user's active alerts through the
// search and returns one Match per (alert, job) hit, in alert order.
func (s *Service) CheckAlerts(ctx context.Context, sess *model.Session) ([]Match, error) {
	alerts, err := s.GetUserAlerts(ctx, sess)
	if err != nil {
		return nil, err
	}
	return s.check(ctx, alerts)
}

// CheckAllAlerts is CheckAlerts over every user's active alerts.
func (s *Service) CheckAllAlerts(ctx context.Context) ([]Match, error) {
	alerts, err := s.store.Alerts.Find(ctx, func(a *model.Alert) bool { return a.Active })
	if err != nil {
		return nil, fmt.Errorf("checkAllAlerts: %w", err)
	}
	return s.check(ctx, alerts)
}

func (s *Service) check(ctx context.Context, alerts []model.Alert) ([]Match, error) {
	matches := []Match{}
	for _, a := range alerts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		jobs, err := s.search.SearchJobs(ctx, a.Criteria.Query, a.Criteria)
		if err != nil {
			return nil, fmt.Errorf("check alert %s: %w", a.ID, err)
		}
		for _, j := range jobs {
			matches = append(matches, Match{Alert: a, Job: j})
		}
	}
	return matches, nil
}
