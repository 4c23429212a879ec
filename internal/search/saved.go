package search

import (
	"context"
	"errors"
	"fmt"

	"jobmate/jobboard-service/internal/apperr"
	"jobmate/jobboard-service/internal/model"
	"jobmate/jobboard-service/internal/store"
)

// ─── Saved searches ──────────────────────────────────────────────────────────

// SaveSearch stores a snapshot of c for the session user.
func (s *Service) SaveSearch(ctx context.Context, sess *model.Session, c model.Criteria) (*model.SavedSearch, error) {
	if err := sess.RequireAuth(); err != nil {
		return nil, err
	}
	saved, err := s.store.SavedSearches.Add(ctx, model.SavedSearch{
		UserID:   sess.ID,
		Criteria: c.Clone(),
	})
	if err != nil {
		return nil, fmt.Errorf("saveSearch: %w", err)
	}
	return &saved, nil
}

// GetSavedSearches returns the session user's saved searches, oldest first.
func (s *Service) GetSavedSearches(ctx context.Context, sess *model.Session) ([]model.SavedSearch, error) {
	if err := sess.RequireAuth(); err != nil {
		return nil, err
	}
	return s.store.SavedSearches.Find(ctx, func(ss *model.SavedSearch) bool {
		return ss.UserID == sess.ID
	})
}

// DeleteSavedSearch removes one of the session user's saved searches.
func (s *Service) DeleteSavedSearch(ctx context.Context, sess *model.Session, id string) error {
	if err := sess.RequireAuth(); err != nil {
		return err
	}
	saved, err := s.store.SavedSearches.Get(ctx, id)
	if errors.Is(err, store.ErrRecordNotFound) {
		return apperr.NotFound("saved search")
	}
	if err != nil {
		return err
	}
	if saved.UserID != sess.ID {
		return apperr.ErrUnauthorized
	}
	return s.store.SavedSearches.Delete(ctx, id)
}

// RunSavedSearch runs a saved search against the current jobs.
func (s *Service) RunSavedSearch(ctx context.Context, sess *model.Session, id string) ([]model.Job, error) {
	if err := sess.RequireAuth(); err != nil {
		return nil, err
	}
	saved, err := s.store.SavedSearches.Get(ctx, id)
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil, apperr.NotFound("saved search")
	}
	if err != nil {
		return nil, err
	}
	if saved.UserID != sess.ID {
		return nil, apperr.ErrUnauthorized
	}
	return s.SearchJobs(ctx, saved.Criteria.Query, saved.Criteria)
}
