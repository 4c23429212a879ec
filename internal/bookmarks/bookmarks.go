// Package bookmarks keeps each user's saved jobs.
package bookmarks

import (
	"context"
	"errors"
	"fmt"

	"jobmate/jobboard-service/internal/apperr"
	"jobmate/jobboard-service/internal/model"
	"jobmate/jobboard-service/internal/store"
)

// WithJob is a bookmark joined with its job.
type WithJob struct {
	model.Bookmark
	Job model.Job `json:"job"`
}

type Service struct {
	store *store.Store
}

func NewService(s *store.Store) *Service {
	return &Service{store: s}
}

// BookmarkJob saves jobID for the session user. Each (user, job) pair is
// stored at most once.
func (s *Service) BookmarkJob(ctx context.Context, sess *model.Session, jobID string) (*model.Bookmark, error) {
	if err := sess.RequireAuth(); err != nil {
		return nil, err
	}
	b, err := s.store.Bookmarks.AddUnique(ctx,
		model.Bookmark{UserID: sess.ID, JobID: jobID},
		func(b *model.Bookmark) bool { return b.UserID == sess.ID && b.JobID == jobID },
	)
	if errors.Is(err, store.ErrConflict) {
		return nil, apperr.ErrDuplicateBookmark
	}
	if err != nil {
		return nil, fmt.Errorf("bookmarkJob: %w", err)
	}
	return &b, nil
}

// RemoveBookmark deletes the session user's bookmark on jobID.
func (s *Service) RemoveBookmark(ctx context.Context, sess *model.Session, jobID string) error {
	if err := sess.RequireAuth(); err != nil {
		return err
	}
	return s.store.Update(ctx, func(d *store.Document) error {
		items := s.store.Bookmarks.Items(d)
		for i, b := range *items {
			if b.UserID == sess.ID && b.JobID == jobID {
				*items = append((*items)[:i], (*items)[i+1:]...)
				return nil
			}
		}
		return apperr.NotFound("bookmark")
	})
}

// IsBookmarked reports whether the session user has bookmarked jobID. A
// logged-out caller has no bookmarks.
func (s *Service) IsBookmarked(ctx context.Context, sess *model.Session, jobID string) (bool, error) {
	if !sess.IsAuthenticated() {
		return false, nil
	}
	found, err := s.store.Bookmarks.Find(ctx, func(b *model.Bookmark) bool {
		return b.UserID == sess.ID && b.JobID == jobID
	})
	if err != nil {
		return false, err
	}
	return len(found) > 0, nil
}

// GetBookmarkedJobs returns the session user's bookmarks joined with their
// jobs, in bookmark order. Bookmarks on deleted jobs are left out.
func (s *Service) GetBookmarkedJobs(ctx context.Context, sess *model.Session) ([]WithJob, error) {
	if err := sess.RequireAuth(); err != nil {
		return nil, err
	}
	out := []WithJob{}
	err := s.store.View(ctx, func(d *store.Document) error {
		for _, b := range d.Bookmarks {
			if b.UserID != sess.ID {
				continue
			}
			if job := s.store.Jobs.Lookup(d, b.JobID); job != nil {
				out = append(out, WithJob{Bookmark: b, Job: *job})
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("getBookmarkedJobs: %w", err)
	}
	return out, nil
}
