package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"jobmate/jobboard-service/internal/model"
)

const defaultMaxRetries = 5

// errNoChange aborts a read-modify-write cycle without saving.
var errNoChange = errors.New("no change")

// Store owns the backend and the typed collections over it.
type Store struct {
	backend    Backend
	mu         sync.Mutex
	now        func() time.Time
	newID      func() string
	maxRetries int

	Users         *Collection[model.User, *model.User]
	Jobs          *Collection[model.Job, *model.Job]
	Applications  *Collection[model.Application, *model.Application]
	Messages      *Collection[model.Message, *model.Message]
	Bookmarks     *Collection[model.Bookmark, *model.Bookmark]
	Alerts        *Collection[model.Alert, *model.Alert]
	SavedSearches *Collection[model.SavedSearch, *model.SavedSearch]
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now for createdAt/updatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the default UUIDv7 generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithMaxRetries bounds how often a cycle is retried after a version conflict.
func WithMaxRetries(n int) Option {
	return func(s *Store) { s.maxRetries = n }
}

// New returns a Store over backend. Call Init before use.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:    backend,
		now:        time.Now,
		newID:      NewID,
		maxRetries: defaultMaxRetries,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Users = newCollection[model.User](s, CollectionUsers, func(d *Document) *[]model.User { return &d.Users })
	s.Jobs = newCollection[model.Job](s, CollectionJobs, func(d *Document) *[]model.Job { return &d.Jobs })
	s.Applications = newCollection[model.Application](s, CollectionApplications, func(d *Document) *[]model.Application { return &d.Applications })
	s.Messages = newCollection[model.Message](s, CollectionMessages, func(d *Document) *[]model.Message { return &d.Messages })
	s.Bookmarks = newCollection[model.Bookmark](s, CollectionBookmarks, func(d *Document) *[]model.Bookmark { return &d.Bookmarks })
	s.Alerts = newCollection[model.Alert](s, CollectionAlerts, func(d *Document) *[]model.Alert { return &d.Alerts })
	s.SavedSearches = newCollection[model.SavedSearch](s, CollectionSavedSearches, func(d *Document) *[]model.SavedSearch { return &d.SavedSearches })
	return s
}

// NewID returns a time-ordered UUIDv7 string.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Now returns the store clock's current time in UTC.
func (s *Store) Now() time.Time { return s.now().UTC() }

// Init writes an empty document if the backend holds none. It is safe to
// call on every startup; created reports whether a document was written.
func (s *Store) Init(ctx context.Context) (created bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.backend.Load(ctx)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrNoDocument) {
		return false, fmt.Errorf("init: %w", err)
	}

	err = s.backend.Save(ctx, NewDocument())
	if errors.Is(err, ErrVersionConflict) {
		// Another process initialised it first.
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("init: %w", err)
	}
	return true, nil
}

func (s *Store) load(ctx context.Context) (*Document, error) {
	doc, err := s.backend.Load(ctx)
	if errors.Is(err, ErrNoDocument) {
		return nil, ErrNotInitialized
	}
	return doc, err
}

// View runs fn against a freshly loaded document. Changes made by fn are
// discarded.
func (s *Store) View(ctx context.Context, fn func(*Document) error) error {
	doc, err := s.load(ctx)
	if err != nil {
		return err
	}
	return fn(doc)
}

// Update runs one read-modify-write cycle: load, apply fn, save. If fn
// returns an error nothing is saved and the error is returned. A version
// conflict reruns the whole cycle, so fn must be safe to call more than once.
func (s *Store) Update(ctx context.Context, fn func(*Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for attempt := 0; ; attempt++ {
		doc, err := s.load(ctx)
		if err != nil {
			return err
		}
		if err := fn(doc); err != nil {
			if errors.Is(err, errNoChange) {
				return nil
			}
			return err
		}

		err = s.backend.Save(ctx, doc)
		if errors.Is(err, ErrVersionConflict) && attempt < s.maxRetries {
			continue
		}
		if err != nil {
			return fmt.Errorf("save document: %w", err)
		}
		return nil
	}
}

// Snapshot returns a copy of the whole document.
func (s *Store) Snapshot(ctx context.Context) (*Document, error) {
	return s.load(ctx)
}

// RawCollection returns the records of the named collection in their
// serialized form, or an empty slice when the name is unknown.
func (s *Store) RawCollection(ctx context.Context, name string) ([]json.RawMessage, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	data, err := Encode(doc)
	if err != nil {
		return nil, err
	}
	var byName map[string]json.RawMessage
	if err := json.Unmarshal(data, &byName); err != nil {
		return nil, fmt.Errorf("split document: %w", err)
	}
	out := []json.RawMessage{}
	raw, ok := byName[name]
	if !ok {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		// Not a collection (e.g. "currentUser" or "version").
		return []json.RawMessage{}, nil
	}
	return out, nil
}

// ─── Session pointer ────────────────────────────────────────────────────────

// CurrentUser returns the persisted session, or nil when logged out.
func (s *Store) CurrentUser(ctx context.Context) (*model.Session, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.CurrentUser, nil
}

// SetCurrentUser persists sess as the current session. The password is
// always stripped before writing.
func (s *Store) SetCurrentUser(ctx context.Context, sess *model.Session) error {
	var stored *model.Session
	if sess != nil {
		stored = model.NewSession(sess.User)
	}
	return s.Update(ctx, func(d *Document) error {
		d.CurrentUser = stored
		return nil
	})
}

// ClearCurrentUser resets the session pointer to null.
func (s *Store) ClearCurrentUser(ctx context.Context) error {
	return s.SetCurrentUser(ctx, nil)
}
