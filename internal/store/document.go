// Package store persists the jobboard as one serialized document of named
// record collections and exposes a generic per-collection accessor over it.
//
// Every mutation is a read-modify-write of the whole document. Writes are
// serialised by a mutex inside the process and guarded by a version
// compare-and-swap in the backend, so concurrent writers across processes
// lose a retry instead of an update.
package store

import (
	"encoding/json"
	"fmt"

	"jobmate/jobboard-service/internal/model"
)

// DefaultKey is the storage key the document lives under.
const DefaultKey = "jobPortalData"

// Collection names as they appear in the serialized document.
const (
	CollectionUsers         = "users"
	CollectionJobs          = "jobs"
	CollectionApplications  = "applications"
	CollectionMessages      = "messages"
	CollectionBookmarks     = "bookmarks"
	CollectionAlerts        = "alerts"
	CollectionSavedSearches = "savedSearches"
)

// Document is the whole persisted state.
type Document struct {
	Version       int64               `json:"version"`
	Users         []model.User        `json:"users"`
	Jobs          []model.Job         `json:"jobs"`
	Applications  []model.Application `json:"applications"`
	Messages      []model.Message     `json:"messages"`
	Bookmarks     []model.Bookmark    `json:"bookmarks"`
	Alerts        []model.Alert       `json:"alerts"`
	SavedSearches []model.SavedSearch `json:"savedSearches"`
	CurrentUser   *model.Session      `json:"currentUser"`
}

// NewDocument returns an empty document with every collection present.
func NewDocument() *Document {
	return &Document{
		Users:         []model.User{},
		Jobs:          []model.Job{},
		Applications:  []model.Application{},
		Messages:      []model.Message{},
		Bookmarks:     []model.Bookmark{},
		Alerts:        []model.Alert{},
		SavedSearches: []model.SavedSearch{},
	}
}

// Encode serializes doc.
func Encode(doc *Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// Decode parses a serialized document. Collections missing from data come
// back empty, never nil.
func Decode(data []byte) (*Document, error) {
	doc := NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if doc.Users == nil {
		doc.Users = []model.User{}
	}
	if doc.Jobs == nil {
		doc.Jobs = []model.Job{}
	}
	if doc.Applications == nil {
		doc.Applications = []model.Application{}
	}
	if doc.Messages == nil {
		doc.Messages = []model.Message{}
	}
	if doc.Bookmarks == nil {
		doc.Bookmarks = []model.Bookmark{}
	}
	if doc.Alerts == nil {
		doc.Alerts = []model.Alert{}
	}
	if doc.SavedSearches == nil {
		doc.SavedSearches = []model.SavedSearch{}
	}
	return doc, nil
}

// nextRevision returns the bytes to persist for doc at version+1.
func nextRevision(doc *Document) ([]byte, int64, error) {
	next := *doc
	next.Version = doc.Version + 1
	data, err := Encode(&next)
	if err != nil {
		return nil, 0, err
	}
	return data, next.Version, nil
}

// peekVersion reads only the version field of a serialized document.
func peekVersion(data []byte) (int64, error) {
	var head struct {
		Version int64 `json:"version"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return 0, fmt.Errorf("decode document version: %w", err)
	}
	return head.Version, nil
}
