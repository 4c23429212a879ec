// Package apperr defines the closed set of expected failure kinds returned by
// the jobboard services. Infrastructure failures (storage, encoding) are not
// represented here; they are wrapped with fmt.Errorf and passed through.
package apperr

import "errors"

// Kind enumerates the expected failure paths.
type Kind int

const (
	KindUnknown Kind = iota
	KindDuplicateEmail
	KindInvalidCredentials
	KindUnauthorized
	KindNotFound
	KindDuplicateApplication
	KindDuplicateBookmark
	KindNotAuthenticated
	KindInvalid
)

var kindNames = map[Kind]string{
	KindUnknown:              "Unknown",
	KindDuplicateEmail:       "DuplicateEmail",
	KindInvalidCredentials:   "InvalidCredentials",
	KindUnauthorized:         "Unauthorized",
	KindNotFound:             "NotFound",
	KindDuplicateApplication: "DuplicateApplication",
	KindDuplicateBookmark:    "DuplicateBookmark",
	KindNotAuthenticated:     "NotAuthenticated",
	KindInvalid:              "Invalid",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// Error is a user-facing failure tagged with its Kind.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// Is reports a match on Kind so that errors.Is(err, ErrNotFound) holds for
// any NotFound error regardless of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// New returns an Error of the given kind with a custom message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// KindOf extracts the Kind of err, or KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// ─── Sentinels ───────────────────────────────────────────────────────────────

var (
	ErrDuplicateEmail       = New(KindDuplicateEmail, "email already registered")
	ErrInvalidCredentials   = New(KindInvalidCredentials, "invalid email or password")
	ErrUnauthorized         = New(KindUnauthorized, "unauthorized")
	ErrNotFound             = New(KindNotFound, "not found")
	ErrDuplicateApplication = New(KindDuplicateApplication, "you have already applied to this job")
	ErrDuplicateBookmark    = New(KindDuplicateBookmark, "job already bookmarked")
	ErrNotAuthenticated     = New(KindNotAuthenticated, "not authenticated")
	ErrInvalid              = New(KindInvalid, "invalid input")
)

// NotFound returns a NotFound error naming the missing entity, e.g. "job not found".
func NotFound(entity string) *Error {
	return New(KindNotFound, entity+" not found")
}

// Invalid returns an Invalid error carrying a validation message.
func Invalid(msg string) *Error {
	return New(KindInvalid, msg)
}
