package model

import (
	"fmt"
	"strings"
)

// ApplicationStatus is an open string enum. The known values below are the
// ones the employer dashboard offers, but any non-blank value is stored as
// given and there is no transition graph: an employer may move an
// application from any status to any other.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "Pending"
	StatusReviewed ApplicationStatus = "Reviewed"
	StatusRejected ApplicationStatus = "Rejected"
	StatusAccepted ApplicationStatus = "Accepted"
)

// KnownStatuses lists the statuses offered by default, in display order.
var KnownStatuses = []ApplicationStatus{StatusPending, StatusReviewed, StatusRejected, StatusAccepted}

// ParseStatus converts a raw string to an ApplicationStatus. Surrounding
// whitespace is trimmed; only blank input is rejected.
func ParseStatus(s string) (ApplicationStatus, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("application status must not be blank")
	}
	return ApplicationStatus(s), nil
}

// IsKnown reports whether s is one of KnownStatuses.
func (s ApplicationStatus) IsKnown() bool {
	for _, k := range KnownStatuses {
		if s == k {
			return true
		}
	}
	return false
}

// IsFinal reports whether s is a decision (Accepted or Rejected). It is
// informational only; final statuses can still be changed.
func (s ApplicationStatus) IsFinal() bool {
	return s == StatusAccepted || s == StatusRejected
}
