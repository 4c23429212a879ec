// Package model defines the records persisted in the jobboard document.
package model

import (
	"strings"
	"time"
)

// Meta is embedded by every persisted record.
type Meta struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Base exposes the embedded Meta so generic collection code can stamp ids
// and timestamps.
func (m *Meta) Base() *Meta { return m }

// UserType discriminates the three account kinds.
type UserType string

const (
	UserJobSeeker UserType = "job_seeker"
	UserEmployer  UserType = "employer"
	UserAdmin     UserType = "admin"
)

// Experience is one entry of a job seeker's work history.
type Experience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Duration    string `json:"duration"`
	Description string `json:"description,omitempty"`
}

// Education is one entry of a job seeker's education history.
type Education struct {
	Degree string `json:"degree"`
	School string `json:"school"`
	Year   string `json:"year"`
}

// User is an account. Job seekers fill the profile fields, employers the
// company fields; admins only carry a name.
type User struct {
	Meta
	Type     UserType `json:"type" validate:"required,oneof=job_seeker employer admin"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password,omitempty" validate:"required"`
	Name     string   `json:"name,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Location string   `json:"location,omitempty"`

	Skills     []string     `json:"skills,omitempty"`
	Experience []Experience `json:"experience,omitempty"`
	Education  []Education  `json:"education,omitempty"`
	Resume     *string      `json:"resume,omitempty"`

	CompanyName        string  `json:"companyName,omitempty"`
	CompanyDescription string  `json:"companyDescription,omitempty"`
	Logo               *string `json:"logo,omitempty"`
	Website            string  `json:"website,omitempty"`
	Industry           string  `json:"industry,omitempty"`
	Verified           bool    `json:"verified,omitempty"`
}

// Public returns a copy of u with the password removed.
func (u User) Public() User {
	u.Password = ""
	return u
}

// Job is a posting owned by exactly one employer. Views and Applications are
// denormalized counters maintained by the jobs and applications services.
type Job struct {
	Meta
	EmployerID      string   `json:"employerId"`
	Title           string   `json:"title" validate:"required"`
	Description     string   `json:"description"`
	Location        string   `json:"location"`
	Salary          string   `json:"salary"`
	ExperienceLevel string   `json:"experienceLevel"`
	JobType         string   `json:"jobType"`
	Industry        string   `json:"industry"`
	Skills          []string `json:"skills"`
	Remote          bool     `json:"remote"`
	Views           int      `json:"views"`
	Applications    int      `json:"applications"`
}

// JobPatch carries the fields an owner may change on a Job. Nil fields are
// left untouched; the owner and counters cannot be patched.
type JobPatch struct {
	Title           *string   `json:"title,omitempty"`
	Description     *string   `json:"description,omitempty"`
	Location        *string   `json:"location,omitempty"`
	Salary          *string   `json:"salary,omitempty"`
	ExperienceLevel *string   `json:"experienceLevel,omitempty"`
	JobType         *string   `json:"jobType,omitempty"`
	Industry        *string   `json:"industry,omitempty"`
	Skills          *[]string `json:"skills,omitempty"`
	Remote          *bool     `json:"remote,omitempty"`
}

// Apply merges the non-nil fields of p into j.
func (p JobPatch) Apply(j *Job) {
	if p.Title != nil {
		j.Title = *p.Title
	}
	if p.Description != nil {
		j.Description = *p.Description
	}
	if p.Location != nil {
		j.Location = *p.Location
	}
	if p.Salary != nil {
		j.Salary = *p.Salary
	}
	if p.ExperienceLevel != nil {
		j.ExperienceLevel = *p.ExperienceLevel
	}
	if p.JobType != nil {
		j.JobType = *p.JobType
	}
	if p.Industry != nil {
		j.Industry = *p.Industry
	}
	if p.Skills != nil {
		j.Skills = append([]string(nil), (*p.Skills)...)
	}
	if p.Remote != nil {
		j.Remote = *p.Remote
	}
}

// Application links one job seeker to one Job.
type Application struct {
	Meta
	JobID       string            `json:"jobId"`
	JobSeekerID string            `json:"jobSeekerId"`
	CoverLetter string            `json:"coverLetter"`
	Resume      *string           `json:"resume"`
	Status      ApplicationStatus `json:"status"`
}

// Message is directed from one user to another, optionally about a Job.
type Message struct {
	Meta
	FromUserID string `json:"fromUserId"`
	ToUserID   string `json:"toUserId"`
	Subject    string `json:"subject"`
	Body       string `json:"message"`
	JobID      string `json:"jobId,omitempty"`
	Read       bool   `json:"read"`
}

// Bookmark is a (user, job) pair, unique per pair.
type Bookmark struct {
	Meta
	UserID string `json:"userId"`
	JobID  string `json:"jobId"`
}

// Criteria is a search request: a free-text query plus filters. The same
// shape is snapshotted into alerts and saved searches.
type Criteria struct {
	Query           string   `json:"query,omitempty"`
	Location        string   `json:"location,omitempty"`
	JobType         string   `json:"jobType,omitempty"`
	ExperienceLevel string   `json:"experienceLevel,omitempty"`
	Industry        string   `json:"industry,omitempty"`
	Remote          *bool    `json:"remote,omitempty"`
	MinSalary       int      `json:"minSalary,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	Exclude         []string `json:"exclude,omitempty"` // red-flag terms; any hit discards the job
}

// Clone returns a deep copy of c, so a stored snapshot never aliases the
// caller's slices.
func (c Criteria) Clone() Criteria {
	c.Skills = append([]string(nil), c.Skills...)
	c.Exclude = append([]string(nil), c.Exclude...)
	if c.Remote != nil {
		r := *c.Remote
		c.Remote = &r
	}
	return c
}

// Alert is a user-owned criteria snapshot checked against live jobs on demand.
type Alert struct {
	Meta
	UserID   string   `json:"userId"`
	Criteria Criteria `json:"criteria"`
	Active   bool     `json:"active"`
}

// SavedSearch is a user-owned criteria snapshot.
type SavedSearch struct {
	Meta
	UserID   string   `json:"userId"`
	Criteria Criteria `json:"criteria"`
}

// NormalizeEmail trims and lower-cases an address for storage and comparison.
func NormalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}
