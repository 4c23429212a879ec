package search

import (
	"context"
	"fmt"
	"strings"

	"jobmate/jobboard-service/internal/model"
	"jobmate/jobboard-service/internal/store"
)

// Service runs searches against the jobs collection and manages saved
// searches.
type Service struct {
	store *store.Store
}

func NewService(s *store.Store) *Service {
	return &Service{store: s}
}

// SearchJobs returns the jobs matching query and criteria, in insertion
// order. A query set on criteria is ignored in favour of query.
func (s *Service) SearchJobs(ctx context.Context, query string, c model.Criteria) ([]model.Job, error) {
	jobs, err := s.store.Jobs.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("searchJobs: %w", err)
	}
	c.Query = query
	return Filter(jobs, c), nil
}

// Filter applies c to jobs. Every criterion is an independent AND; a zero
// criterion does not filter. It never returns nil.
func Filter(jobs []model.Job, c model.Criteria) []model.Job {
	out := make([]model.Job, 0, len(jobs))
	for _, j := range jobs {
		if Matches(j, c) {
			out = append(out, j)
		}
	}
	return out
}

// Matches reports whether a single job satisfies c.
func Matches(j model.Job, c model.Criteria) bool {
	if c.Query != "" {
		q := NormalizeTerm(c.Query)
		if !strings.Contains(searchableText(j), q) && !MatchesSkill(q, j.Skills) {
			return false
		}
	}

	if c.Location != "" && !strings.Contains(strings.ToLower(j.Location), strings.ToLower(c.Location)) {
		return false
	}
	if c.JobType != "" && j.JobType != c.JobType {
		return false
	}
	if c.ExperienceLevel != "" && j.ExperienceLevel != c.ExperienceLevel {
		return false
	}
	if c.Industry != "" && j.Industry != c.Industry {
		return false
	}
	if c.Remote != nil && j.Remote != *c.Remote {
		return false
	}

	if c.MinSalary > 0 {
		// Unparseable salaries are kept.
		if amount, ok := ParseSalary(j.Salary); ok && amount < c.MinSalary {
			return false
		}
	}

	if len(c.Skills) > 0 {
		matched := false
		for _, skill := range c.Skills {
			if MatchesSkill(skill, j.Skills) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return !ContainsExcludedTerm(j, c.Exclude)
}

func searchableText(j model.Job) string {
	parts := append([]string{j.Title, j.Description, j.Location, j.Industry}, j.Skills...)
	return strings.ToLower(strings.Join(parts, " "))
}
