package search

import (
	"strings"

	"jobmate/jobboard-service/internal/model"
)

// ContainsExcludedTerm returns true if any excluded term appears
// (case-insensitive) anywhere in the job's title, industry or description.
// Blank terms are ignored.
func ContainsExcludedTerm(job model.Job, terms []string) bool {
	if len(terms) == 0 {
		return false
	}
	combined := strings.ToLower(job.Title + " " + job.Industry + " " + job.Description)
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		if strings.Contains(combined, strings.ToLower(term)) {
			return true
		}
	}
	return false
}
