// Package search implements the free-text and filter job search, the skill
// synonym matcher behind it, and per-user saved searches.
package search

import "strings"

// synonymGroup is one entry of the skill synonym table: a canonical term and
// its alternate spellings.
type synonymGroup struct {
	key      string
	synonyms []string
}

// skillSynonyms is fixed. Order matters only for evaluation order, not for
// the result.
var skillSynonyms = []synonymGroup{
	{"javascript", []string{"js", "ecmascript", "node.js", "nodejs"}},
	{"react", []string{"reactjs", "react.js"}},
	{"python", []string{"py"}},
	{"node.js", []string{"nodejs", "node"}},
	{"ui/ux", []string{"ui", "ux", "user interface", "user experience"}},
	{"frontend", []string{"front-end", "front end"}},
	{"backend", []string{"back-end", "back end"}},
}

// contains reports whether term is the group key or one of its synonyms.
func (g synonymGroup) contains(term string) bool {
	if term == g.key {
		return true
	}
	for _, s := range g.synonyms {
		if s == term {
			return true
		}
	}
	return false
}

// NormalizeTerm lower-cases and trims a search term or skill.
func NormalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// MatchesSkill reports whether term matches any of skills.
//
// Both sides are normalized. A skill matches directly when either string
// contains the other. Otherwise, for each synonym group the term belongs to,
// a skill matches when it contains the group key (or the key contains it),
// or when the skill itself is the key or one of the group's synonyms.
// Groups are never chained: "node" reaches "node.js" skills but not
// "javascript" ones.
func MatchesSkill(term string, skills []string) bool {
	t := NormalizeTerm(term)
	normalized := make([]string, len(skills))
	for i, s := range skills {
		normalized[i] = NormalizeTerm(s)
	}

	for _, s := range normalized {
		if strings.Contains(s, t) || strings.Contains(t, s) {
			return true
		}
	}

	for _, g := range skillSynonyms {
		if !g.contains(t) {
			continue
		}
		for _, s := range normalized {
			if strings.Contains(s, g.key) || strings.Contains(g.key, s) {
				return true
			}
			if g.contains(s) {
				return true
			}
		}
	}
	return false
}
