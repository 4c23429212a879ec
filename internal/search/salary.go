package search

import (
	"regexp"
	"strconv"
)

// salaryPattern captures the first figure of a free-text salary, allowing
// one thousands separator: "$120,000" yields ("120", "000").
var salaryPattern = regexp.MustCompile(`\$?(\d+),?(\d+)?`)

// ParseSalary extracts the first figure from free-text salary. Only the
// first separator is honoured, so "$1,200,000" parses as 1200 and "$120k"
// as 120. ok is false when salary holds no digits.
func ParseSalary(salary string) (amount int, ok bool) {
	m := salaryPattern.FindStringSubmatch(salary)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1] + m[2])
	if err != nil {
		return 0, false
	}
	return n, true
}
