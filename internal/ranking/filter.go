package ranking

import (
	"strconv"
	"strings"

	"github.com/jonathan/job-portal/internal/types"
)

// SalaryRanges are the salary buckets offered by the jobs page.
var SalaryRanges = []string{
	"0-50000",
	"50000-100000",
	"100000-150000",
	"150000-200000",
	"200000-999999",
}

// Criteria are the user-selected filters applied before ranking.
// Zero values disable the corresponding filter.
type Criteria struct {
	Search      string `json:"search,omitempty"`
	JobType     string `json:"jobType,omitempty"`
	Location    string `json:"location,omitempty"`
	SalaryRange string `json:"salaryRange,omitempty"`
}

// SalaryRange is an inclusive salary interval.
type SalaryRange struct {
	Min int
	Max int
}

// Contains reports whether salary falls within the range.
func (r SalaryRange) Contains(salary int) bool {
	return salary >= r.Min && salary <= r.Max
}

// ParseSalaryRange parses a "min-max" range. ok is false when either bound is
// not a number.
func ParseSalaryRange(s string) (r SalaryRange, ok bool) {
	lo, hi, found := strings.Cut(strings.TrimSpace(s), "-")
	if !found {
		return SalaryRange{}, false
	}
	minVal, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return SalaryRange{}, false
	}
	maxVal, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return SalaryRange{}, false
	}
	return SalaryRange{Min: minVal, Max: maxVal}, true
}

// Filter returns the jobs that satisfy every active criterion.
// A salary range that does not parse matches nothing.
func Filter(jobs []types.JobPosting, c Criteria) []types.JobPosting {
	search := strings.ToLower(c.Search)
	location := strings.ToLower(c.Location)

	var salary SalaryRange
	if c.SalaryRange != "" {
		var ok bool
		salary, ok = ParseSalaryRange(c.SalaryRange)
		if !ok {
			return []types.JobPosting{}
		}
	}

	out := make([]types.JobPosting, 0, len(jobs))
	for _, job := range jobs {
		if search != "" &&
			!strings.Contains(strings.ToLower(job.Title), search) &&
			!strings.Contains(strings.ToLower(job.Company), search) &&
			!strings.Contains(strings.ToLower(job.Location), search) {
			continue
		}
		if c.JobType != "" && job.JobType != c.JobType {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(job.Location), location) {
			continue
		}
		if c.SalaryRange != "" && !salary.Contains(job.Salary) {
			continue
		}
		out = append(out, job)
	}
	return out
}
