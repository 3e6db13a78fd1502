package ranking

import (
	"time"

	"github.com/jonathan/job-portal/internal/types"
)

// Window is a named look-back period in days.
type Window struct {
	Name string
	Days int
}

// Standard windows shown on the jobs page.
var (
	Weekly  = Window{Name: "weekly", Days: 7}
	Monthly = Window{Name: "monthly", Days: 30}
	Yearly  = Window{Name: "yearly", Days: 365}
)

// Windows lists the standard windows from shortest to longest.
var Windows = []Window{Weekly, Monthly, Yearly}

// Views holds the three ranked window views.
type Views struct {
	Weekly  []RankedJob `json:"weekly"`
	Monthly []RankedJob `json:"monthly"`
	Yearly  []RankedJob `json:"yearly"`
}

// ByWindow returns the view for w, or nil for an unknown window.
func (v *Views) ByWindow(w Window) []RankedJob {
	switch w {
	case Weekly:
		return v.Weekly
	case Monthly:
		return v.Monthly
	case Yearly:
		return v.Yearly
	}
	return nil
}

// BuildViews filters jobs by c and then computes each window view
// independently from the filtered set.
func BuildViews(jobs []types.JobPosting, skills SkillSet, c Criteria, now time.Time) *Views {
	filtered := Filter(jobs, c)
	return &Views{
		Weekly:  FilterByWindow(filtered, skills, Weekly.Days, now),
		Monthly: FilterByWindow(filtered, skills, Monthly.Days, now),
		Yearly:  FilterByWindow(filtered, skills, Yearly.Days, now),
	}
}
