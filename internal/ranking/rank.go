// Package ranking scores job postings against a candidate's skills and builds
// the time-windowed views shown on the jobs page.
package ranking

import (
	"sort"
	"strings"
	"time"

	"github.com/jonathan/job-portal/internal/types"
)

// RankedJob is a job posting annotated with its relevance to a skill set.
type RankedJob struct {
	types.JobPosting
	Relevance int `json:"relevance"`
}

// Relevance counts the candidate skills that match at least one of the job's
// required skills. A candidate skill s matches a job skill j when either one
// contains the other.
func Relevance(job types.JobPosting, skills SkillSet) int {
	if skills.Empty() {
		return 0
	}
	jobSkills := tokenize(job.SkillsRequired)
	if len(jobSkills) == 0 {
		return 0
	}

	score := 0
	for _, s := range skills {
		for _, j := range jobSkills {
			if strings.Contains(j, s) || strings.Contains(s, j) {
				score++
				break
			}
		}
	}
	return score
}

// Sort ranks jobs against skills. With no skills the result is ordered by
// creation time, newest first. Otherwise by relevance descending with
// creation time breaking ties. The input slice is not modified.
func Sort(jobs []types.JobPosting, skills SkillSet) []RankedJob {
	ranked := make([]RankedJob, len(jobs))
	for i, job := range jobs {
		ranked[i] = RankedJob{JobPosting: job, Relevance: Relevance(job, skills)}
	}

	byDate := skills.Empty()
	sort.SliceStable(ranked, func(i, j int) bool {
		if !byDate && ranked[i].Relevance != ranked[j].Relevance {
			return ranked[i].Relevance > ranked[j].Relevance
		}
		return ranked[i].CreatedAt.After(ranked[j].CreatedAt)
	})
	return ranked
}

// FilterByWindow keeps jobs created at most windowDays days before now and
// returns them sorted.
func FilterByWindow(jobs []types.JobPosting, skills SkillSet, windowDays int, now time.Time) []RankedJob {
	kept := make([]types.JobPosting, 0, len(jobs))
	for _, job := range jobs {
		if ageInDays(job.CreatedAt, now) <= float64(windowDays) {
			kept = append(kept, job)
		}
	}
	return Sort(kept, skills)
}

func ageInDays(created, now time.Time) float64 {
	return now.Sub(created).Hours() / 24
}
