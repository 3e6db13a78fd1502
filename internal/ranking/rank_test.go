package ranking

import (
	"testing"
	"time"

	"github.com/jonathan/job-portal/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func daysAgo(d float64) time.Time {
	return testNow.Add(-time.Duration(d * 24 * float64(time.Hour)))
}

func job(title, skills string, created time.Time) types.JobPosting {
	return types.JobPosting{Title: title, SkillsRequired: skills, CreatedAt: created}
}

func TestParseSkills(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want SkillSet
	}{
		{name: "empty", raw: "", want: nil},
		{name: "whitespace only", raw: "   ", want: nil},
		{name: "lowercases and trims", raw: " JavaScript , React ", want: SkillSet{"javascript", "react"}},
		{name: "drops empty tokens", raw: "go,,sql,", want: SkillSet{"go", "sql"}},
		{name: "dedupes", raw: "Go, go, GO", want: SkillSet{"go"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSkills(tt.raw))
		})
	}
}

func TestRelevance(t *testing.T) {
	tests := []struct {
		name      string
		jobSkills string
		skills    string
		want      int
	}{
		{name: "one of two matches", jobSkills: "JavaScript, Node.js", skills: "javascript,react", want: 1},
		{name: "empty candidate skills", jobSkills: "Go", skills: "", want: 0},
		{name: "empty job skills", jobSkills: "", skills: "go", want: 0},
		{name: "candidate token inside job token", jobSkills: "PostgreSQL", skills: "sql", want: 1},
		{name: "job token inside candidate token", jobSkills: "sql", skills: "postgresql", want: 1},
		{name: "trailing comma does not match everything", jobSkills: "Go,", skills: "python", want: 0},
		{name: "each candidate skill counted once", jobSkills: "java, javascript", skills: "java", want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Relevance(job("x", tt.jobSkills, testNow), ParseSkills(tt.skills))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRelevance_Symmetric(t *testing.T) {
	pairs := [][2]string{{"react", "react native"}, {"go", "golang"}, {"c", "c++"}, {"rust", "python"}}
	for _, p := range pairs {
		a := Relevance(job("x", p[0], testNow), ParseSkills(p[1]))
		b := Relevance(job("x", p[1], testNow), ParseSkills(p[0]))
		assert.Equal(t, a, b, "pair %v", p)
	}
}

func TestSort_ByRelevanceThenDate(t *testing.T) {
	jobs := []types.JobPosting{
		job("old-match", "go, sql", daysAgo(10)),
		job("none", "cobol", daysAgo(1)),
		job("new-match", "go, sql", daysAgo(2)),
		job("half", "go", daysAgo(3)),
	}

	ranked := Sort(jobs, ParseSkills("go, sql"))
	require.Len(t, ranked, 4)

	titles := make([]string, len(ranked))
	for i, r := range ranked {
		titles[i] = r.Title
	}
	assert.Equal(t, []string{"new-match", "old-match", "half", "none"}, titles)
	assert.Equal(t, 2, ranked[0].Relevance)
	assert.Equal(t, 0, ranked[3].Relevance)

	for i := 1; i < len(ranked); i++ {
		prev, cur := ranked[i-1], ranked[i]
		ok := prev.Relevance > cur.Relevance ||
			(prev.Relevance == cur.Relevance && !cur.CreatedAt.After(prev.CreatedAt))
		assert.True(t, ok, "out of order at %d", i)
	}
}

func TestSort_NoSkillsOrdersByDate(t *testing.T) {
	jobs := []types.JobPosting{
		job("a", "go", daysAgo(5)),
		job("b", "", daysAgo(1)),
		job("c", "go", daysAgo(3)),
	}

	ranked := Sort(jobs, nil)
	assert.Equal(t, "b", ranked[0].Title)
	assert.Equal(t, "c", ranked[1].Title)
	assert.Equal(t, "a", ranked[2].Title)
	for _, r := range ranked {
		assert.Zero(t, r.Relevance)
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	jobs := []types.JobPosting{job("a", "", daysAgo(5)), job("b", "", daysAgo(1))}
	_ = Sort(jobs, nil)
	assert.Equal(t, "a", jobs[0].Title)
}

func TestFilterByWindow(t *testing.T) {
	jobs := []types.JobPosting{
		job("today", "", daysAgo(0)),
		job("edge", "", daysAgo(7)),
		job("past", "", daysAgo(7.5)),
	}

	ranked := FilterByWindow(jobs, nil, 7, testNow)
	require.Len(t, ranked, 2)
	assert.Equal(t, "today", ranked[0].Title)
	assert.Equal(t, "edge", ranked[1].Title)
}
