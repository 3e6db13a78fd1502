package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-portal/internal/ranking"
	"github.com/jonathan/job-portal/internal/types"
)

func jobBody() map[string]any {
	return map[string]any{
		"jobTitle":       "Backend Developer",
		"companyName":    "Acme",
		"location":       "Berlin",
		"jobType":        types.JobTypeFullTime,
		"salary":         75000,
		"description":    "<p>Build <b>APIs</b></p>",
		"projectDetails": "Payments",
		"skillsRequired": "Go,  SQL ,,Docker",
		"email":          "HR@Acme.com",
	}
}

func TestCreateJob(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/jobs", jobBody(), ts.token(t, types.RoleRecruiter))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	posting := decodeBody[types.JobPosting](t, w)
	assert.Equal(t, "Backend Developer", posting.Title)
	assert.Equal(t, "Build APIs", posting.Description)
	assert.Equal(t, "hr@acme.com", posting.RecruiterEmail)
	assert.Equal(t, "Go, SQL, Docker", posting.SkillsRequired)

	w = ts.do(t, http.MethodPost, "/api/jobs", jobBody(), ts.token(t, types.RoleAdmin))
	assert.Equal(t, http.StatusConflict, w.Code, "identical repost")
}

func TestCreateJob_SamePostingInAnotherCity(t *testing.T) {
	ts := newTestServer(t)
	token := ts.token(t, types.RoleRecruiter)

	w := ts.do(t, http.MethodPost, "/api/jobs", jobBody(), token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	other := jobBody()
	other["location"] = "Lahore"
	w = ts.do(t, http.MethodPost, "/api/jobs", other, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Lahore", decodeBody[types.JobPosting](t, w).Location)

	// An edited description is still the same posting.
	edited := jobBody()
	edited["description"] = "Build more APIs"
	w = ts.do(t, http.MethodPost, "/api/jobs", edited, token)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateJob_Authorization(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/jobs", jobBody(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(t, http.MethodPost, "/api/jobs", jobBody(), ts.token(t, types.RoleJobseeker))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ts.do(t, http.MethodPost, "/api/jobs", jobBody(), "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateJob_SchemaViolation(t *testing.T) {
	ts := newTestServer(t)
	body := jobBody()
	body["jobType"] = "Gig"
	delete(body, "email")

	w := ts.do(t, http.MethodPost, "/api/jobs", body, ts.token(t, types.RoleRecruiter))
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeBody[map[string]any](t, w)
	assert.Equal(t, "validation failed", resp["error"])
	fields, ok := resp["fields"].([]any)
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(fields), 2)
}

func TestListJobs(t *testing.T) {
	ts := newTestServer(t)
	now := ts.store.clock
	ts.store.addJob(types.JobPosting{Title: "Old", CreatedAt: now.Add(-48 * time.Hour)})
	ts.store.addJob(types.JobPosting{Title: "New", CreatedAt: now.Add(-time.Hour)})

	w := ts.do(t, http.MethodGet, "/api/jobs", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	jobs := decodeBody[[]types.JobPosting](t, w)
	require.Len(t, jobs, 2)
	assert.Equal(t, "New", jobs[0].Title)
	assert.Equal(t, "Old", jobs[1].Title)
}

func TestListJobs_StoreFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.store.failWith = errStoreDown

	w := ts.do(t, http.MethodGet, "/api/jobs", nil, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "failed to list jobs", decodeBody[map[string]string](t, w)["error"])
}

func seedViewJobs(ts *testServer) {
	now := ts.store.clock
	day := 24 * time.Hour
	ts.store.addJob(types.JobPosting{Title: "Frontend", Company: "A", Location: "Remote", JobType: types.JobTypeRemote,
		Salary: 75000, SkillsRequired: "JavaScript, React", CreatedAt: now.Add(-2 * day)})
	ts.store.addJob(types.JobPosting{Title: "Backend", Company: "B", Location: "Berlin", JobType: types.JobTypeFullTime,
		Salary: 120000, SkillsRequired: "Go", CreatedAt: now.Add(-1 * day)})
	ts.store.addJob(types.JobPosting{Title: "Fullstack", Company: "C", Location: "Remote", JobType: types.JobTypeRemote,
		Salary: 40000, SkillsRequired: "JavaScript, Node.js", CreatedAt: now.Add(-20 * day)})
	ts.store.addJob(types.JobPosting{Title: "Legacy", Company: "D", Location: "Paris", JobType: types.JobTypeContract,
		Salary: 60000, SkillsRequired: "Cobol", CreatedAt: now.Add(-200 * day)})
}

func TestJobViews_RankedBySkills(t *testing.T) {
	ts := newTestServer(t)
	seedViewJobs(ts)
	_, err := ts.store.UpsertResume(t.Context(), &types.Resume{Email: "jane@example.com", Skills: "javascript, react"})
	require.NoError(t, err)

	w := ts.do(t, http.MethodGet, "/api/jobs/views?email=jane@example.com", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	views := decodeBody[ranking.Views](t, w)

	require.Len(t, views.Weekly, 2)
	assert.Equal(t, "Frontend", views.Weekly[0].Title)
	assert.Equal(t, 2, views.Weekly[0].Relevance)
	assert.Equal(t, "Backend", views.Weekly[1].Title)
	assert.Equal(t, 0, views.Weekly[1].Relevance)

	require.Len(t, views.Monthly, 3)
	assert.Equal(t, "Fullstack", views.Monthly[1].Title)
	assert.Equal(t, 1, views.Monthly[1].Relevance)

	assert.Len(t, views.Yearly, 4)
}

func TestJobViews_NoEmailOrdersByDate(t *testing.T) {
	ts := newTestServer(t)
	seedViewJobs(ts)

	w := ts.do(t, http.MethodGet, "/api/jobs/views", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	views := decodeBody[ranking.Views](t, w)

	require.Len(t, views.Yearly, 4)
	titles := []string{}
	for _, j := range views.Yearly {
		titles = append(titles, j.Title)
		assert.Equal(t, 0, j.Relevance)
	}
	assert.Equal(t, []string{"Backend", "Frontend", "Fullstack", "Legacy"}, titles)
}

func TestJobViews_Filters(t *testing.T) {
	ts := newTestServer(t)
	seedViewJobs(ts)

	w := ts.do(t, http.MethodGet, "/api/jobs/views?jobType=Remote&salaryRange=50000-100000", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	views := decodeBody[ranking.Views](t, w)
	require.Len(t, views.Yearly, 1)
	assert.Equal(t, "Frontend", views.Yearly[0].Title)

	w = ts.do(t, http.MethodGet, "/api/jobs/views?search=berlin", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	views = decodeBody[ranking.Views](t, w)
	require.Len(t, views.Yearly, 1)
	assert.Equal(t, "Backend", views.Yearly[0].Title)

	w = ts.do(t, http.MethodGet, "/api/jobs/views?salaryRange=lots", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	views = decodeBody[ranking.Views](t, w)
	assert.Empty(t, views.Yearly)
}

func TestJobViews_MissingResume(t *testing.T) {
	ts := newTestServer(t)
	seedViewJobs(ts)

	w := ts.do(t, http.MethodGet, "/api/jobs/views?email=ghost@example.com", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "resume not found", decodeBody[map[string]string](t, w)["error"])
}
