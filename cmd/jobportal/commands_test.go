package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-portal/internal/types"
)

// execute runs the root command in an empty directory so no config file is
// picked up.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("PORTAL_TOKEN", "")
	t.Cleanup(func() { apiURL, apiToken = "", "" })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestApplyCommand(t *testing.T) {
	status := http.StatusCreated
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req types.ApplyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Backend", req.JobTitle)
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(types.Application{JobTitle: req.JobTitle})
	}))
	defer srv.Close()

	args := []string{"apply", "--api-url", srv.URL,
		"--email", "jane@example.com", "--recruiter-email", "hr@acme.com", "--title", "Backend"}

	out, err := execute(t, args...)
	require.NoError(t, err)
	assert.Equal(t, "Applied to Backend\n", out)

	status = http.StatusInternalServerError
	_, err = execute(t, args...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "application not submitted")
}

func TestLoginCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		_ = json.NewEncoder(w).Encode(types.LoginResponse{
			Token: "signed.jwt.token",
			User:  types.UserSummary{Username: "jane", Role: types.RoleJobseeker},
		})
	}))
	defer srv.Close()

	out, err := execute(t, "login", "--api-url", srv.URL, "--email", "jane@example.com", "--password", "secret")
	require.NoError(t, err)
	assert.Equal(t, "signed.jwt.token\n", out)
}

func TestSignupCommand_RejectsLongPassword(t *testing.T) {
	_, err := execute(t, "signup", "--username", "jane", "--email", "jane@example.com",
		"--password", "thirteenchars", "--role", "jobseeker")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid signup")
}
