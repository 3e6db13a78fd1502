// Package portal is an HTTP client for the job portal API.
package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/job-portal/internal/types"
)

// ErrNotFound is returned when the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// StatusError is returned for responses with an unexpected status code.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// Client calls the portal API.
type Client struct {
	baseURL    string
	predictURL string
	httpClient *http.Client
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithPredictURL sends prediction requests to url instead of the API's
// /predict route.
func WithPredictURL(u string) Option {
	return func(c *Client) { c.predictURL = u }
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// NewClient creates a client for the API at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.predictURL == "" {
		c.predictURL = c.baseURL + "/predict"
	}
	return c
}

// SetToken sets the bearer token, as after a login.
func (c *Client) SetToken(token string) {
	c.token = token
}

// do sends a JSON request and decodes the response into out when the status
// is want. Other statuses become a *StatusError.
func (c *Client) do(ctx context.Context, method, target string, body, out any, want int) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return statusError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// statusError builds a *StatusError using the "message" or "error" field
// of the body when there is one.
func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := strings.TrimSpace(string(raw))
	if json.Unmarshal(raw, &body) == nil {
		if body.Message != "" {
			msg = body.Message
		} else if body.Error != "" {
			msg = body.Error
		}
	}
	return &StatusError{StatusCode: resp.StatusCode, Message: msg}
}

// ListJobs returns all job postings, newest first.
func (c *Client) ListJobs(ctx context.Context) ([]types.JobPosting, error) {
	var jobs []types.JobPosting
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/api/jobs", nil, &jobs, http.StatusOK); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// CreateJob posts a job. It needs a recruiter or admin token.
func (c *Client) CreateJob(ctx context.Context, req *types.CreateJobPostingRequest) (*types.JobPosting, error) {
	var posting types.JobPosting
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/api/jobs", req, &posting, http.StatusCreated); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return &posting, nil
}

// GetResumeByEmail fetches the resume stored for email. It returns
// ErrNotFound when there is none.
func (c *Client) GetResumeByEmail(ctx context.Context, email string) (*types.Resume, error) {
	var resume types.Resume
	target := c.baseURL + "/api/resumes/by-email/" + url.PathEscape(email)
	if err := c.do(ctx, http.MethodGet, target, nil, &resume, http.StatusOK); err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("resume for %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return &resume, nil
}

// CreateResume stores a resume.
func (c *Client) CreateResume(ctx context.Context, r *types.Resume) (*types.Resume, error) {
	var saved types.Resume
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/api/resumes/create", r, &saved, http.StatusCreated); err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return &saved, nil
}

// Apply submits a quick application. Any status other than 201 is a
// failure.
func (c *Client) Apply(ctx context.Context, req *types.ApplyRequest) (*types.Application, error) {
	var app types.Application
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/api/applications/apply", req, &app, http.StatusCreated); err != nil {
		return nil, fmt.Errorf("failed to apply: %w", err)
	}
	return &app, nil
}

// Signup creates an account.
func (c *Client) Signup(ctx context.Context, req *types.SignupRequest) error {
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/api/auth/signup", req, nil, http.StatusCreated); err != nil {
		return fmt.Errorf("failed to sign up: %w", err)
	}
	return nil
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, req *types.LoginRequest) (*types.LoginResponse, error) {
	var resp types.LoginResponse
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/api/auth/login", req, &resp, http.StatusOK); err != nil {
		return nil, fmt.Errorf("failed to log in: %w", err)
	}
	c.SetToken(resp.Token)
	return &resp, nil
}

// Predict asks the prediction endpoint to complete text for field.
func (c *Client) Predict(ctx context.Context, field, text string) (string, error) {
	var resp types.PredictResponse
	req := types.PredictRequest{Field: field, Text: text}
	if err := c.do(ctx, http.MethodPost, c.predictURL, req, &resp, http.StatusOK); err != nil {
		return "", fmt.Errorf("failed to predict: %w", err)
	}
	return resp.Suggestion, nil
}
