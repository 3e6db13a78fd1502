package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"github.com/jonathan/job-portal/internal/config"
	"github.com/jonathan/job-portal/internal/db"
	"github.com/jonathan/job-portal/internal/predict"
	"github.com/jonathan/job-portal/internal/server/ratelimit"
	"github.com/jonathan/job-portal/internal/suggest"
	"github.com/jonathan/job-portal/internal/types"
)

// memStore is an in-memory Store.
type memStore struct {
	mu           sync.Mutex
	users        map[string]*db.User
	jobs         []types.JobPosting
	fingerprints map[string]bool
	resumes      map[string]*types.Resume
	applications []types.Application
	clock        time.Time
	pingErr      error
	failWith     error
}

func newMemStore() *memStore {
	return &memStore{
		users:        make(map[string]*db.User),
		fingerprints: make(map[string]bool),
		resumes:      make(map[string]*types.Resume),
		clock:        time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func emailKey(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

// tick returns a strictly increasing timestamp.
func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) CreateUser(_ context.Context, username, email, passwordHash, role string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return uuid.Nil, m.failWith
	}
	if _, ok := m.users[emailKey(email)]; ok {
		return uuid.Nil, db.ErrEmailExists
	}
	u := &db.User{ID: uuid.New(), Username: username, Email: emailKey(email), PasswordHash: passwordHash, Role: role, CreatedAt: m.tick()}
	m.users[u.Email] = u
	return u.ID, nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	u, ok := m.users[emailKey(email)]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) CheckEmailExists(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return false, m.failWith
	}
	_, ok := m.users[emailKey(email)]
	return ok, nil
}

func (m *memStore) ListJobPostings(_ context.Context) ([]types.JobPosting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := append([]types.JobPosting{}, m.jobs...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) CreateJobPosting(_ context.Context, req *types.CreateJobPostingRequest, fingerprint string) (*types.JobPosting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	if m.fingerprints[fingerprint] {
		return nil, db.ErrDuplicatePosting
	}
	m.fingerprints[fingerprint] = true
	p := types.JobPosting{
		ID: uuid.New(), Title: req.Title, Company: req.Company, Location: req.Location,
		JobType: req.JobType, Salary: req.Salary, Description: req.Description,
		ProjectDetails: req.ProjectDetails, SkillsRequired: req.SkillsRequired,
		RecruiterEmail: req.RecruiterEmail, CreatedAt: m.tick(),
	}
	m.jobs = append(m.jobs, p)
	return &p, nil
}

func (m *memStore) addJob(p types.JobPosting) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.jobs = append(m.jobs, p)
}

func (m *memStore) UpsertResume(_ context.Context, r *types.Resume) (*types.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	saved := *r
	saved.Email = emailKey(r.Email)
	now := m.tick()
	if prev, ok := m.resumes[saved.Email]; ok {
		saved.ID = prev.ID
		saved.CreatedAt = prev.CreatedAt
	} else {
		saved.ID = uuid.New()
		saved.CreatedAt = now
	}
	saved.UpdatedAt = now
	m.resumes[saved.Email] = &saved
	cp := saved
	return &cp, nil
}

func (m *memStore) GetResumeByEmail(_ context.Context, email string) (*types.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	r, ok := m.resumes[emailKey(email)]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *memStore) ListResumes(_ context.Context) ([]types.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.Resume, 0, len(m.resumes))
	for _, r := range m.resumes {
		out = append(out, *r)
	}
	return out, nil
}

func (m *memStore) CreateApplication(_ context.Context, req *types.ApplyRequest) (*types.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	a := types.Application{
		ID: uuid.New(), JobseekerEmail: emailKey(req.JobseekerEmail),
		RecruiterEmail: emailKey(req.RecruiterEmail), JobTitle: req.JobTitle, CreatedAt: m.tick(),
	}
	m.applications = append(m.applications, a)
	return &a, nil
}

func (m *memStore) ListApplicationsByRecruiter(_ context.Context, recruiterEmail string) ([]types.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []types.Application{}
	for _, a := range m.applications {
		if a.RecruiterEmail == emailKey(recruiterEmail) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memStore) Ping(context.Context) error { return m.pingErr }
func (m *memStore) Close()                     {}

var errStoreDown = errors.New("store down")

// testServer bundles a server with its fake store.
type testServer struct {
	*Server
	store *memStore
}

type testOption func(*testServerOptions)

type testServerOptions struct {
	predictor suggest.Predictor
	limiter   *ratelimit.Limiter
}

func withPredictor(p suggest.Predictor) testOption {
	return func(o *testServerOptions) { o.predictor = p }
}

func withLimiter(l *ratelimit.Limiter) testOption {
	return func(o *testServerOptions) { o.limiter = l }
}

func newTestServer(t *testing.T, opts ...testOption) *testServer {
	t.Helper()
	o := testServerOptions{
		predictor: predict.NewService(nil, nil),
		limiter:   ratelimit.NewLimiter(&ratelimit.Config{Enabled: false}),
	}
	for _, opt := range opts {
		opt(&o)
	}

	store := newMemStore()
	s := newServer(store, o.predictor, newTestJWTService(),
		&config.PasswordConfig{BcryptCost: bcrypt.MinCost}, o.limiter, zaptest.NewLogger(t))
	s.now = func() time.Time { return store.clock }
	t.Cleanup(s.Close)
	return &testServer{Server: s, store: store}
}

// do sends a request through the full handler chain.
func (ts *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)
	return w
}

// token returns a valid bearer token for role.
func (ts *testServer) token(t *testing.T, role string) string {
	t.Helper()
	tok, err := ts.jwtService.GenerateToken(uuid.New(), role)
	require.NoError(t, err)
	return tok
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

var _ Store = (*memStore)(nil)
