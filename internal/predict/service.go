package predict

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-portal/internal/cache"
	"github.com/jonathan/job-portal/internal/ingestion"
	"github.com/jonathan/job-portal/internal/metrics"
	"github.com/jonathan/job-portal/internal/types"
)

// DefaultCacheTTL is how long a computed completion stays cached.
const DefaultCacheTTL = 10 * time.Minute

// Corpus supplies the stored content the dictionary is built from.
type Corpus interface {
	ListJobPostings(ctx context.Context) ([]types.JobPosting, error)
	ListResumes(ctx context.Context) ([]types.Resume, error)
}

// Service answers prediction requests from a dictionary, with a cache in
// front. The dictionary is swapped atomically on rebuild.
type Service struct {
	dict atomic.Pointer[Dictionary]
	// instance scopes cache keys to this process; version restarts at zero.
	instance string
	version  atomic.Uint64
	cache    cache.Cache
	ttl      time.Duration
	logger   *zap.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithCacheTTL overrides DefaultCacheTTL.
func WithCacheTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) { s.ttl = ttl }
}

// WithDictionary starts the service with d instead of the seed dictionary.
func WithDictionary(d *Dictionary) ServiceOption {
	return func(s *Service) { s.dict.Store(d) }
}

// NewService creates a service using c as cache. A nil cache disables
// caching.
func NewService(c cache.Cache, logger *zap.Logger, opts ...ServiceOption) *Service {
	if c == nil {
		c = cache.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{instance: uuid.NewString(), cache: c, ttl: DefaultCacheTTL, logger: logger}
	s.dict.Store(NewSeededDictionary())
	for _, opt := range opts {
		opt(s)
	}
	metrics.DictionaryWords.Set(float64(s.dict.Load().Len()))
	return s
}

// Dictionary returns the dictionary currently in use.
func (s *Service) Dictionary() *Dictionary {
	return s.dict.Load()
}

func (s *Service) cacheKey(field, fragment string) string {
	return fmt.Sprintf("predict:%s:v%d:%s:%s", s.instance, s.version.Load(), field, fragment)
}

// Predict completes the last word of text for field. Cache failures are
// logged and do not fail the request.
func (s *Service) Predict(ctx context.Context, field, text string) (string, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		metrics.PredictionsTotal.WithLabelValues(metrics.ResultEmpty).Inc()
		return "", nil
	}
	fragment := words[len(words)-1]
	key := s.cacheKey(field, fragment)

	if val, ok, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("prediction cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		metrics.PredictionsTotal.WithLabelValues(metrics.ResultHit).Inc()
		return val, nil
	}

	suggestion := s.dict.Load().Complete(field, fragment)
	if err := s.cache.Set(ctx, key, suggestion, s.ttl); err != nil {
		s.logger.Warn("prediction cache write failed", zap.String("key", key), zap.Error(err))
	}

	if suggestion == "" {
		metrics.PredictionsTotal.WithLabelValues(metrics.ResultEmpty).Inc()
	} else {
		metrics.PredictionsTotal.WithLabelValues(metrics.ResultMiss).Inc()
	}
	return suggestion, nil
}

// Rebuild builds a new dictionary from the seed vocabulary and corpus and
// swaps it in. Cached completions of the previous dictionary stop being
// used.
func (s *Service) Rebuild(ctx context.Context, corpus Corpus) error {
	var (
		jobs    []types.JobPosting
		resumes []types.Resume
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		jobs, err = corpus.ListJobPostings(gctx)
		if err != nil {
			return fmt.Errorf("failed to list job postings: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		resumes, err = corpus.ListResumes(gctx)
		if err != nil {
			return fmt.Errorf("failed to list resumes: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		metrics.DictionaryRebuilds.WithLabelValues("error").Inc()
		return err
	}

	d := NewSeededDictionary()
	for _, job := range jobs {
		addJobPosting(d, job)
	}
	for _, r := range resumes {
		addResume(d, r)
	}

	s.dict.Store(d)
	s.version.Add(1)
	metrics.DictionaryWords.Set(float64(d.Len()))
	metrics.DictionaryRebuilds.WithLabelValues("ok").Inc()
	s.logger.Info("prediction dictionary rebuilt",
		zap.Int("job_postings", len(jobs)),
		zap.Int("resumes", len(resumes)),
		zap.Int("words", d.Len()))
	return nil
}

func addJobPosting(d *Dictionary, job types.JobPosting) {
	d.Add("jobTitle", job.Title)
	d.Add("companyName", job.Company)
	d.Add("skills", job.SkillsRequired)
	for _, text := range []string{job.Description, job.ProjectDetails} {
		cleaned, err := ingestion.HTMLToText(text)
		if err != nil {
			cleaned = text
		}
		d.Add("", cleaned)
	}
}

func addResume(d *Dictionary, r types.Resume) {
	d.Add("skills", r.Skills)
	d.Add("certifications", r.Certifications)
	d.Add("hobbies", r.Hobbies)
	d.Add("institution", r.Education.Institution)
	d.Add("degree", r.Education.Degree)
	for _, exp := range r.Experience {
		d.Add("companyName", exp.CompanyName)
		d.Add("jobTitle", exp.JobTitle)
		d.Add("duration", exp.Duration)
	}
}
