package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/job-portal/internal/cache"
	"github.com/jonathan/job-portal/internal/config"
	"github.com/jonathan/job-portal/internal/db"
	"github.com/jonathan/job-portal/internal/logging"
	"github.com/jonathan/job-portal/internal/metrics"
	"github.com/jonathan/job-portal/internal/predict"
	"github.com/jonathan/job-portal/internal/server/middleware"
	"github.com/jonathan/job-portal/internal/server/ratelimit"
	"github.com/jonathan/job-portal/internal/suggest"
	"github.com/jonathan/job-portal/internal/types"
)

const defaultDictionaryRefresh = 15 * time.Minute

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	store       Store
	logger      *zap.Logger
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	authHandler *AuthHandler
	predictor   suggest.Predictor
	refresher   *predict.Refresher
	cache       cache.Cache
	now         func() time.Time
	closeOnce   sync.Once
}

// Config holds server configuration
type Config struct {
	Port              int
	DatabaseURL       string
	RedisURL          string
	DictionaryRefresh time.Duration
	PredictCacheTTL   time.Duration
	Logger            *zap.Logger
}

// New connects to the database and Redis and wires the handlers. An
// unreachable Redis disables the prediction cache instead of failing.
func New(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}

	var predictionCache cache.Cache = cache.Nop{}
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("redis unavailable, prediction cache disabled", zap.Error(err))
		} else {
			predictionCache = rc
		}
	}

	var opts []predict.ServiceOption
	if cfg.PredictCacheTTL > 0 {
		opts = append(opts, predict.WithCacheTTL(cfg.PredictCacheTTL))
	}
	service := predict.NewService(predictionCache, logger.Named("predict"), opts...)

	s := newServer(database, service, NewJWTService(jwtConfig), passwordConfig,
		ratelimit.NewLimiter(ratelimit.LoadConfig()), logger)
	s.cache = predictionCache

	refresh := cfg.DictionaryRefresh
	if refresh <= 0 {
		refresh = defaultDictionaryRefresh
	}
	s.refresher = predict.NewRefresher(service, database, refresh, logger.Named("refresher"))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// newServer wires routes and middleware around the given dependencies.
func newServer(store Store, predictor suggest.Predictor, jwtService *JWTService,
	passwordConfig *config.PasswordConfig, limiter *ratelimit.Limiter, logger *zap.Logger) *Server {
	s := &Server{
		store:       store,
		logger:      logger,
		rateLimiter: limiter,
		jwtService:  jwtService,
		predictor:   predictor,
		cache:       cache.Nop{},
		now:         time.Now,
	}
	s.authHandler = NewAuthHandler(NewUserService(store, passwordConfig), jwtService, logger.Named("auth"))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", metrics.Handler())

	mux.HandleFunc("POST /predict", s.handlePredict)

	mux.HandleFunc("POST /api/auth/signup", s.authHandler.Signup)
	mux.HandleFunc("POST /api/auth/login", s.authHandler.Login)

	recruiters := s.requireRole(types.RoleRecruiter, types.RoleAdmin)

	mux.HandleFunc("GET /api/jobs", s.handleListJobs)
	mux.Handle("POST /api/jobs", recruiters(http.HandlerFunc(s.handleCreateJob)))
	mux.HandleFunc("GET /api/jobs/views", s.handleJobViews)

	mux.HandleFunc("POST /api/resumes/create", s.handleCreateResume)
	mux.HandleFunc("GET /api/resumes/by-email/{email}", s.handleGetResumeByEmail)

	mux.HandleFunc("POST /api/applications/apply", s.handleApply)
	mux.Handle("GET /api/applications", recruiters(http.HandlerFunc(s.handleListApplications)))

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	return s
}

// requireRole authenticates the bearer token and checks its role.
func (s *Server) requireRole(roles ...string) func(http.Handler) http.Handler {
	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	check := middleware.RequireRole(roles...)
	return func(next http.Handler) http.Handler {
		return auth(check(next))
	}
}

// Handler returns the root handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start runs the server until SIGINT or SIGTERM.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is done, then shuts down gracefully and releases
// all resources.
func (s *Server) Run(ctx context.Context) error {
	defer s.Close()

	if s.refresher != nil {
		if err := s.refresher.Start(ctx); err != nil {
			return err
		}
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

// Close stops background work and closes the store and cache.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		if s.refresher != nil {
			s.refresher.Stop()
		}
		if s.rateLimiter != nil {
			s.rateLimiter.Stop()
		}
		if s.cache != nil {
			if err := s.cache.Close(); err != nil {
				s.logger.Warn("failed to close cache", zap.Error(err))
			}
		}
		if s.store != nil {
			s.store.Close()
		}
		s.logger.Info("server stopped")
	})
}
