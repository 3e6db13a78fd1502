// Package ratelimit provides per-client, per-endpoint request limiting.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

type entry struct {
	limiter    *rate.Limiter
	limit      int
	window     time.Duration
	lastAccess time.Time
}

// Limiter manages a token bucket per client and endpoint.
type Limiter struct {
	config *Config
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]*entry

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
	stopOnce      sync.Once
}

// NewLimiter creates a new rate limiter with the given configuration.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
			IdleTTL:         time.Hour,
			Whitelist:       make(map[string]bool),
			Blacklist:       make(map[string]bool),
		}
	}
	if config.IdleTTL <= 0 {
		config.IdleTTL = time.Hour
	}

	l := &Limiter{
		config:  config,
		now:     time.Now,
		entries: make(map[string]*entry),
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupTicker = time.NewTicker(config.CleanupInterval)
		l.cleanupStop = make(chan struct{})
		go l.cleanup()
	}

	return l
}

// Allow checks if a request from clientID to the endpoint may proceed and
// consumes a token if so.
func (l *Limiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{Allowed: false}
	}

	cfg := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if cfg == nil {
		cfg = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	}
	if cfg.Limit <= 0 || cfg.Window <= 0 {
		return true, Info{Allowed: true}
	}

	now := l.now()
	e := l.entry(clientID+":"+endpoint+":"+method, cfg, now)

	r := e.limiter.ReserveN(now, 1)
	allowed := r.OK() && r.DelayFrom(now) == 0
	var retryAfter time.Duration
	if !allowed {
		if r.OK() {
			retryAfter = r.DelayFrom(now)
		}
		r.CancelAt(now)
	}

	tokens := e.limiter.TokensAt(now)
	remaining := max(int(tokens), 0)

	return allowed, Info{
		Allowed:    allowed,
		Limit:      cfg.Limit,
		Remaining:  remaining,
		ResetTime:  now.Add(e.untilFull(tokens)),
		RetryAfter: retryAfter,
	}
}

// entry gets or creates the bucket for key and records the access.
func (l *Limiter) entry(key string, cfg *EndpointConfig, now time.Time) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		burst := cfg.Burst
		if burst <= 0 {
			burst = cfg.Limit
		}
		every := cfg.Window / time.Duration(cfg.Limit)
		e = &entry{
			limiter: rate.NewLimiter(rate.Every(every), burst),
			limit:   cfg.Limit,
			window:  cfg.Window,
		}
		l.entries[key] = e
	}
	e.lastAccess = now
	return e
}

// untilFull is how long the bucket needs to refill from tokens.
func (e *entry) untilFull(tokens float64) time.Duration {
	missing := float64(e.limiter.Burst()) - tokens
	if missing <= 0 {
		return 0
	}
	perToken := e.window / time.Duration(e.limit)
	return time.Duration(missing * float64(perToken))
}

// Len returns the number of tracked buckets.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *Limiter) cleanup() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.cleanupEntries()
		case <-l.cleanupStop:
			return
		}
	}
}

// cleanupEntries drops buckets idle for longer than the configured TTL.
func (l *Limiter) cleanupEntries() {
	cutoff := l.now().Add(-l.config.IdleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, e := range l.entries {
		if e.lastAccess.Before(cutoff) {
			delete(l.entries, key)
		}
	}
}

// Stop stops the cleanup goroutine.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.cleanupTicker != nil {
			l.cleanupTicker.Stop()
		}
		if l.cleanupStop != nil {
			close(l.cleanupStop)
		}
	})
}
