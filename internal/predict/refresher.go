package predict

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Refresher rebuilds a Service's dictionary on a fixed interval.
type Refresher struct {
	cron     *cron.Cron
	service  *Service
	corpus   Corpus
	schedule string
	logger   *zap.Logger
	wg       sync.WaitGroup
}

// NewRefresher creates a refresher that fires every interval.
func NewRefresher(service *Service, corpus Corpus, interval time.Duration, logger *zap.Logger) *Refresher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Refresher{
		cron:     cron.New(),
		service:  service,
		corpus:   corpus,
		schedule: fmt.Sprintf("@every %s", interval),
		logger:   logger,
	}
}

// Start registers the job and starts the scheduler. One rebuild runs
// immediately so stored content is indexed without waiting for the first
// tick.
func (r *Refresher) Start(ctx context.Context) error {
	if _, err := r.cron.AddFunc(r.schedule, func() { r.run(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule dictionary refresh: %w", err)
	}
	r.cron.Start()
	r.logger.Info("dictionary refresher started", zap.String("schedule", r.schedule))

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.run(ctx)
	}()
	return nil
}

// Stop stops the scheduler and waits for a running rebuild to finish.
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
	r.wg.Wait()
	r.logger.Info("dictionary refresher stopped")
}

func (r *Refresher) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := r.service.Rebuild(ctx, r.corpus); err != nil {
		r.logger.Error("dictionary refresh failed", zap.Error(err))
	}
}
