// Package scheduler refreshes the bar store on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/investlens/internal/marketdata"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Runner is one refresh pass; *marketdata.Syncer satisfies it.
type Runner interface {
	Run(ctx context.Context) ([]marketdata.SyncResult, error)
}

// Scheduler runs a Runner on a six-field (seconds first) cron spec.
// Overlapping runs are skipped, never queued.
type Scheduler struct {
	cron   *cron.Cron
	runner Runner
	log    zerolog.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

// New registers runner under spec. The scheduler is idle until Start.
func New(spec string, runner Runner, log zerolog.Logger) (*Scheduler, error) {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		runner: runner,
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		cancel()
		return nil, fmt.Errorf("register sync %q: %w", spec, err)
	}
	return s, nil
}

// Start starts the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Time("next", s.Next()).Msg("scheduler started")
}

// Stop cancels a run in progress and waits for it to return.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
	s.log.Info().Msg("scheduler stopped")
}

// Next reports when the job fires next; zero before Start.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// RunNow executes one pass synchronously on ctx.
func (s *Scheduler) RunNow(ctx context.Context) error {
	start := time.Now()
	results, err := s.runner.Run(ctx)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	ev := s.log.Info()
	if err != nil {
		ev = s.log.Warn().Err(err)
	}
	ev.Int("tickers", len(results)).Int("failed", failed).Dur("elapsed", time.Since(start)).Msg("sync pass finished")
	return err
}

func (s *Scheduler) tick() {
	_ = s.RunNow(s.ctx)
}
