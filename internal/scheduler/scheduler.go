package scheduler

import (
	"context"
	"fmt"
	"time"

	cronlib "github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/jobward/jobward/internal/domain"
	"github.com/jobward/jobward/internal/job"
	"github.com/jobward/jobward/internal/lock"
	"github.com/jobward/jobward/internal/usecase"
)

// cronParser supports standard 5-field cron plus descriptors like "@every 30s".
var cronParser = cronlib.NewParser(
	cronlib.Minute | cronlib.Hour | cronlib.Dom | cronlib.Month | cronlib.Dow | cronlib.Descriptor,
)

// Scheduler fires registered job schedules. Every replica in the fleet runs
// the same schedule independently; the lock guard is the only thing that
// keeps a tick from executing on more than one instance at once.
type Scheduler struct {
	cron       *cronlib.Cron
	guard      *lock.Guard
	runJob     *usecase.RunJobUsecase
	defaultTTL time.Duration
	logger     *zap.Logger
}

// New creates a Scheduler. defaultTTL is the lock TTL for definitions that
// do not set their own.
func New(guard *lock.Guard, runJob *usecase.RunJobUsecase, defaultTTL time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:       cronlib.New(cronlib.WithParser(cronParser)),
		guard:      guard,
		runJob:     runJob,
		defaultTTL: defaultTTL,
		logger:     logger,
	}
}

// Add registers a job definition's schedule. Definitions without a schedule
// are manual-only and are ignored here.
func (s *Scheduler) Add(def *job.Definition) error {
	if def.Schedule == "" {
		return nil
	}
	if _, err := s.cron.AddFunc(def.Schedule, func() { s.tick(def) }); err != nil {
		return fmt.Errorf("schedule job %s: %w", def.Name, err)
	}
	s.logger.Info("Scheduled job registered",
		zap.String("job", def.Name),
		zap.String("schedule", def.Schedule),
	)
	return nil
}

// Start begins firing schedules in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler started")
}

// Stop stops firing and waits for in-flight ticks to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler stopped")
}

// tick runs one scheduled firing of def behind the distributed lock. A tick
// that loses the lock race is dropped, not queued: the job runs again on its
// next schedule. Failures have no caller to propagate to, so error-level
// logging here is what surfaces them.
func (s *Scheduler) tick(def *job.Definition) {
	ctx := context.Background()

	ttl := def.LockTTL
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	skipped, err := s.guard.Run(ctx, lock.Key(def.Name), ttl, func(ctx context.Context) error {
		_, err := s.runJob.Execute(ctx, def.Name, domain.TriggeredBySystem)
		return err
	})
	if skipped {
		return
	}
	if err != nil {
		s.logger.Error("Scheduled job failed",
			zap.String("job", def.Name),
			zap.Error(err),
		)
	}
}
