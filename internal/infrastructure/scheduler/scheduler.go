package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is a unit of background work run on a cron schedule
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// JobObserver receives the outcome of every job run
type JobObserver interface {
	ObserveJob(name string, duration time.Duration, err error)
}

// Config holds scheduler settings
type Config struct {
	// JobTimeout bounds a single run; zero means no timeout
	JobTimeout time.Duration
}

// Scheduler runs registered jobs with robfig/cron. Overlapping runs of the
// same job are skipped and panics are recovered.
type Scheduler struct {
	cron     *cron.Cron
	config   Config
	logger   *zap.Logger
	observer JobObserver

	mu      sync.Mutex
	jobs    map[string]Job
	running bool
	baseCtx context.Context
	cancel  context.CancelFunc
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithObserver reports job durations and failures
func WithObserver(o JobObserver) Option {
	return func(s *Scheduler) {
		s.observer = o
	}
}

// New creates a scheduler using the standard five-field cron parser, which
// also accepts descriptors such as "@every 15m" and "@hourly".
func New(config Config, logger *zap.Logger, opts ...Option) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	cronLog := cronLogger{log: logger.Named("cron")}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		config: config,
		logger: logger,
		jobs:   make(map[string]Job),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register schedules job under spec. It must be called before Start.
func (s *Scheduler) Register(spec string, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrSchedulerRunning
	}
	if _, ok := s.jobs[job.Name()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateJob, job.Name())
	}
	if _, err := s.cron.AddFunc(spec, func() { _ = s.execute(s.context(), job) }); err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", spec, job.Name(), err)
	}
	s.jobs[job.Name()] = job
	s.logger.Info("Scheduled job registered", zap.String("job", job.Name()), zap.String("schedule", spec))
	return nil
}

// Start begins running jobs in the background
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}
	s.baseCtx, s.cancel = context.WithCancel(context.WithoutCancel(ctx))
	s.running = true
	s.cron.Start()
	s.logger.Info("Scheduler started", zap.Int("jobs", len(s.jobs)))
	return nil
}

// Stop halts scheduling, cancels running jobs and waits for them or ctx
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	cancel := s.cancel
	s.mu.Unlock()

	done := s.cron.Stop()
	cancel()

	select {
	case <-done.Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunNow executes a registered job immediately on the caller's goroutine
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.Lock()
	job, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	return s.execute(ctx, job)
}

// Jobs returns the registered job names
func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	return names
}

func (s *Scheduler) context() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.baseCtx == nil {
		return context.Background()
	}
	return s.baseCtx
}

func (s *Scheduler) execute(ctx context.Context, job Job) error {
	if s.config.JobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.JobTimeout)
		defer cancel()
	}

	start := time.Now()
	err := job.Run(ctx)
	elapsed := time.Since(start)

	if s.observer != nil {
		s.observer.ObserveJob(job.Name(), elapsed, err)
	}
	if err != nil {
		s.logger.Error("Scheduled job failed",
			zap.String("job", job.Name()),
			zap.Duration("duration", elapsed),
			zap.Error(err))
		return err
	}
	s.logger.Debug("Scheduled job completed", zap.String("job", job.Name()), zap.Duration("duration", elapsed))
	return nil
}

// cronLogger adapts zap to cron.Logger
type cronLogger struct {
	log *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
