package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// JobStatus represents the outcome of the last run of a job
type JobStatus string

const (
	JobStatusPending JobStatus = "PENDING"
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailed  JobStatus = "FAILED"
)

// Job is a unit of scheduled work
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// JobFunc adapts a function to Job
type JobFunc struct {
	JobName string
	Fn      func(ctx context.Context) error
}

// Name implements Job
func (j JobFunc) Name() string { return j.JobName }

// Run implements Job
func (j JobFunc) Run(ctx context.Context) error { return j.Fn(ctx) }

// RunRecord tracks the state of one registered job
type RunRecord struct {
	Name        string
	Spec        string
	Status      JobStatus
	Error       string
	StartedAt   *time.Time
	CompletedAt *time.Time
	NextRunAt   *time.Time
	Runs        int
}

// SchedulerConfig holds scheduler configuration
type SchedulerConfig struct {
	Enabled    bool
	JobTimeout time.Duration
	Location   *time.Location
}

// DefaultSchedulerConfig returns default scheduler configuration
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Enabled:    true,
		JobTimeout: 5 * time.Minute,
		Location:   time.Local,
	}
}

type entry struct {
	job     Job
	id      cron.EntryID
	running bool
	record  RunRecord
}

// Scheduler runs jobs on cron schedules. A job never overlaps itself.
type Scheduler struct {
	config SchedulerConfig
	cron   *cron.Cron
	logger *zap.Logger

	mu        sync.Mutex
	entries   map[string]*entry
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	isRunning bool
}

// NewScheduler creates a new scheduler instance
func NewScheduler(config SchedulerConfig, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Location == nil {
		config.Location = time.Local
	}
	logger = logger.Named("scheduler")
	return &Scheduler{
		config:  config,
		logger:  logger,
		entries: make(map[string]*entry),
		cron: cron.New(
			cron.WithLocation(config.Location),
			cron.WithLogger(cronLogger{logger: logger.Sugar()}),
		),
	}
}

// Register adds job under a standard 5-field cron spec
func (s *Scheduler) Register(spec string, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.entries[job.Name()]; dup {
		return fmt.Errorf("%w: duplicate job %q", ErrInvalidConfig, job.Name())
	}

	e := &entry{job: job, record: RunRecord{Name: job.Name(), Spec: spec, Status: JobStatusPending}}
	id, err := s.cron.AddFunc(spec, func() { s.execute(e) })
	if err != nil {
		return fmt.Errorf("%w: invalid cron spec %q: %v", ErrInvalidConfig, spec, err)
	}
	e.id = id
	s.entries[job.Name()] = e

	s.logger.Info("Job registered", zap.String("job", job.Name()), zap.String("spec", spec))
	return nil
}

// Start starts the cron loop. ctx bounds every job run.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.config.Enabled {
		s.logger.Info("Scheduler disabled")
		return nil
	}
	if s.isRunning {
		return nil
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.isRunning = true
	s.cron.Start()

	s.logger.Info("Scheduler started",
		zap.Int("jobs", len(s.entries)),
		zap.Duration("job_timeout", s.config.JobTimeout))
	return nil
}

// Stop stops the cron loop and waits for running jobs, bounded by ctx
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	cronDone := s.cron.Stop()
	s.cancel()

	done := make(chan struct{})
	go func() {
		<-cronDone.Done()
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Scheduler stop timed out")
		return ctx.Err()
	}
}

// Trigger runs a registered job now and waits for it.
// It fails if the job is already running.
func (s *Scheduler) Trigger(name string) error {
	s.mu.Lock()
	e, ok := s.entries[name]
	running := s.isRunning
	s.mu.Unlock()

	if !ok {
		return ErrJobNotFound
	}
	if !running {
		return ErrSchedulerNotRunning
	}
	if !s.execute(e) {
		return ErrJobAlreadyRunning
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.record.Status == JobStatusFailed {
		return fmt.Errorf("job %s failed: %s", name, e.record.Error)
	}
	return nil
}

// Records returns a snapshot of every registered job
func (s *Scheduler) Records() []RunRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]RunRecord, 0, len(s.entries))
	for _, e := range s.entries {
		r := e.record
		if next := s.cron.Entry(e.id).Next; !next.IsZero() {
			r.NextRunAt = &next
		}
		out = append(out, r)
	}
	return out
}

// execute runs e once unless it is already running; it reports whether it ran
func (s *Scheduler) execute(e *entry) bool {
	s.mu.Lock()
	if e.running || s.ctx == nil {
		s.mu.Unlock()
		if e.running {
			s.logger.Warn("Job skipped, previous run still in progress", zap.String("job", e.job.Name()))
		}
		return false
	}
	e.running = true
	now := time.Now()
	e.record.Status = JobStatusRunning
	e.record.StartedAt = &now
	e.record.Error = ""
	parent := s.ctx
	s.wg.Add(1)
	s.mu.Unlock()

	defer s.wg.Done()

	err := s.runWithTimeout(parent, e.job)

	s.mu.Lock()
	defer s.mu.Unlock()
	finished := time.Now()
	e.running = false
	e.record.Runs++
	e.record.CompletedAt = &finished
	if err != nil {
		e.record.Status = JobStatusFailed
		e.record.Error = err.Error()
		s.logger.Error("Job failed",
			zap.String("job", e.job.Name()),
			zap.Duration("duration", finished.Sub(now)),
			zap.Error(err))
		return true
	}
	e.record.Status = JobStatusSuccess
	s.logger.Info("Job completed",
		zap.String("job", e.job.Name()),
		zap.Duration("duration", finished.Sub(now)))
	return true
}

func (s *Scheduler) runWithTimeout(parent context.Context, job Job) (err error) {
	ctx := parent
	if s.config.JobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(parent, s.config.JobTimeout)
		defer cancel()
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("job panicked: %v", rec)
		}
	}()
	return job.Run(ctx)
}

// cronLogger routes robfig/cron logs to zap
type cronLogger struct {
	logger *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}
