package minutes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/orbita/backend/internal/domain/identity"
	"github.com/orbita/backend/internal/domain/meeting"
	"github.com/orbita/backend/internal/infrastructure/printing"
	"github.com/orbita/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ReminderJobName identifies the daily reminder in the scheduler
const ReminderJobName = "meeting-reminder"

// DefaultReminderCron runs the reminder every day at 07:00
const DefaultReminderCron = "0 7 * * *"

// ReminderJob emails the members of every active meeting scheduled today
// that has not started yet.
type ReminderJob struct {
	meetings meeting.Repository
	emitter  *Emitter
	metrics  *telemetry.Metrics
	logger   *zap.Logger
	now      func() time.Time
}

// NewReminderJob creates a new ReminderJob
func NewReminderJob(meetings meeting.Repository, emitter *Emitter, metrics *telemetry.Metrics, logger *zap.Logger) *ReminderJob {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderJob{
		meetings: meetings,
		emitter:  emitter,
		metrics:  metrics,
		logger:   logger.Named("reminder"),
		now:      time.Now,
	}
}

// Name implements scheduler.Job
func (j *ReminderJob) Name() string {
	return ReminderJobName
}

// Run implements scheduler.Job. One failed meeting does not stop the others.
func (j *ReminderJob) Run(ctx context.Context) (err error) {
	defer func() { j.metrics.JobRun(ReminderJobName, err) }()

	if !j.emitter.settings.Get().Configured() {
		j.logger.Debug("Reminder skipped: email not configured")
		return nil
	}

	today := j.now().Format(meeting.DateLayout)
	due, err := j.meetings.FindAll(ctx, meeting.Filter{
		Status: string(meeting.StatusNotStarted),
		Caller: identity.Anonymous,
	})
	if err != nil {
		return fmt.Errorf("failed to list meetings: %w", err)
	}

	var errs []error
	sent := 0
	for _, m := range due {
		if !m.Active || m.Date != today {
			continue
		}
		if err := j.emitter.SendSummary(ctx, m, printing.HeadlineReminder, nil); err != nil {
			if errors.Is(err, ErrNoRecipients) {
				continue
			}
			j.logger.Warn("Failed to send reminder",
				zap.String("meeting_id", m.ID.String()),
				zap.Error(err))
			errs = append(errs, fmt.Errorf("meeting %s: %w", m.ID, err))
			continue
		}
		sent++
	}

	j.logger.Info("Reminders sent", zap.String("date", today), zap.Int("sent", sent), zap.Int("failed", len(errs)))
	return errors.Join(errs...)
}
