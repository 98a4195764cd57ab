package meeting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/orbita/backend/internal/domain/meeting"
	"github.com/orbita/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// DefaultNotifyTimeout bounds the post-completion delivery
const DefaultNotifyTimeout = 60 * time.Second

// Notifier delivers the minutes of a completed meeting.
// Implementations report failures in the outcome instead of returning them.
type Notifier interface {
	Notify(ctx context.Context, m *meeting.Meeting) meeting.NotifyOutcome
}

// LifecycleService runs the start and complete transitions
type LifecycleService struct {
	core
	notifier      Notifier
	notifyTimeout time.Duration
}

// NewLifecycleService creates a new LifecycleService. notifier may be nil.
func NewLifecycleService(d Deps, notifier Notifier, notifyTimeout time.Duration) *LifecycleService {
	if notifyTimeout <= 0 {
		notifyTimeout = DefaultNotifyTimeout
	}
	return &LifecycleService{
		core:          newCore(d),
		notifier:      notifier,
		notifyTimeout: notifyTimeout,
	}
}

// Start moves the meeting to in_progress, or resumes it
func (s *LifecycleService) Start(ctx context.Context, id uuid.UUID, callerRaw string, req StartMeetingRequest) (*meeting.Meeting, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "meeting", "start",
		telemetry.WithAttribute(telemetry.SpanAttrMeetingID, id.String()))
	defer span.End()

	caller := s.Caller(callerRaw)
	telemetry.SetAttributes(span, telemetry.SpanAttrCallerKey, caller.String())
	var present []string
	if req.PresentMembers != nil {
		present = s.resolver.ResolveAll(req.PresentMembers)
	}

	m, err := s.mutate(ctx, id, func(m *meeting.Meeting) error {
		return m.Start(caller, present, req.UserDirectory, s.now())
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrMeetingStatus, string(m.Status))
	s.metrics.MeetingTransition(string(meeting.StatusInProgress))
	s.logger.Info("Meeting started",
		zap.String("meeting_id", id.String()),
		zap.String("caller", caller.String()),
		zap.Int("present", len(m.PresentMembers)))
	return m, nil
}

// Complete closes the meeting, then delivers the minutes.
// The delivery runs after the commit, detached from ctx cancellation,
// and its failure only shows up in the result.
func (s *LifecycleService) Complete(ctx context.Context, id uuid.UUID, callerRaw string, req CompleteMeetingRequest) (*meeting.CompleteResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "meeting", "complete",
		telemetry.WithAttribute(telemetry.SpanAttrMeetingID, id.String()))
	defer span.End()

	caller := s.Caller(callerRaw)
	telemetry.SetAttributes(span, telemetry.SpanAttrCallerKey, caller.String())
	m, err := s.mutate(ctx, id, func(m *meeting.Meeting) error {
		return m.Complete(caller, req.duration(), s.now())
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrMeetingStatus, string(m.Status))
	s.metrics.MeetingTransition(string(meeting.StatusCompleted))
	s.logger.Info("Meeting completed",
		zap.String("meeting_id", id.String()),
		zap.String("caller", caller.String()))

	outcome := s.notify(ctx, m)
	telemetry.SetAttributes(span, "mail.sent", outcome.EmailSent)
	return &meeting.CompleteResult{Meeting: m, Notification: outcome}, nil
}

func (s *LifecycleService) notify(ctx context.Context, m *meeting.Meeting) (outcome meeting.NotifyOutcome) {
	if s.notifier == nil {
		return meeting.NotifyFailed("email não configurado")
	}

	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
	defer cancel()
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("Minutes delivery panicked",
				zap.String("meeting_id", m.ID.String()),
				zap.Any("panic", rec))
			outcome = meeting.NotifyFailed(fmt.Sprintf("falha inesperada: %v", rec))
		}
	}()

	outcome = s.notifier.Notify(nctx, m.Clone())
	if !outcome.EmailSent {
		s.logger.Warn("Minutes not delivered",
			zap.String("meeting_id", m.ID.String()),
			zap.String("reason", outcome.EmailError))
	}
	return outcome
}
