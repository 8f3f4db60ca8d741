package feedback

import (
	"context"
	"fmt"
	"time"

	"github.com/foti-africa/foti-web/internal/logger"
	"github.com/foti-africa/foti-web/internal/metrics"
)

// Service accepts feedback submissions.
type Service struct {
	delay   time.Duration
	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewService creates a Service. delay simulates transmission time; m may be nil.
func NewService(delay time.Duration, m *metrics.Metrics, log *logger.Logger) *Service {
	return &Service{
		delay:   delay,
		metrics: m,
		logger:  log.WithModule("feedback"),
	}
}

// Submit validates form and waits out the simulated transmission.
// It returns the validation errors for an invalid form and ctx.Err() if
// ctx ends first. Nothing is transmitted or stored.
func (s *Service) Submit(ctx context.Context, form Form) error {
	if err := form.Validate(); err != nil {
		s.record(form.Type, "invalid")
		return err
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		s.record(form.Type, "canceled")
		return fmt.Errorf("submit feedback: %w", ctx.Err())
	case <-timer.C:
	}

	s.record(form.Type, "success")
	// Only the shape of the submission is logged, never its content.
	s.logger.WithField("type", string(form.Type)).
		WithField("message_length", len(form.Message)).
		WithField("has_email", form.Email != "").
		InfoContext(ctx, "Feedback received")
	return nil
}

func (s *Service) record(t Type, status string) {
	if s.metrics == nil {
		return
	}
	label := string(t)
	if !isKnownType(t) {
		label = "invalid"
	}
	s.metrics.RecordFeedback(label, status)
}

func isKnownType(t Type) bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}
