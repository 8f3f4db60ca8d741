package genai

import (
	"context"
	"strings"
	"time"

	"github.com/foti-africa/foti-web/internal/errors"
	"github.com/foti-africa/foti-web/internal/logger"
	"github.com/foti-africa/foti-web/internal/metrics"
	"github.com/foti-africa/foti-web/internal/sentry"
)

// Reply is the assistant's answer to one user message.
type Reply struct {
	Text    string
	IsError bool // render with error styling
}

// Forwarder turns a ChatProvider into a call that cannot fail: every
// failure becomes one of the fixed replies.
type Forwarder struct {
	provider ChatProvider // nil = not configured
	metrics  *metrics.Metrics
	logger   *logger.Logger
	wrap     *errors.ErrorWrapper
}

// NewForwarder creates a Forwarder. provider and m may be nil.
func NewForwarder(provider ChatProvider, m *metrics.Metrics, log *logger.Logger) *Forwarder {
	return &Forwarder{
		provider: provider,
		metrics:  m,
		logger:   log.WithModule("genai"),
		wrap:     errors.NewWrapper("genai", "forward"),
	}
}

// Enabled reports whether a provider is configured.
func (f *Forwarder) Enabled() bool { return f.provider != nil }

// ProviderName returns the configured provider, or "none".
func (f *Forwarder) ProviderName() string {
	if f.provider == nil {
		return "none"
	}
	return f.provider.Provider().String()
}

// Forward sends text with history as context and returns the reply.
// It makes at most one outbound call and never returns an error.
func (f *Forwarder) Forward(ctx context.Context, history []Message, text string) Reply {
	if f.provider == nil {
		f.record("unconfigured", 0)
		return Reply{Text: ReplyUnconfigured, IsError: true}
	}

	start := time.Now()
	out, err := f.provider.Reply(ctx, history, text)
	elapsed := time.Since(start)

	if err != nil {
		kind := ClassifyError(err)
		wrapped := f.wrap.Wrap(err, ReplyUnavailable)
		f.logger.WithError(wrapped).
			WithField("provider", f.ProviderName()).
			WithField("kind", string(kind)).
			WithField("duration_ms", elapsed.Milliseconds()).
			WarnContext(ctx, "Chat provider call failed")
		if kind != KindCanceled {
			sentry.CaptureExceptionWithContext(ctx, wrapped)
		}
		f.record("error", elapsed)
		return Reply{Text: errors.GetUserMessage(wrapped, ReplyUnavailable), IsError: true}
	}

	if strings.TrimSpace(out) == "" {
		f.record("empty", elapsed)
		return Reply{Text: ReplyEmpty}
	}

	f.record("success", elapsed)
	return Reply{Text: out}
}

func (f *Forwarder) record(outcome string, elapsed time.Duration) {
	if f.metrics != nil {
		f.metrics.RecordChat(f.ProviderName(), outcome, elapsed.Seconds())
	}
}

// Close releases the provider.
func (f *Forwarder) Close() error {
	if f.provider == nil {
		return nil
	}
	return f.provider.Close()
}
