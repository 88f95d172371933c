package webhook

import (
	"log/slog"
)

// Outcome is the classification of one verified event: a severity, the
// identifiers worth observing, and the provider's failure detail when there
// is one. Routing never fails — every event, known or not, has an outcome.
type Outcome struct {
	Severity slog.Level
	Type     EventType
	RawType  string
	EmailID  string
	Detail   string // provider error detail for failed/bounced
}

// Router turns verified events into log records. It holds no mutable state.
type Router struct {
	logger *slog.Logger
}

// NewRouter constructs a Router that records outcomes on logger.
func NewRouter(logger *slog.Logger) *Router {
	return &Router{logger: logger}
}

// Route classifies the event, emits the corresponding log record, and returns
// the outcome. It is a total function over EventType: hard delivery failures
// are errors, reputation signals are warnings, everything else — including
// types this version does not recognize — is informational.
func (r *Router) Route(ev Event) Outcome {
	out := Outcome{
		Type:    ev.Type,
		RawType: ev.RawType,
		EmailID: ev.Data.EmailID,
	}

	switch ev.Type {
	case EventFailed, EventBounced:
		out.Severity = slog.LevelError
		out.Detail = ev.Data.Error
	case EventDeliveryDelayed, EventComplained, EventSuppressed:
		out.Severity = slog.LevelWarn
	case EventSent, EventDelivered, EventClicked, EventScheduled,
		EventOpened, EventReceived:
		out.Severity = slog.LevelInfo
	case EventUnknown:
		out.Severity = slog.LevelInfo
	default:
		// New enum members must be classified above.
		out.Severity = slog.LevelInfo
	}

	attrs := []any{
		"type", ev.RawType,
		"email_id", ev.Data.EmailID,
	}
	if out.Detail != "" {
		attrs = append(attrs, "detail", out.Detail)
	}

	switch out.Severity {
	case slog.LevelError:
		r.logger.Error("webhook: event", attrs...)
	case slog.LevelWarn:
		r.logger.Warn("webhook: event", attrs...)
	default:
		r.logger.Info("webhook: event", attrs...)
	}

	return out
}
