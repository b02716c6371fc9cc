package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mercury-homes/lead-funnel/internal/core/domain"
)

// LogSender writes alerts to the log. Used when no SNS topic is configured.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Name() string { return "log" }

func (s *LogSender) Send(_ context.Context, alert domain.LeadAlert) error {
	s.log.Info().
		Str("kind", string(alert.Kind)).
		Str("application_id", alert.ApplicationID).
		Str("full_name", alert.FullName).
		Str("phone", alert.Phone).
		Str("summary", alert.Summary).
		Msg(alert.Subject())
	return nil
}
