package ports

import (
	"context"

	"github.com/mercury-homes/lead-funnel/internal/core/domain"
)

// AlertSender delivers a lead alert to the sales team over one channel.
type AlertSender interface {
	// Name labels the channel in logs and metrics.
	Name() string
	Send(ctx context.Context, alert domain.LeadAlert) error
}
