package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/vodkadao/daoctl/internal/domain"
)

// Notifier publishes governance events and records operation outcomes.
// Publish failures are logged and never fail the operation that produced the event.
type Notifier struct {
	publisher EventPublisher
	metrics   GovernanceMetrics
	log       *slog.Logger
}

// NewNotifier creates a notifier
func NewNotifier(publisher EventPublisher, metrics GovernanceMetrics, log *slog.Logger) *Notifier {
	return &Notifier{publisher: publisher, metrics: metrics, log: log}
}

// Publish wraps payload in an envelope and sends it
func (n *Notifier) Publish(ctx context.Context, payload domain.GovernanceEvent, at time.Time) {
	event := domain.NewEvent(payload, at)
	if err := n.publisher.Publish(ctx, event); err != nil {
		n.log.WarnContext(ctx, "failed to publish event", "event", event.Type, "id", event.ID, "error", err)
	}
}

// Observe records the outcome of operation
func (n *Notifier) Observe(operation string, err error) {
	n.metrics.ObserveOperation(operation, err)
}
