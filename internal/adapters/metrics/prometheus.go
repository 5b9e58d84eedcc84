package metrics

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/vodkadao/daoctl/internal/domain"
	"github.com/vodkadao/daoctl/internal/usecase"
)

const namespace = "daoctl"

// Governance counts engine operations by outcome on a private registry
type Governance struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
}

// NewGovernance creates the collectors and registers them on a fresh registry
func NewGovernance() *Governance {
	g := &Governance{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Governance operations by name and outcome.",
		}, []string{"operation", "outcome"}),
	}
	g.registry.MustRegister(g.operations)
	return g
}

// Registry exposes the registry for gathering
func (g *Governance) Registry() *prometheus.Registry {
	return g.registry
}

// Operations exposes the counter for tests
func (g *Governance) Operations() *prometheus.CounterVec {
	return g.operations
}

// ObserveOperation increments the counter for operation with the outcome derived from err
func (g *Governance) ObserveOperation(operation string, err error) {
	g.operations.WithLabelValues(operation, Outcome(err)).Inc()
}

// Push sends the gathered metrics to a Prometheus pushgateway
func (g *Governance) Push(ctx context.Context, url string) error {
	if err := push.New(url, namespace).Gatherer(g.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics: %w", err)
	}
	return nil
}

// Outcome names the result of an operation for the outcome label
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrVotingClosed):
		return "voting_closed"
	case errors.Is(err, domain.ErrVotingStillOpen):
		return "voting_open"
	case errors.Is(err, domain.ErrAlreadyVoted):
		return "already_voted"
	case errors.Is(err, domain.ErrAlreadyExecuted):
		return "already_executed"
	case errors.Is(err, domain.ErrExecutionFailed):
		return "execution_failed"
	case errors.Is(err, domain.ErrInvalidChoice), errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_input"
	default:
		return "error"
	}
}

var _ usecase.GovernanceMetrics = (*Governance)(nil)
