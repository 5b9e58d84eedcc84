package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/vodkadao/daoctl/internal/domain"
	"github.com/vodkadao/daoctl/internal/domain/config"
	"github.com/vodkadao/daoctl/internal/usecase"
)

// LogPublisher writes every event to the structured log
type LogPublisher struct {
	log *slog.Logger
}

// NewLogPublisher creates a publisher backed by log
func NewLogPublisher(log *slog.Logger) *LogPublisher {
	return &LogPublisher{log: log.With("component", "events")}
}

func (p *LogPublisher) Publish(ctx context.Context, event domain.Event) error {
	p.log.InfoContext(ctx, event.Payload.String(), "event", event.Type, "id", event.ID)
	return nil
}

// Conn is the part of a NATS connection the publisher needs
type Conn interface {
	Publish(subject string, data []byte) error
}

// NATSPublisher sends JSON envelopes to <subject>.<event type>
type NATSPublisher struct {
	conn    Conn
	subject string
}

// NewNATSPublisher creates a publisher on conn under the subject prefix
func NewNATSPublisher(conn Conn, subject string) *NATSPublisher {
	if subject == "" {
		subject = config.DefaultEventsSubject
	}
	return &NATSPublisher{conn: conn, subject: strings.TrimSuffix(subject, ".")}
}

// Subject returns the subject an event type is published on
func (p *NATSPublisher) Subject(t domain.EventType) string {
	return p.subject + "." + string(t)
}

func (p *NATSPublisher) Publish(ctx context.Context, event domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", event.ID, err)
	}
	if err := p.conn.Publish(p.Subject(event.Type), data); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}
	return nil
}

// Multi fans an event out to every publisher and joins their errors
type Multi []usecase.EventPublisher

func (m Multi) Publish(ctx context.Context, event domain.Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ProvidePublisher always logs events and also publishes to NATS when a URL is configured
func ProvidePublisher(cfg *config.RuntimeConfig, log *slog.Logger) (usecase.EventPublisher, func(), error) {
	publishers := Multi{NewLogPublisher(log)}
	if cfg.Events.NATSURL == "" {
		return publishers, func() {}, nil
	}

	opts := []nats.Option{nats.Name("daoctl")}
	if cfg.Timeout > 0 {
		opts = append(opts, nats.Timeout(cfg.Timeout))
	}
	conn, err := nats.Connect(cfg.Events.NATSURL, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to NATS: %w", err)
	}
	publishers = append(publishers, NewNATSPublisher(conn, cfg.Events.Subject))

	cleanup := func() {
		if err := conn.Drain(); err != nil {
			log.Warn("failed to drain NATS connection", "error", err)
			conn.Close()
		}
	}
	return publishers, cleanup, nil
}

var (
	_ usecase.EventPublisher = (*LogPublisher)(nil)
	_ usecase.EventPublisher = (*NATSPublisher)(nil)
	_ usecase.EventPublisher = Multi(nil)
	_ Conn                   = (*nats.Conn)(nil)
)
