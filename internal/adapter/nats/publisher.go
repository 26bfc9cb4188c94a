package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/yogeshkhant77/Booksy/internal/app/config"
	"github.com/yogeshkhant77/Booksy/internal/platform/logger"
)

// Envelope wraps every published event with an ID and timestamp so
// downstream consumers can dedupe and order.
type Envelope struct {
	ID         string      `json:"id"`
	Subject    string      `json:"subject"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

type Publisher struct {
	nc  *nats.Conn
	log logger.Logger
}

func NewPublisher(cfg config.NATSConfig, log logger.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Info("NATS connection closed")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Infof("NATS reconnected to %s", nc.ConnectedUrl())
		}),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warnf("NATS disconnected: %v", err)
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	log.Infof("connected to NATS at %s", nc.ConnectedUrl())

	return &Publisher{nc: nc, log: log.With("adapter", "nats")}, nil
}

func (p *Publisher) Publish(ctx context.Context, subject string, payload interface{}) error {
	env := Envelope{
		ID:         uuid.NewString(),
		Subject:    subject,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}

	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal event for %s: %w", subject, err)
	}

	if err := p.nc.Publish(subject, data); err != nil {
		p.log.Errorf("failed to publish %s: %v", subject, err)
		return fmt.Errorf("failed to publish NATS message for %s: %w", subject, err)
	}

	p.log.Debugf("published %s event %s", subject, env.ID)
	return nil
}

func (p *Publisher) Close() {
	if p.nc != nil && !p.nc.IsClosed() {
		if err := p.nc.Drain(); err != nil {
			p.log.Errorf("error draining NATS connection: %v", err)
		}
		p.nc.Close()
	}
}
