package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadEventPayload announces a committed stage transition to the outbound
// automation pipeline (follow-up sequencing, CRM sync).
type LeadEventPayload struct {
	LeadID     string    `json:"lead_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	FromStage  string    `json:"from_stage"`
	ToStage    string    `json:"to_stage"`
	PreviewURL string    `json:"preview_url,omitempty"`
	Origin     string    `json:"origin"`
	OccurredAt time.Time `json:"occurred_at"`
}

type EventProducer interface {
	PublishLeadEvent(ctx context.Context, payload LeadEventPayload) error
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Conn: conn, Ch: ch}
}

func (p *RabbitMQProducer) PublishLeadEvent(ctx context.Context, payload LeadEventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal lead event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish lead event: %w", err)
	}
	return nil
}

// LogProducer stands in when no broker is configured: events are logged
// and dropped. Lifecycle transitions never depend on the broker.
type LogProducer struct {
	Log *slog.Logger
}

func (p *LogProducer) PublishLeadEvent(ctx context.Context, payload LeadEventPayload) error {
	p.Log.Info("lead event (no broker configured)",
		slog.String("lead_id", payload.LeadID),
		slog.String("from", payload.FromStage),
		slog.String("to", payload.ToStage),
		slog.String("origin", payload.Origin),
	)
	return nil
}
