// Package events publishes storefront domain events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"extendbee/internal/cart/models"
	"extendbee/internal/platform/kafka/producer"
)

// TopicCheckoutSubmitted carries one message per submitted checkout.
const TopicCheckoutSubmitted = "storefront.checkout.submitted"

// Publisher emits storefront events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	CheckoutSubmitted(ctx context.Context, submission models.CheckoutSubmission) error
}

// envelope is the wire format shared by all storefront events.
type envelope struct {
	EventID    string `json:"event_id"`
	EventType  string `json:"event_type"`
	OccurredAt string `json:"occurred_at"`
	Payload    any    `json:"payload"`
}

// KafkaPublisher publishes events through the shared Kafka producer.
type KafkaPublisher struct {
	producer *producer.Producer
	logger   *slog.Logger
}

// NewKafka constructs a Kafka-backed publisher.
func NewKafka(p *producer.Producer, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: p, logger: logger}
}

// CheckoutSubmitted publishes the submission keyed by tenant slug, so one
// tenant's checkouts stay ordered within a partition.
func (k *KafkaPublisher) CheckoutSubmitted(ctx context.Context, submission models.CheckoutSubmission) error {
	value, err := json.Marshal(envelope{
		EventID:    uuid.NewString(),
		EventType:  "checkout.submitted",
		OccurredAt: time.Now().UTC().Format(time.RFC3339Nano),
		Payload:    submission,
	})
	if err != nil {
		return fmt.Errorf("encode checkout event: %w", err)
	}

	err = k.producer.Produce(ctx, &producer.Message{
		Topic: TopicCheckoutSubmitted,
		Key:   []byte(submission.TenantSlug.String()),
		Value: value,
		Headers: map[string]string{
			"content-type": "application/json",
		},
	})
	if err != nil {
		return fmt.Errorf("publish checkout event: %w", err)
	}

	k.logger.InfoContext(ctx, "checkout event published",
		"topic", TopicCheckoutSubmitted,
		"tenant_slug", submission.TenantSlug,
		"cart_id", submission.CartID,
	)
	return nil
}

// NoopPublisher drops events, used when Kafka is not configured.
type NoopPublisher struct{}

func (NoopPublisher) CheckoutSubmitted(context.Context, models.CheckoutSubmission) error {
	return nil
}
