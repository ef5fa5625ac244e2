package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/acmeshop/checkout/internal/domain"
	"github.com/acmeshop/checkout/internal/port"
)

// subjectNewOrder labels the event type on every published message.
const subjectNewOrder = "NewOrder"

type QueueConfig struct {
	// Brokers is a comma-separated list of broker addresses.
	Brokers string
	Topic   string
}

type queuePublisher struct {
	brokers []string
	topic   string
}

func NewQueuePublisher(cfg QueueConfig) (port.QueuePublisher, error) {
	var brokers []string
	for _, b := range strings.Split(cfg.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	if len(brokers) == 0 {
		return nil, fmt.Errorf("brokers is empty")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("topic is empty")
	}

	return &queuePublisher{
		brokers: brokers,
		topic:   cfg.Topic,
	}, nil
}

// Publish serializes the payload and submits it to the configured topic.
// The writer is scoped to the call: a fresh connection per publish,
// closed on every exit path.
func (p *queuePublisher) Publish(ctx context.Context, payload domain.NotificationPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(p.brokers...),
		Topic:        p.topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
	defer writer.Close()

	msg := kafka.Message{
		Key:   []byte(payload.ID.String()),
		Value: body,
		Time:  time.Now().UTC(),
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
			{Key: "subject", Value: []byte(subjectNewOrder)},
			{Key: "message-id", Value: []byte(payload.ID.String())},
		},
	}

	if err := writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("writer.WriteMessages: %w", err)
	}

	return nil
}
