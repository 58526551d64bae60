package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
)

func (n *implKafka) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("notification has no recipient")
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	if !n.enabled || n.writer == nil {
		n.log.Info(ctx, "Notification for %s (log-only): %s", msg.To, msg.Subject)
		return nil
	}

	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.To),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "eventType", Value: []byte("notes.compiled")},
		},
	})
	if err != nil {
		return fmt.Errorf("write notification to %s: %w", n.topic, err)
	}
	return nil
}

func (n *implKafka) Close() error {
	if n.writer == nil {
		return nil
	}
	return n.writer.Close()
}
