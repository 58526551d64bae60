package notifier

import (
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/nguyentantai21042004/meeting-notes/internal/logger"
)

// Config holds Kafka notification settings. With Enabled false or no
// brokers, messages are only logged.
type Config struct {
	Brokers []string
	Topic   string
	Enabled bool
}

type implKafka struct {
	writer  *kafka.Writer
	topic   string
	enabled bool
	log     logger.Logger
}

// New creates a notifier that publishes messages to a Kafka topic consumed
// by the mail delivery service.
func New(cfg Config, log logger.Logger) Notifier {
	if !cfg.Enabled || len(cfg.Brokers) == 0 {
		return &implKafka{topic: cfg.Topic, log: log}
	}

	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
		Transport:    &kafka.Transport{Dial: dialer.DialFunc},
	}

	return &implKafka{
		writer:  writer,
		topic:   cfg.Topic,
		enabled: true,
		log:     log,
	}
}
