package consumer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/nguyentantai21042004/meeting-notes/internal/logger"
)

// Config holds Kafka consumer settings.
type Config struct {
	Brokers []string
	Topic   string
	GroupID string
	// RetryBackoff is the pause before a failed event is fetched again.
	RetryBackoff time.Duration
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type implConsumer struct {
	newReader func() messageReader
	handler   Handler
	logger    logger.Logger
	backoff   time.Duration

	mu     sync.Mutex
	reader messageReader
}

// New creates a Consumer in cfg.GroupID. Offsets are committed only after
// the handler succeeds.
func New(cfg Config, handler Handler, log logger.Logger) (Consumer, error) {
	if len(cfg.Brokers) == 0 || cfg.Topic == "" || cfg.GroupID == "" {
		return nil, fmt.Errorf("brokers, topic and group id are required")
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 5 * time.Second
	}

	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}

	newReader := func() messageReader {
		return kafka.NewReader(kafka.ReaderConfig{
			Brokers:        cfg.Brokers,
			Topic:          cfg.Topic,
			GroupID:        cfg.GroupID,
			Dialer:         dialer,
			MinBytes:       1,
			MaxBytes:       1 << 20,
			CommitInterval: 0,
			StartOffset:    kafka.FirstOffset,
		})
	}

	return newWithReader(newReader, handler, log, cfg.RetryBackoff), nil
}

func newWithReader(newReader func() messageReader, handler Handler, log logger.Logger, backoff time.Duration) *implConsumer {
	return &implConsumer{
		newReader: newReader,
		handler:   handler,
		logger:    log,
		backoff:   backoff,
		reader:    newReader(),
	}
}
