package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/nguyentantai21042004/meeting-notes/internal/records"
	"github.com/nguyentantai21042004/meeting-notes/internal/transcript"
)

// event is the storage notification payload.
type event struct {
	Key string `json:"key"`
}

// Start consumes events until ctx is cancelled. A failed event is not
// committed: the reader is reopened at the last committed offset so the
// event is delivered again.
func (c *implConsumer) Start(ctx context.Context) error {
	c.logger.Info(ctx, "Kafka consumer started")

	for {
		reader := c.current()

		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info(ctx, "Kafka consumer stopped")
				return ctx.Err()
			}
			return fmt.Errorf("fetch message: %w", err)
		}

		key, err := decodeEvent(msg.Value)
		if err != nil {
			c.logger.Warn(ctx, "Skipping undecodable event at %s/%d@%d: %v", msg.Topic, msg.Partition, msg.Offset, err)
			if err := reader.CommitMessages(ctx, msg); err != nil {
				return fmt.Errorf("commit message: %w", err)
			}
			continue
		}

		err = c.handler(ctx, key)
		switch {
		case err == nil:
		case isPermanent(err):
			c.logger.Error(ctx, "Dropping %s, it can never succeed: %v", key, err)
		default:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Error(ctx, "Failed to process %s, will retry in %s: %v", key, c.backoff, err)
			if err := c.rewind(ctx); err != nil {
				return err
			}
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			return fmt.Errorf("commit message: %w", err)
		}
	}
}

func (c *implConsumer) Stop() error {
	return c.current().Close()
}

func (c *implConsumer) current() messageReader {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reader
}

// rewind waits for the backoff and replaces the reader so fetching resumes
// from the group's committed offset.
func (c *implConsumer) rewind(ctx context.Context) error {
	select {
	case <-time.After(c.backoff):
	case <-ctx.Done():
		return ctx.Err()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.reader.Close(); err != nil {
		c.logger.Warn(ctx, "Closing reader before retry: %v", err)
	}
	c.reader = c.newReader()
	return nil
}

func decodeEvent(data []byte) (string, error) {
	var e event
	if err := json.Unmarshal(data, &e); err != nil {
		return "", err
	}
	if e.Key == "" {
		return "", fmt.Errorf("event has no key")
	}
	return e.Key, nil
}

// isPermanent reports failures caused by the object itself, or by a
// transcript whose record was never created; redelivery would fail the
// same way and block the partition.
func isPermanent(err error) bool {
	return errors.Is(err, transcript.ErrMalformedKey) ||
		errors.Is(err, transcript.ErrMalformedTranscript) ||
		errors.Is(err, transcript.ErrMalformedRecordID) ||
		errors.Is(err, records.ErrRecordNotFound)
}

var _ messageReader = (*kafka.Reader)(nil)
