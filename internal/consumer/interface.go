package consumer

import "context"

// Consumer reads storage events from Kafka and runs the handler for each.
type Consumer interface {
	Start(ctx context.Context) error
	Stop() error
}

// Handler handles one stored object, identified by its storage key
type Handler func(ctx context.Context, objectKey string) error
