package watcher

import "context"

// Watcher defines the interface for storage event monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler handles a newly stored object, identified by its storage key
type EventHandler func(ctx context.Context, objectKey string) error
