package processor

import "context"

// Processor runs the notes pipeline for one stored transcription object.
// Invocations share no mutable state and may run concurrently.
type Processor interface {
	Process(ctx context.Context, objectKey string) error
}
