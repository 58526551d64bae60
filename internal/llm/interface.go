package llm

import (
	"context"
	"errors"
)

// ErrEmptyCompletion is returned when the model answers without any text.
var ErrEmptyCompletion = errors.New("empty completion")

// ErrTruncatedCompletion is returned when the model stopped for any reason
// other than finishing its answer, such as the output token limit or safety.
var ErrTruncatedCompletion = errors.New("truncated completion")

// Completer is a synchronous text-completion capability with a bounded
// context window. Implementations do not retry.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
