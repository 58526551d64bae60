package summarizer

import (
	"fmt"

	"github.com/nguyentantai21042004/meeting-notes/internal/chunker"
	"github.com/nguyentantai21042004/meeting-notes/internal/llm"
	"github.com/nguyentantai21042004/meeting-notes/internal/logger"
	"github.com/nguyentantai21042004/meeting-notes/internal/metrics"
)

type Options struct {
	// MaxWords bounds the final summary length requested from the model.
	MaxWords      int
	MaxConcurrent int
	// ReduceContextChars is the largest input the combine call accepts.
	ReduceContextChars int
	MaxReduceDepth     int
	// Separators are used when a single partial summary must be split.
	Separators              []string
	ReturnIntermediateSteps bool
}

type implSummarizer struct {
	completer llm.Completer
	splitter  chunker.Chunker
	opts      Options
	logger    logger.Logger
	metrics   *metrics.Metrics
}

// New creates a map-reduce Summarizer.
func New(completer llm.Completer, opts Options, log logger.Logger, m *metrics.Metrics) (Summarizer, error) {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 1
	}
	if opts.ReduceContextChars < 2 {
		return nil, fmt.Errorf("reduce context must be at least 2 characters, got %d", opts.ReduceContextChars)
	}

	splitter, err := chunker.New(chunker.Options{
		ChunkSize:  opts.ReduceContextChars,
		Overlap:    opts.ReduceContextChars / 2,
		Separators: opts.Separators,
	})
	if err != nil {
		return nil, fmt.Errorf("create reduce splitter: %w", err)
	}

	return &implSummarizer{
		completer: completer,
		splitter:  splitter,
		opts:      opts,
		logger:    log,
		metrics:   m,
	}, nil
}
