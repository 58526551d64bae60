package processor

import (
	"fmt"

	"github.com/nguyentantai21042004/meeting-notes/internal/chunker"
	"github.com/nguyentantai21042004/meeting-notes/internal/logger"
	"github.com/nguyentantai21042004/meeting-notes/internal/metrics"
	"github.com/nguyentantai21042004/meeting-notes/internal/persister"
	"github.com/nguyentantai21042004/meeting-notes/internal/storage"
	"github.com/nguyentantai21042004/meeting-notes/internal/summarizer"
	"github.com/nguyentantai21042004/meeting-notes/internal/translator"
)

// Deps are the pipeline stages a Processor drives.
type Deps struct {
	Objects    storage.ObjectStore
	Chunker    chunker.Chunker
	Summarizer summarizer.Summarizer
	Translator translator.Fallback
	Persister  persister.Persister
}

type implProcessor struct {
	deps              Deps
	transcriptsPrefix string
	logger            logger.Logger
	metrics           *metrics.Metrics
}

// New creates a new Processor. Only keys under transcriptsPrefix are accepted.
func New(deps Deps, transcriptsPrefix string, log logger.Logger, m *metrics.Metrics) (Processor, error) {
	if deps.Objects == nil || deps.Chunker == nil || deps.Summarizer == nil || deps.Translator == nil || deps.Persister == nil {
		return nil, fmt.Errorf("all pipeline dependencies are required")
	}

	return &implProcessor{
		deps:              deps,
		transcriptsPrefix: transcriptsPrefix,
		logger:            log,
		metrics:           m,
	}, nil
}
