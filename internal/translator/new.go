package translator

import (
	"github.com/nguyentantai21042004/meeting-notes/internal/llm"
	"github.com/nguyentantai21042004/meeting-notes/internal/logger"
)

// TargetLanguage is the only language transcripts are translated into.
const TargetLanguage = "en"

const defaultSegmentChars = 2000

type implLLM struct {
	completer    llm.Completer
	segmentChars int
}

// NewLLM creates a Translator backed by a text-completion capability.
// Text longer than segmentChars is translated sentence-aligned segment by
// segment so each answer fits the model's output budget.
func NewLLM(completer llm.Completer, segmentChars int) Translator {
	if segmentChars <= 0 {
		segmentChars = defaultSegmentChars
	}
	return &implLLM{
		completer:    completer,
		segmentChars: segmentChars,
	}
}

type implFallback struct {
	translator Translator
	logger     logger.Logger
}

func NewFallback(t Translator, log logger.Logger) Fallback {
	return &implFallback{
		translator: t,
		logger:     log,
	}
}
