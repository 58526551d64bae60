package llm

import (
	"context"
	"fmt"
	"sync/atomic"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/meeting-notes/internal/logger"
)

// GeminiConfig configures the Gemini-backed Completer.
type GeminiConfig struct {
	APIKeys         []string
	Model           string
	MaxOutputTokens int32
	Temperature     float32
}

type implGemini struct {
	clients []*genai.Client
	next    atomic.Uint64
	model   string
	genCfg  *genai.GenerateContentConfig
	logger  logger.Logger
}

// NewGemini creates a Completer that spreads calls round-robin over one
// client per API key.
func NewGemini(ctx context.Context, cfg GeminiConfig, log logger.Logger) (Completer, error) {
	if len(cfg.APIKeys) == 0 {
		return nil, fmt.Errorf("at least one API key is required")
	}

	clients := make([]*genai.Client, 0, len(cfg.APIKeys))
	for i, key := range cfg.APIKeys {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("create client for key %d: %w", i+1, err)
		}
		clients = append(clients, client)
	}

	return &implGemini{
		clients: clients,
		model:   cfg.Model,
		genCfg: &genai.GenerateContentConfig{
			Temperature:     genai.Ptr(cfg.Temperature),
			MaxOutputTokens: cfg.MaxOutputTokens,
			// Thinking tokens count against MaxOutputTokens.
			ThinkingConfig: &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)},
		},
		logger: log,
	}, nil
}
