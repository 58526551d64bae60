package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Complete sends the prompt to Gemini and returns the concatenated text parts
// of the first candidate. Answers that did not finish normally are errors.
func (g *implGemini) Complete(ctx context.Context, prompt string) (string, error) {
	idx := int((g.next.Add(1) - 1) % uint64(len(g.clients)))

	g.logger.Debug(ctx, "Gemini request on key %d (%d prompt chars)", idx+1, len(prompt))

	result, err := g.clients[idx].Models.GenerateContent(ctx, g.model, genai.Text(prompt), g.genCfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return responseText(result)
}

func responseText(result *genai.GenerateContentResponse) (string, error) {
	if result == nil || len(result.Candidates) == 0 {
		return "", ErrEmptyCompletion
	}

	candidate := result.Candidates[0]
	if reason := candidate.FinishReason; reason != "" && reason != genai.FinishReasonStop {
		return "", fmt.Errorf("%w: finish reason %s", ErrTruncatedCompletion, reason)
	}
	if candidate.Content == nil {
		return "", ErrEmptyCompletion
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil && part.Text != "" {
			b.WriteString(part.Text)
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
