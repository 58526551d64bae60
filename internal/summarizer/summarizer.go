package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/nguyentantai21042004/meeting-notes/internal/models"
)

const (
	mapPrompt     = "%s\n\nWrite a few sentences in English summarizing the above:"
	combinePrompt = "%s\n\nWrite a detailed analysis, in English of the above with a maximum %d words:"

	partialSeparator = "\n\n"
)

const (
	phaseMap      = "map"
	phaseCollapse = "collapse"
	phaseReduce   = "reduce"
)

// ErrReduceDepthExceeded is returned when partial summaries still do not fit
// the combine context after the configured number of collapse levels.
var ErrReduceDepthExceeded = errors.New("reduce depth exceeded")

// Summarize maps every chunk to a short summary, then combines the ordered
// partial summaries into the final analysis. Any completion failure aborts
// the whole call.
func (s *implSummarizer) Summarize(ctx context.Context, chunks []models.Chunk) (models.SummaryResult, error) {
	if len(chunks) == 0 {
		s.logger.Info(ctx, "No chunks to summarize")
		return models.SummaryResult{}, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	s.logger.Info(ctx, "Map phase: %d chunks, concurrency %d", len(texts), s.opts.MaxConcurrent)
	partials, err := s.mapTexts(ctx, phaseMap, texts)
	if err != nil {
		return models.SummaryResult{}, fmt.Errorf("map phase: %w", err)
	}

	final, err := s.reduce(ctx, partials, 0)
	if err != nil {
		return models.SummaryResult{}, fmt.Errorf("reduce phase: %w", err)
	}

	result := models.SummaryResult{FinalSummary: final}
	if s.opts.ReturnIntermediateSteps {
		result.PartialSummaries = partials
	}
	return result, nil
}

// mapTexts summarises each text independently with the map prompt. Calls run
// concurrently up to MaxConcurrent; results keep the input order.
func (s *implSummarizer) mapTexts(ctx context.Context, phase string, texts []string) ([]string, error) {
	results := make([]string, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.MaxConcurrent)

	for i, text := range texts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			out, err := s.complete(gctx, phase, fmt.Sprintf(mapPrompt, text))
			if err != nil {
				return fmt.Errorf("chunk %d: %w", i, err)
			}
			results[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// reduce combines partial summaries. When they do not fit the combine
// context they are grouped, each group collapsed with the map prompt, and
// the collapsed summaries reduced again.
func (s *implSummarizer) reduce(ctx context.Context, partials []string, depth int) (string, error) {
	joined := strings.Join(partials, partialSeparator)
	if utf8.RuneCountInString(joined) <= s.opts.ReduceContextChars {
		s.metrics.ReduceDepthReached.Observe(float64(depth))
		return s.complete(ctx, phaseReduce, fmt.Sprintf(combinePrompt, joined, s.opts.MaxWords))
	}

	if depth >= s.opts.MaxReduceDepth {
		return "", fmt.Errorf("%w: %d partial summaries still span %d characters after %d levels",
			ErrReduceDepthExceeded, len(partials), utf8.RuneCountInString(joined), depth)
	}

	groups := s.group(partials)
	s.logger.Info(ctx, "Collapse level %d: %d partial summaries into %d groups", depth+1, len(partials), len(groups))

	collapsed, err := s.mapTexts(ctx, phaseCollapse, groups)
	if err != nil {
		return "", fmt.Errorf("collapse level %d: %w", depth+1, err)
	}
	return s.reduce(ctx, collapsed, depth+1)
}

// group packs consecutive partials into texts that fit the combine context.
// A partial that alone exceeds it is split into overlapping pieces.
func (s *implSummarizer) group(partials []string) []string {
	limit := s.opts.ReduceContextChars
	var groups []string
	var current []string
	size := 0

	flush := func() {
		if len(current) > 0 {
			groups = append(groups, strings.Join(current, partialSeparator))
			current = nil
			size = 0
		}
	}

	for _, p := range partials {
		n := utf8.RuneCountInString(p)
		if n > limit {
			flush()
			for _, c := range s.splitter.Split(p) {
				groups = append(groups, c.Text)
			}
			continue
		}

		extra := n
		if len(current) > 0 {
			extra += len(partialSeparator)
		}
		if size+extra > limit {
			flush()
			extra = n
		}
		current = append(current, p)
		size += extra
	}
	flush()

	return groups
}

func (s *implSummarizer) complete(ctx context.Context, phase, prompt string) (string, error) {
	start := time.Now()
	out, err := s.completer.Complete(ctx, prompt)
	s.metrics.RecordCompletion(phase, err, time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("%s completion: %w", phase, err)
	}
	return out, nil
}
