package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/nguyentantai21042004/meeting-notes/internal/document"
	"github.com/nguyentantai21042004/meeting-notes/internal/models"
	"github.com/nguyentantai21042004/meeting-notes/internal/persister"
	"github.com/nguyentantai21042004/meeting-notes/internal/transcript"
)

// Process orchestrates the notes pipeline for one transcription object.
// Any error is fatal for the invocation and nothing partial is persisted.
func (p *implProcessor) Process(ctx context.Context, objectKey string) (err error) {
	startTime := time.Now()
	log := p.logger.With("run_id", uuid.NewString()).With("object_key", objectKey)

	defer func() {
		p.metrics.RecordRun(StageOf(err), time.Since(startTime).Seconds())
		if err != nil {
			log.Error(ctx, "Processing failed: %v", err)
		}
	}()

	log.Info(ctx, "Starting notes pipeline for %s", objectKey)

	// Step 1: Parse the object key
	key, err := transcript.ParseObjectKey(objectKey)
	if err != nil {
		return stageError(StageParse, err)
	}
	if key.Prefix != p.transcriptsPrefix || key.Extension != "json" {
		return stageError(StageParse, fmt.Errorf("%w: %q is not a transcription result", transcript.ErrMalformedKey, objectKey))
	}

	// Step 2: Fetch and decode the transcription result
	data, err := p.deps.Objects.Get(ctx, objectKey)
	if err != nil {
		return stageError(StageFetch, err)
	}
	result, err := transcript.Decode(data)
	if err != nil {
		return stageError(StageDecode, err)
	}
	log.Info(ctx, "Decoded transcript: %d characters, %d items, language %s",
		len(result.Transcript), len(result.Items), result.LanguageCode)

	// Step 3: Speaker turns and chunks
	turns := transcript.BuildTurns(result.Items)
	chunks := p.deps.Chunker.Split(result.Transcript)
	p.metrics.ChunksPerRun.Observe(float64(len(chunks)))
	log.Info(ctx, "Built %d speaker turns and %d chunks", len(turns), len(chunks))

	// Step 4: Summarise and translate; the two have no data dependency
	var (
		summary     models.SummaryResult
		translation *models.TranslationResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = p.deps.Summarizer.Summarize(gctx, chunks)
		return stageError(StageSummarize, err)
	})
	g.Go(func() error {
		var err error
		translation, err = p.deps.Translator.Translate(gctx, result.Transcript, result.LanguageCode)
		return stageError(StageTranslate, err)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	// Step 5: Assemble and persist
	doc := document.Assemble(document.Input{
		Transcript:  result.Transcript,
		Turns:       turns,
		Summary:     summary,
		Translation: translation,
	})

	err = p.deps.Persister.Persist(ctx, persister.Input{
		TranscriptID: key.TranscriptID,
		Summary:      summary,
		Translation:  translation,
		Document:     doc,
	})
	if err != nil {
		return stageError(StagePersist, err)
	}

	log.Info(ctx, "Processing completed in %s (sections: %v)", time.Since(startTime), doc.Titles())
	return nil
}
