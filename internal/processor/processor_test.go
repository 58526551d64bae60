package processor

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/nguyentantai21042004/meeting-notes/internal/chunker"
	"github.com/nguyentantai21042004/meeting-notes/internal/document"
	"github.com/nguyentantai21042004/meeting-notes/internal/logger"
	"github.com/nguyentantai21042004/meeting-notes/internal/metrics"
	"github.com/nguyentantai21042004/meeting-notes/internal/models"
	"github.com/nguyentantai21042004/meeting-notes/internal/persister"
	"github.com/nguyentantai21042004/meeting-notes/internal/storage"
	"github.com/nguyentantai21042004/meeting-notes/internal/transcript"
	"github.com/nguyentantai21042004/meeting-notes/internal/translator"
)

const englishTranscript = `{
  "results": {
    "language_code": "en-US",
    "transcripts": [{"transcript": "Hello there Hi"}],
    "items": [
      {"speaker_label": "spk_0", "alternatives": [{"content": "Hello"}]},
      {"speaker_label": "spk_0", "alternatives": [{"content": "there"}]},
      {"speaker_label": "spk_1", "alternatives": [{"content": "Hi"}]}
    ]
  }
}`

const frenchTranscript = `{
  "results": {
    "language_code": "fr-FR",
    "transcripts": [{"transcript": "Bonjour à tous"}],
    "items": [
      {"speaker_label": "spk_0", "alternatives": [{"content": "Bonjour"}]},
      {"speaker_label": "spk_0", "alternatives": [{"content": "à"}]},
      {"speaker_label": "spk_0", "alternatives": [{"content": "tous"}]}
    ]
  }
}`

type memStore map[string][]byte

func (m memStore) Put(_ context.Context, key string, data []byte) error {
	m[key] = data
	return nil
}

func (m memStore) Get(_ context.Context, key string) ([]byte, error) {
	data, ok := m[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return data, nil
}

type fakeSummarizer struct {
	err    error
	chunks []models.Chunk
}

func (f *fakeSummarizer) Summarize(_ context.Context, chunks []models.Chunk) (models.SummaryResult, error) {
	f.chunks = chunks
	if f.err != nil {
		return models.SummaryResult{}, f.err
	}
	return models.SummaryResult{FinalSummary: "A short greeting."}, nil
}

type translateCall struct {
	text, source, target string
}

type fakeTranslator struct {
	mu    sync.Mutex
	calls []translateCall
	err   error
}

func (f *fakeTranslator) Translate(_ context.Context, text, source, target string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, translateCall{text, source, target})
	if f.err != nil {
		return "", f.err
	}
	return "Hello everyone", nil
}

type capturingPersister struct {
	inputs []persister.Input
	err    error
}

func (c *capturingPersister) Persist(_ context.Context, in persister.Input) error {
	if c.err != nil {
		return c.err
	}
	c.inputs = append(c.inputs, in)
	return nil
}

type fixture struct {
	objects    memStore
	summarizer *fakeSummarizer
	translator *fakeTranslator
	persister  *capturingPersister
	metrics    *metrics.Metrics
	processor  Processor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	c, err := chunker.New(chunker.Options{ChunkSize: 1000, Overlap: 350, Separators: []string{"\n\n", "\n", ".", " "}})
	if err != nil {
		t.Fatalf("chunker.New() error = %v", err)
	}

	f := &fixture{
		objects: memStore{
			"transcripts/abc123_en.json": []byte(englishTranscript),
			"transcripts/abc123_fr.json": []byte(frenchTranscript),
		},
		summarizer: &fakeSummarizer{},
		translator: &fakeTranslator{},
		persister:  &capturingPersister{},
		metrics:    metrics.New(prometheus.NewRegistry()),
	}

	f.processor, err = New(Deps{
		Objects:    f.objects,
		Chunker:    c,
		Summarizer: f.summarizer,
		Translator: translator.NewFallback(f.translator, logger.Nop()),
		Persister:  f.persister,
	}, "transcripts", logger.Nop(), f.metrics)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return f
}

func TestProcessEnglishTranscript(t *testing.T) {
	f := newFixture(t)

	if err := f.processor.Process(context.Background(), "transcripts/abc123_en.json"); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if len(f.persister.inputs) != 1 {
		t.Fatalf("persisted %d times, want 1", len(f.persister.inputs))
	}
	in := f.persister.inputs[0]

	if in.TranscriptID != "abc123_en" {
		t.Errorf("TranscriptID = %q, want abc123_en", in.TranscriptID)
	}
	if in.Translation != nil {
		t.Error("English transcript should not be translated")
	}
	if len(f.translator.calls) != 0 {
		t.Errorf("translator called %d times, want 0", len(f.translator.calls))
	}

	text := in.Document.Text()
	if !strings.Contains(text, "spk_0 - Hello there\nspk_1 - Hi") {
		t.Errorf("document lacks the speaker turns:\n%s", text)
	}
	if strings.Contains(text, document.TitleTranslation) {
		t.Error("document should have no translation section")
	}

	if len(f.summarizer.chunks) != 1 || f.summarizer.chunks[0].Text != "Hello there Hi" {
		t.Errorf("summarizer chunks = %+v", f.summarizer.chunks)
	}
	if got := testutil.ToFloat64(f.metrics.RunsTotal); got != 1 {
		t.Errorf("runs metric = %v, want 1", got)
	}
}

func TestProcessFrenchTranscript(t *testing.T) {
	f := newFixture(t)

	if err := f.processor.Process(context.Background(), "transcripts/abc123_fr.json"); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if len(f.translator.calls) != 1 {
		t.Fatalf("translator called %d times, want 1", len(f.translator.calls))
	}
	call := f.translator.calls[0]
	if call.source != "fr" || call.target != "en" {
		t.Errorf("translated %s -> %s, want fr -> en", call.source, call.target)
	}

	doc := f.persister.inputs[0].Document
	titles := doc.Titles()
	if titles[len(titles)-1] != document.TitleTranslation {
		t.Errorf("last section = %q, want %q", titles[len(titles)-1], document.TitleTranslation)
	}
	if !strings.HasSuffix(doc.Text(), document.TitleTranslation+"\nHello everyone") {
		t.Errorf("document does not end with the translation:\n%s", doc.Text())
	}
}

func TestProcessFailures(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		setup     func(f *fixture)
		wantStage string
		wantErr   error
	}{
		{
			name:      "malformed key",
			key:       "abc123.json",
			wantStage: StageParse,
			wantErr:   transcript.ErrMalformedKey,
		},
		{
			name:      "wrong prefix",
			key:       "notes/abc123_en.json",
			wantStage: StageParse,
			wantErr:   transcript.ErrMalformedKey,
		},
		{
			name:      "missing object",
			key:       "transcripts/missing.json",
			wantStage: StageFetch,
			wantErr:   storage.ErrObjectNotFound,
		},
		{
			name:      "malformed transcript",
			key:       "transcripts/broken.json",
			setup:     func(f *fixture) { f.objects["transcripts/broken.json"] = []byte(`{"results": {}}`) },
			wantStage: StageDecode,
			wantErr:   transcript.ErrMalformedTranscript,
		},
		{
			name:      "summarizer failure",
			key:       "transcripts/abc123_en.json",
			setup:     func(f *fixture) { f.summarizer.err = errThrottled },
			wantStage: StageSummarize,
			wantErr:   errThrottled,
		},
		{
			name:      "translation failure",
			key:       "transcripts/abc123_fr.json",
			setup:     func(f *fixture) { f.translator.err = errThrottled },
			wantStage: StageTranslate,
			wantErr:   errThrottled,
		},
		{
			name:      "persist failure",
			key:       "transcripts/abc123_en.json",
			setup:     func(f *fixture) { f.persister.err = errThrottled },
			wantStage: StagePersist,
			wantErr:   errThrottled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}

			err := f.processor.Process(context.Background(), tt.key)
			if err == nil {
				t.Fatal("Process() expected error")
			}
			if got := StageOf(err); got != tt.wantStage {
				t.Errorf("StageOf() = %q, want %q", got, tt.wantStage)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Process() error = %v, want wrapping %v", err, tt.wantErr)
			}
			if len(f.persister.inputs) != 0 {
				t.Error("nothing should be persisted after a failure")
			}
			if got := testutil.ToFloat64(f.metrics.RunsFailed.WithLabelValues(tt.wantStage)); got != 1 {
				t.Errorf("runs_failed{stage=%s} = %v, want 1", tt.wantStage, got)
			}
		})
	}
}

var errThrottled = errors.New("throttled")

func TestStageOf(t *testing.T) {
	if got := StageOf(errors.New("plain")); got != "" {
		t.Errorf("StageOf(plain) = %q, want empty", got)
	}
	wrapped := stageError(StageFetch, storage.ErrObjectNotFound)
	if got := StageOf(wrapped); got != StageFetch {
		t.Errorf("StageOf() = %q, want %q", got, StageFetch)
	}
	if stageError(StageFetch, nil) != nil {
		t.Error("stageError(nil) should be nil")
	}
}

func TestNewRequiresDeps(t *testing.T) {
	if _, err := New(Deps{}, "transcripts", logger.Nop(), nil); err == nil {
		t.Error("New() should reject missing dependencies")
	}
}
