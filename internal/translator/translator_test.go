package translator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/nguyentantai21042004/meeting-notes/internal/logger"
)

type recordingTranslator struct {
	calls        int
	text         string
	source       string
	target       string
	err          error
	translatedAs string
}

func (r *recordingTranslator) Translate(_ context.Context, text, source, target string) (string, error) {
	r.calls++
	r.text, r.source, r.target = text, source, target
	if r.err != nil {
		return "", r.err
	}
	return r.translatedAs, nil
}

func TestFallback(t *testing.T) {
	tests := []struct {
		name         string
		languageCode string
		wantCall     bool
		wantSource   string
	}{
		{"english us", "en-US", false, ""},
		{"english gb upper case", "EN-GB", false, ""},
		{"french", "fr-FR", true, "fr"},
		{"spanish", "es-ES", true, "es"},
		{"bare code", "de", true, "de"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := &recordingTranslator{translatedAs: "Hello everyone"}
			f := NewFallback(rt, logger.Nop())

			res, err := f.Translate(context.Background(), "Bonjour à tous", tt.languageCode)
			if err != nil {
				t.Fatalf("Translate() error = %v", err)
			}

			if !tt.wantCall {
				if res != nil || rt.calls != 0 {
					t.Errorf("expected no-op, got %+v after %d calls", res, rt.calls)
				}
				return
			}

			if rt.calls != 1 {
				t.Fatalf("expected 1 call, got %d", rt.calls)
			}
			if rt.source != tt.wantSource || rt.target != "en" {
				t.Errorf("called with %s -> %s", rt.source, rt.target)
			}
			if rt.text != "Bonjour à tous" {
				t.Errorf("expected the full transcript, got %q", rt.text)
			}
			if res.TranslatedText != "Hello everyone" || res.SourceLanguage != tt.wantSource || res.TargetLanguage != "en" {
				t.Errorf("unexpected result %+v", res)
			}
		})
	}
}

func TestFallbackFailureIsFatal(t *testing.T) {
	errDown := errors.New("service down")
	f := NewFallback(&recordingTranslator{err: errDown}, logger.Nop())

	res, err := f.Translate(context.Background(), "Hola", "es-US")
	if !errors.Is(err, errDown) {
		t.Fatalf("expected service error, got %v", err)
	}
	if res != nil {
		t.Errorf("expected no result, got %+v", res)
	}
}

func TestFallbackEmptyTranscript(t *testing.T) {
	rt := &recordingTranslator{}
	res, err := NewFallback(rt, logger.Nop()).Translate(context.Background(), "  ", "fr-FR")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if res == nil || res.TranslatedText != "" || rt.calls != 0 {
		t.Errorf("expected empty translation without calls, got %+v after %d calls", res, rt.calls)
	}
}

type echoCompleter struct {
	prompts []string
	err     error
}

func (e *echoCompleter) Complete(_ context.Context, prompt string) (string, error) {
	e.prompts = append(e.prompts, prompt)
	if e.err != nil {
		return "", e.err
	}
	lines := strings.Split(prompt, "\n")
	return " EN[" + lines[len(lines)-1] + "] ", nil
}

func TestLLMTranslate(t *testing.T) {
	c := &echoCompleter{}
	tr := NewLLM(c, 30)

	got, err := tr.Translate(context.Background(), "Bonjour tout le monde. Merci d'être venus. On commence.", "fr", "en")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}

	if len(c.prompts) < 2 {
		t.Fatalf("expected the text to be segmented, got %d calls", len(c.prompts))
	}
	if !strings.Contains(c.prompts[0], `from the language with code "fr" into the language with code "en"`) {
		t.Errorf("prompt missing languages: %q", c.prompts[0])
	}
	if !strings.HasPrefix(got, "EN[Bonjour tout le monde.") {
		t.Errorf("Translate() = %q", got)
	}
}

func TestLLMTranslateFailure(t *testing.T) {
	errQuota := errors.New("quota")
	if _, err := NewLLM(&echoCompleter{err: errQuota}, 0).Translate(context.Background(), "Hola", "es", "en"); !errors.Is(err, errQuota) {
		t.Fatalf("expected quota error, got %v", err)
	}
}

func TestSegment(t *testing.T) {
	text := "One two three. " + strings.Repeat("x", 25) + " four five six seven eight nine. Ten."
	segments := segment(text, 12)

	var rebuilt []string
	for i, s := range segments {
		if n := utf8.RuneCountInString(s); n > 12 {
			t.Errorf("segment %d has %d characters: %q", i, n, s)
		}
		if s == "" {
			t.Errorf("segment %d is empty", i)
		}
		rebuilt = append(rebuilt, s)
	}
	if strings.Join(strings.Fields(strings.Join(rebuilt, " ")), "") != strings.Join(strings.Fields(text), "") {
		t.Errorf("segments lost text: %q", rebuilt)
	}
	if segment("   ", 10) != nil {
		t.Error("expected no segments for blank text")
	}
}

func TestSegmentLimit(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"french", "Bonjour tout le monde. Merci d'être venus.", 2000},
		{"japanese", "会議では来年度の予算について話し合いました。", 400},
		{"chinese", "我们讨论了明年的预算。", 400},
		{"korean", "우리는 내년 예산에 대해 논의했습니다.", 400},
		{"thai", "เราได้หารือเกี่ยวกับงบประมาณ", 400},
		{"english with a few kanji", "The team visited the 東京 office and reviewed the budget.", 2000},
		{"blank", "", 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := segmentLimit(tt.text, 2000); got != tt.want {
				t.Errorf("segmentLimit() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSegmentCJK(t *testing.T) {
	sentence := "会議では来年度の予算について話し合いました。"
	text := strings.Repeat(sentence, 60)
	limit := segmentLimit(text, defaultSegmentChars)

	segments := segment(text, limit)
	if len(segments) < 4 {
		t.Fatalf("expected at least 4 segments, got %d", len(segments))
	}
	for i, s := range segments {
		if n := utf8.RuneCountInString(s); n > limit {
			t.Errorf("segment %d has %d characters, limit %d", i, n, limit)
		}
		if !strings.HasSuffix(s, "。") {
			t.Errorf("segment %d does not end on a sentence: %q", i, s)
		}
	}
	if strings.Join(segments, "") != text {
		t.Error("segments lost text")
	}

	// No terminators at all: hard cuts at the limit.
	unbroken := strings.Repeat("予算", 500)
	segments = segment(unbroken, segmentLimit(unbroken, defaultSegmentChars))
	for i, s := range segments {
		if n := utf8.RuneCountInString(s); n > 400 {
			t.Errorf("unbroken segment %d has %d characters", i, n)
		}
	}
	if strings.Join(segments, "") != unbroken {
		t.Error("unbroken segments lost text")
	}
}

func TestLLMTranslateJapaneseIsSegmented(t *testing.T) {
	c := &echoCompleter{}
	text := strings.Repeat("会議では来年度の予算について話し合いました。", 60)

	if _, err := NewLLM(c, 0).Translate(context.Background(), text, "ja", "en"); err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if len(c.prompts) != 4 {
		t.Errorf("expected 4 completion calls for 1320 Japanese characters, got %d", len(c.prompts))
	}
}

func TestSplitSentences(t *testing.T) {
	text := "First point. Second point.最初の点。次は？ Trailing"
	parts := splitSentences(text)

	want := []string{"First point. ", "Second point.最初の点。", "次は？", " Trailing"}
	if len(parts) != len(want) {
		t.Fatalf("splitSentences() = %q, want %q", parts, want)
	}
	for i := range want {
		if parts[i] != want[i] {
			t.Errorf("part %d = %q, want %q", i, parts[i], want[i])
		}
	}
}
