package translator

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const translatePrompt = `Translate the following text from the language with code "%s" into the language with code "%s".
Reply with the translation only, without notes or quotation marks.

%s`

// denseScriptFactor shrinks segments of scripts where one character carries
// about a word, so their English translation still fits the output budget.
const denseScriptFactor = 5

// Translate translates text segment by segment and joins the results with
// single spaces. A failed segment fails the whole call.
func (t *implLLM) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	segments := segment(text, segmentLimit(text, t.segmentChars))
	out := make([]string, 0, len(segments))

	for i, seg := range segments {
		translated, err := t.completer.Complete(ctx, fmt.Sprintf(translatePrompt, sourceLang, targetLang, seg))
		if err != nil {
			return "", fmt.Errorf("translate segment %d/%d: %w", i+1, len(segments), err)
		}
		out = append(out, strings.TrimSpace(translated))
	}

	return strings.Join(out, " "), nil
}

// segment packs sentences into non-overlapping segments of at most limit
// characters. Sentences longer than limit are cut at word boundaries, or
// hard-cut when a single word is too long.
func segment(text string, limit int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var units []string
	for _, sentence := range splitSentences(text) {
		if utf8.RuneCountInString(sentence) <= limit {
			units = append(units, sentence)
			continue
		}
		for _, word := range strings.SplitAfter(sentence, " ") {
			for utf8.RuneCountInString(word) > limit {
				r := []rune(word)
				units = append(units, string(r[:limit]))
				word = string(r[limit:])
			}
			units = append(units, word)
		}
	}

	var segments []string
	var b strings.Builder
	size := 0
	for _, u := range units {
		n := utf8.RuneCountInString(u)
		if size+n > limit && size > 0 {
			if s := strings.TrimSpace(b.String()); s != "" {
				segments = append(segments, s)
			}
			b.Reset()
			size = 0
		}
		b.WriteString(u)
		size += n
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		segments = append(segments, s)
	}

	return segments
}

// segmentLimit returns limit, or limit/denseScriptFactor when most letters
// of text are Han, Kana, Hangul or Thai.
func segmentLimit(text string, limit int) int {
	letters, dense := 0, 0
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul, unicode.Thai) {
			dense++
		}
	}
	if dense*2 > letters {
		return max(1, limit/denseScriptFactor)
	}
	return limit
}

// splitSentences cuts text after ". " and after the full-width terminators
// used by CJK scripts. The parts concatenate back to text.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i, r := range text {
		end := -1
		switch r {
		case '。', '！', '？', '．':
			end = i + utf8.RuneLen(r)
		case '.':
			if strings.HasPrefix(text[i+1:], " ") {
				end = i + 2
			}
		}
		if end > start {
			sentences = append(sentences, text[start:end])
			start = end
		}
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences
}
