package translator

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/meeting-notes/internal/models"
)

// Translate translates the full transcript into English unless the two-letter
// prefix of languageCode is already "en".
func (f *implFallback) Translate(ctx context.Context, transcript, languageCode string) (*models.TranslationResult, error) {
	source := languagePrefix(languageCode)
	if source == TargetLanguage {
		f.logger.Debug(ctx, "Source language %s is English, skipping translation", languageCode)
		return nil, nil
	}

	f.logger.Info(ctx, "Translating transcript from %s to %s", source, TargetLanguage)

	result := &models.TranslationResult{
		SourceLanguage: source,
		TargetLanguage: TargetLanguage,
	}
	if strings.TrimSpace(transcript) == "" {
		return result, nil
	}

	translated, err := f.translator.Translate(ctx, transcript, source, TargetLanguage)
	if err != nil {
		return nil, fmt.Errorf("translate from %s: %w", source, err)
	}
	result.TranslatedText = translated

	return result, nil
}

func languagePrefix(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if len(code) > 2 {
		return code[:2]
	}
	return code
}
