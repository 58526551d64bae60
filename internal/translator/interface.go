package translator

import (
	"context"

	"github.com/nguyentantai21042004/meeting-notes/internal/models"
)

// Translator is the translation capability.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// Fallback renders a transcript in English when its source language is not
// English. It returns nil for English sources.
type Fallback interface {
	Translate(ctx context.Context, transcript, languageCode string) (*models.TranslationResult, error)
}
