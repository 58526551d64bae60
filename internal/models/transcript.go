package models

import "time"

// TranscriptionResult is the decoded output of the transcription collaborator.
type TranscriptionResult struct {
	Transcript   string
	LanguageCode string
	Items        []WordItem
}

// WordItem is a single recognised token, in temporal order.
type WordItem struct {
	Content      string
	SpeakerLabel string
}

// SpeakerTurn is a maximal run of consecutive words from one speaker.
type SpeakerTurn struct {
	SpeakerLabel string
	Text         string
}

type Chunk struct {
	Text  string
	Index int
}

// SummaryResult holds the final summary and, when requested, the ordered
// per-chunk summaries it was reduced from.
type SummaryResult struct {
	FinalSummary     string   `json:"output_text"`
	PartialSummaries []string `json:"intermediate_steps,omitempty"`
}

type TranslationResult struct {
	TranslatedText string `json:"TranslatedText"`
	SourceLanguage string `json:"SourceLanguageCode"`
	TargetLanguage string `json:"TargetLanguageCode"`
}

// TranscriptRecord is the durable per-upload entry owned by the upload flow.
type TranscriptRecord struct {
	ID               string
	Owner            string
	CreatedAt        time.Time
	OriginalFilename string
	CombinedSummary  string
}

// ObjectKey is a parsed storage key of the form "<prefix>/<id>.<ext>".
type ObjectKey struct {
	Prefix       string
	TranscriptID string
	Extension    string
}
