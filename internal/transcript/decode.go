package transcript

import (
	"encoding/json"
	"fmt"

	"github.com/nguyentantai21042004/meeting-notes/internal/models"
)

// document mirrors the JSON written by the transcription job.
type document struct {
	Results *struct {
		Transcripts []struct {
			Transcript string `json:"transcript"`
		} `json:"transcripts"`
		LanguageCode string `json:"language_code"`
		Items        []struct {
			Type         string `json:"type"`
			SpeakerLabel string `json:"speaker_label"`
			Alternatives []struct {
				Content string `json:"content"`
			} `json:"alternatives"`
		} `json:"items"`
	} `json:"results"`
}

// Decode parses a transcription object. Missing results, transcripts or
// language code, and items without alternatives, are reported as
// ErrMalformedTranscript.
func Decode(data []byte) (models.TranscriptionResult, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.TranscriptionResult{}, fmt.Errorf("%w: %v", ErrMalformedTranscript, err)
	}

	if doc.Results == nil {
		return models.TranscriptionResult{}, fmt.Errorf("%w: missing results", ErrMalformedTranscript)
	}
	if len(doc.Results.Transcripts) == 0 {
		return models.TranscriptionResult{}, fmt.Errorf("%w: missing transcripts", ErrMalformedTranscript)
	}
	if doc.Results.LanguageCode == "" {
		return models.TranscriptionResult{}, fmt.Errorf("%w: missing language_code", ErrMalformedTranscript)
	}

	items := make([]models.WordItem, 0, len(doc.Results.Items))
	for i, item := range doc.Results.Items {
		if len(item.Alternatives) == 0 {
			return models.TranscriptionResult{}, fmt.Errorf("%w: item %d has no alternatives", ErrMalformedTranscript, i)
		}
		items = append(items, models.WordItem{
			Content:      item.Alternatives[0].Content,
			SpeakerLabel: item.SpeakerLabel,
		})
	}

	return models.TranscriptionResult{
		Transcript:   doc.Results.Transcripts[0].Transcript,
		LanguageCode: doc.Results.LanguageCode,
		Items:        items,
	}, nil
}
