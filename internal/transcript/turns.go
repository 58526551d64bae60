package transcript

import (
	"strings"

	"github.com/nguyentantai21042004/meeting-notes/internal/models"
)

// BuildTurns coalesces consecutive items with the same speaker label into
// turns. Words are joined with a single space and left unnormalised.
func BuildTurns(items []models.WordItem) []models.SpeakerTurn {
	turns := make([]models.SpeakerTurn, 0)
	if len(items) == 0 {
		return turns
	}

	speaker := items[0].SpeakerLabel
	var words []string
	for _, item := range items {
		if item.SpeakerLabel != speaker {
			turns = append(turns, models.SpeakerTurn{SpeakerLabel: speaker, Text: strings.Join(words, " ")})
			words = words[:0]
			speaker = item.SpeakerLabel
		}
		words = append(words, item.Content)
	}
	turns = append(turns, models.SpeakerTurn{SpeakerLabel: speaker, Text: strings.Join(words, " ")})

	return turns
}
