package chunker

import (
	"strings"
	"unicode/utf8"

	"github.com/nguyentantai21042004/meeting-notes/internal/models"
)

// Split cuts text into chunks of at most ChunkSize characters. Chunk edges
// fall on separator boundaries whenever the separator hierarchy allows it.
// Blank text yields no chunks; text within ChunkSize is returned whole.
func (c *implChunker) Split(text string) []models.Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if utf8.RuneCountInString(text) <= c.size {
		return []models.Chunk{{Text: text, Index: 0}}
	}

	pieces := c.splitPieces(text, c.separators)

	offsets := make([]int, len(pieces)+1)
	for i, p := range pieces {
		offsets[i+1] = offsets[i] + utf8.RuneCountInString(p)
	}

	var chunks []models.Chunk
	start := 0
	for {
		end := start + 1
		for end < len(pieces) && offsets[end+1]-offsets[start] <= c.size {
			end++
		}

		chunks = append(chunks, models.Chunk{
			Text:  strings.Join(pieces[start:end], ""),
			Index: len(chunks),
		})
		if end == len(pieces) {
			return chunks
		}

		// Restart at the latest piece boundary that still repeats at least
		// c.shared characters of the chunk just emitted.
		next := max(end-1, start+1)
		for next > start+1 && offsets[next] > offsets[end]-c.shared {
			next--
		}
		start = next
	}
}

// splitPieces breaks text into pieces no longer than pieceSize, trying the
// separators in order and recursing into oversized pieces with the finer
// ones. Separators stay attached to the piece they end, so the pieces
// concatenate back to text exactly.
func (c *implChunker) splitPieces(text string, separators []string) []string {
	if utf8.RuneCountInString(text) <= c.pieceSize {
		return []string{text}
	}

	for i, sep := range separators {
		if sep == "" {
			break
		}
		if !strings.Contains(text, sep) {
			continue
		}

		var pieces []string
		for _, part := range strings.SplitAfter(text, sep) {
			if part == "" {
				continue
			}
			if utf8.RuneCountInString(part) <= c.pieceSize {
				pieces = append(pieces, part)
				continue
			}
			pieces = append(pieces, c.splitPieces(part, separators[i+1:])...)
		}
		return pieces
	}

	return hardSplit(text, c.pieceSize)
}

func hardSplit(text string, size int) []string {
	runes := []rune(text)
	pieces := make([]string, 0, len(runes)/size+1)
	for len(runes) > 0 {
		n := min(size, len(runes))
		pieces = append(pieces, string(runes[:n]))
		runes = runes[n:]
	}
	return pieces
}
