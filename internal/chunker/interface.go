package chunker

import "github.com/nguyentantai21042004/meeting-notes/internal/models"

// Chunker splits long text into bounded, overlapping chunks.
type Chunker interface {
	Split(text string) []models.Chunk
}
