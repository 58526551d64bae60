package chunker

import "fmt"

// Options configures a Chunker. Sizes are measured in characters (runes).
type Options struct {
	ChunkSize  int
	Overlap    int
	Separators []string
}

type implChunker struct {
	size       int
	separators []string
	// shared is the minimum number of characters adjacent chunks repeat.
	shared int
	// pieceSize bounds the atomic pieces chunks are assembled from.
	pieceSize int
}

// New creates a Chunker. Overlap must be non-negative and smaller than ChunkSize.
func New(opts Options) (Chunker, error) {
	if opts.ChunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", opts.ChunkSize)
	}
	if opts.Overlap < 0 || opts.Overlap >= opts.ChunkSize {
		return nil, fmt.Errorf("overlap must be in [0, %d), got %d", opts.ChunkSize, opts.Overlap)
	}

	// Every span of ChunkSize-Overlap characters must land inside one chunk,
	// which needs adjacent chunks to share at least that many minus one.
	shared := max(opts.Overlap, opts.ChunkSize-opts.Overlap-1)

	return &implChunker{
		size:       opts.ChunkSize,
		separators: opts.Separators,
		shared:     shared,
		pieceSize:  max(1, (opts.ChunkSize-shared+1)/2),
	}, nil
}
