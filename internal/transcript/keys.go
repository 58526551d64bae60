package transcript

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/meeting-notes/internal/models"
)

// ParseObjectKey splits "<prefix>/<id>.<ext>" into its parts.
func ParseObjectKey(key string) (models.ObjectKey, error) {
	segments := strings.Split(key, "/")
	if len(segments) < 2 {
		return models.ObjectKey{}, fmt.Errorf("%w: %q has no prefix segment", ErrMalformedKey, key)
	}

	id, ext, ok := strings.Cut(segments[1], ".")
	if !ok || id == "" || ext == "" {
		return models.ObjectKey{}, fmt.Errorf("%w: %q has no <id>.<ext> segment", ErrMalformedKey, key)
	}

	return models.ObjectKey{
		Prefix:       segments[0],
		TranscriptID: id,
		Extension:    ext,
	}, nil
}

// RecordID returns the owning record id: the part of the transcript id
// before its first underscore.
func RecordID(transcriptID string) (string, error) {
	id, _, _ := strings.Cut(transcriptID, "_")
	if id == "" {
		return "", fmt.Errorf("%w: %q", ErrMalformedRecordID, transcriptID)
	}
	return id, nil
}

// ArtifactKey builds the storage key for an artifact of a transcript.
func ArtifactKey(prefix, transcriptID, ext string) string {
	return prefix + "/" + transcriptID + "." + ext
}
