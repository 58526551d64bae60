package transcript

import "errors"

var (
	ErrMalformedKey        = errors.New("malformed object key")
	ErrMalformedRecordID   = errors.New("malformed record id")
	ErrMalformedTranscript = errors.New("malformed transcription result")
)
