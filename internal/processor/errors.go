package processor

import "errors"

// Pipeline stages reported in Error and in the runs_failed metric.
const (
	StageParse     = "parse"
	StageFetch     = "fetch"
	StageDecode    = "decode"
	StageSummarize = "summarize"
	StageTranslate = "translate"
	StagePersist   = "persist"
)

// Error is a fatal pipeline failure tagged with the stage it happened in.
type Error struct {
	Stage string
	Err   error
}

func (e *Error) Error() string {
	return e.Stage + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StageOf returns the stage of a pipeline error, or "" for other errors.
func StageOf(err error) string {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Stage
	}
	return ""
}

func stageError(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Stage: stage, Err: err}
}
