package domain

import "net/http"

// LogFunc emits a record at one fixed severity.
type LogFunc func(Record)

// Logger is the collaborator the access logger writes to. It exposes one
// emission capability per severity and must be safe for concurrent use.
type Logger interface {
	Info(Record)
	Warn(Record)
	Error(Record)
}

// Formatter builds the record message for a finalized request.
type Formatter func(r *http.Request, res Response) string

// LevelFunc picks the capability of l used to emit the record. Returning nil
// defers to the status code based default.
type LevelFunc func(l Logger, r *http.Request, res Response) LogFunc
