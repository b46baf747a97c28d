package domain

import (
	"net/http"
	"time"
)

// Record is the access log entry emitted once per completed request.
type Record struct {
	ResponseCode int    `json:"responseCode"`
	Message      string `json:"message"`

	Method       string        `json:"method,omitempty"`
	Path         string        `json:"path,omitempty"`
	Proto        string        `json:"proto,omitempty"`
	RemoteAddr   string        `json:"remote_addr,omitempty"`
	UserAgent    string        `json:"user_agent,omitempty"`
	RequestID    string        `json:"request_id,omitempty"`
	BytesWritten int64         `json:"bytes_sent"`
	Duration     time.Duration `json:"-"`
}

// Attrs flattens the record into slog-style key/value pairs. The message is
// not included; callers pass it separately.
func (r Record) Attrs() []any {
	attrs := []any{
		"responseCode", r.ResponseCode,
		"method", r.Method,
		"path", r.Path,
		"proto", r.Proto,
		"remote_addr", r.RemoteAddr,
		"user_agent", r.UserAgent,
	}
	if r.RequestID != "" {
		attrs = append(attrs, "request_id", r.RequestID)
	}
	return append(attrs,
		"bytes_sent", r.BytesWritten,
		"duration_ms", r.Duration.Milliseconds(),
	)
}

// Response describes a finalized HTTP response as seen by the access logger.
type Response struct {
	StatusCode   int
	Header       http.Header
	BytesWritten int64
	Duration     time.Duration
}
