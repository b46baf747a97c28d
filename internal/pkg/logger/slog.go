package logger

import (
	"log/slog"

	"github.com/V4T54L/access-logger/internal/domain"
)

// SlogLogger adapts a *slog.Logger to domain.Logger.
type SlogLogger struct {
	l *slog.Logger
}

// NewSlogLogger wraps l.
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

func (s *SlogLogger) Info(rec domain.Record)  { s.l.Info(rec.Message, rec.Attrs()...) }
func (s *SlogLogger) Warn(rec domain.Record)  { s.l.Warn(rec.Message, rec.Attrs()...) }
func (s *SlogLogger) Error(rec domain.Record) { s.l.Error(rec.Message, rec.Attrs()...) }
