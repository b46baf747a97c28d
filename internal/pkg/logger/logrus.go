package logger

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/V4T54L/access-logger/internal/domain"
)

// NewLogrus is the logrus counterpart of New.
func NewLogrus(level, format string, w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if strings.EqualFold(format, "text") {
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	return l
}

// NewLogrusChannel returns a channel logger with the same static fields a
// registry-derived slog channel carries.
func NewLogrusChannel(base *logrus.Logger, cfg Config, name string) *LogrusLogger {
	return NewLogrusLogger(logrus.NewEntry(base).WithFields(logrus.Fields{
		"microservice": cfg.Microservice,
		"team":         cfg.Team,
		"environment":  cfg.Environment,
		"logger":       name,
	}))
}

// LogrusLogger adapts a logrus entry to domain.Logger for services that
// already ship logrus output.
type LogrusLogger struct {
	entry *logrus.Entry
}

// NewLogrusLogger wraps entry.
func NewLogrusLogger(entry *logrus.Entry) *LogrusLogger {
	return &LogrusLogger{entry: entry}
}

func (l *LogrusLogger) Info(rec domain.Record)  { l.with(rec).Info(rec.Message) }
func (l *LogrusLogger) Warn(rec domain.Record)  { l.with(rec).Warn(rec.Message) }
func (l *LogrusLogger) Error(rec domain.Record) { l.with(rec).Error(rec.Message) }

func (l *LogrusLogger) with(rec domain.Record) *logrus.Entry {
	attrs := rec.Attrs()
	fields := make(logrus.Fields, len(attrs)/2)
	for i := 0; i+1 < len(attrs); i += 2 {
		fields[attrs[i].(string)] = attrs[i+1]
	}
	return l.entry.WithFields(fields)
}
