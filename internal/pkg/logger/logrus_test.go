package logger

import (
	"bytes"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/V4T54L/access-logger/internal/domain"
)

func TestLogrusLogger(t *testing.T) {
	base, hook := test.NewNullLogger()
	l := NewLogrusLogger(logrus.NewEntry(base).WithField("logger", "http.access"))

	rec := domain.Record{
		ResponseCode: 400,
		Message:      `"GET / HTTP/1.1" 400`,
		Method:       "GET",
		Path:         "/",
		RequestID:    "abc",
		Duration:     15 * time.Millisecond,
	}

	tests := []struct {
		name  string
		emit  func(domain.Record)
		level logrus.Level
	}{
		{"info", l.Info, logrus.InfoLevel},
		{"warn", l.Warn, logrus.WarnLevel},
		{"error", l.Error, logrus.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hook.Reset()
			tt.emit(rec)

			entry := hook.LastEntry()
			require.NotNil(t, entry)
			assert.Equal(t, tt.level, entry.Level)
			assert.Equal(t, rec.Message, entry.Message)
			assert.Equal(t, 400, entry.Data["responseCode"])
			assert.Equal(t, "GET", entry.Data["method"])
			assert.Equal(t, "abc", entry.Data["request_id"])
			assert.Equal(t, int64(15), entry.Data["duration_ms"])
			assert.Equal(t, "http.access", entry.Data["logger"])
		})
	}
}

func TestNewLogrusChannel(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogrus("warn", "json", &buf)
	l := NewLogrusChannel(base, Config{
		Microservice: "track-your-appeal",
		Team:         "SSCS",
		Environment:  "production",
	}, "express.access")

	l.Info(domain.Record{ResponseCode: 200, Message: `"GET / HTTP/1.1" 200`})
	l.Warn(domain.Record{ResponseCode: 404, Message: `"GET /missing HTTP/1.1" 404`})

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1, "info is below the configured level")
	assert.Equal(t, "warning", lines[0]["level"])
	assert.Equal(t, `"GET /missing HTTP/1.1" 404`, lines[0]["msg"])
	assert.Equal(t, "track-your-appeal", lines[0]["microservice"])
	assert.Equal(t, "SSCS", lines[0]["team"])
	assert.Equal(t, "production", lines[0]["environment"])
	assert.Equal(t, "express.access", lines[0]["logger"])
	assert.Equal(t, float64(404), lines[0]["responseCode"])
}

func TestNewLogrus_UnknownLevelFallsBackToInfo(t *testing.T) {
	l := NewLogrus("chatty", "text", &bytes.Buffer{})

	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)
}
