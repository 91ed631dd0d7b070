package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/squares/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Golden(t *testing.T) {
	tests := []struct {
		name   string
		golden string
		log    func(*logger.Logger)
	}{
		{"info", "info_basic", func(l *logger.Logger) { l.Info("solver started") }},
		{"info multiline", "info_multiline", func(l *logger.Logger) { l.Info("line1\nline2") }},
		{"warn", "warn_basic", func(l *logger.Logger) { l.Warn("cache unavailable") }},
		{"stdlib error", "error_simple", func(l *logger.Logger) { l.Error(os.ErrPermission) }},
		{
			"zerr chain", "error_chain",
			func(l *logger.Logger) { l.Error(zerr.Wrap(errors.New("exit status 2"), "solver failed")) },
		},
		{
			"zerr metadata", "error_metadata",
			func(l *logger.Logger) {
				err := zerr.Wrap(errors.New("exit status 2"), "solver failed")
				err = zerr.With(err, "stderr", "boom")
				err = zerr.With(err, "exit_code", 2)
				l.Error(err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			tt.log(lg)

			g := goldie.New(t)
			g.Assert(t, tt.golden, buf.Bytes())
		})
	}
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_SetJSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Error(zerr.Wrap(errors.New("connection refused"), "solve request failed"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "operation failed", record["msg"])
	assert.Contains(t, record["error"], "solve request failed")
	assert.Contains(t, record["error"], "connection refused")
}

func TestLogger_SetOutputKeepsJSON(t *testing.T) {
	lg, _ := newTestLogger(t)
	lg.SetJSON(true)

	buf := &bytes.Buffer{}
	lg.SetOutput(buf)
	lg.Info("hello")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
}

func TestCollectErrorEntries(t *testing.T) {
	inner := zerr.With(zerr.New("solver timed out"), "timeout", "30s")
	outer := zerr.Wrap(inner, "solve failed")

	entries := logger.CollectErrorEntries(outer)

	require.Len(t, entries, 2)
	assert.Equal(t, "solve failed", entries[0].Message)
	assert.Equal(t, "solver timed out", entries[1].Message)
	assert.Equal(t, map[string]any{"timeout": "30s"}, entries[1].Metadata)

	assert.Empty(t, logger.CollectErrorEntries(nil))
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "single",
			entries: []logger.ErrorEntry{{Message: "single error"}},
			want:    "Error: single error",
		},
		{
			name:    "cause",
			entries: []logger.ErrorEntry{{Message: "outer"}, {Message: "inner"}},
			want:    "Error: outer\n\n  Caused by:\n    → inner",
		},
		{
			name: "cause metadata",
			entries: []logger.ErrorEntry{
				{Message: "main"},
				{Message: "cause", Metadata: map[string]any{"status": 504}},
			},
			want: "Error: main\n\n  Caused by:\n    → cause\n      status: 504",
		},
		{
			name:    "multiline",
			entries: []logger.ErrorEntry{{Message: "line1\nline2"}},
			want:    "Error: line1\n       line2",
		},
		{
			name:    "empty",
			entries: nil,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntries(tt.entries))
		})
	}
}
