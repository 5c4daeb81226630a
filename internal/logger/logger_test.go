package logger

import (
	"bytes"
	"testing"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logging.Level
	}{
		{"", logging.INFO},
		{"debug", logging.DEBUG},
		{"warn", logging.WARNING},
		{"WARNING", logging.WARNING},
		{"error", logging.ERROR},
		{"nonsense", logging.INFO},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerTo(&buf, logging.WARNING)
	t.Cleanup(func() { InitLogger(logging.INFO) })

	Info("hidden")
	Warningf("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN - shown 1")
}

func TestWriterTrimsNewline(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerTo(&buf, logging.INFO)
	t.Cleanup(func() { InitLogger(logging.INFO) })

	n, err := Writer{}.Write([]byte("GET /api/pitches 200\n"))
	assert.NoError(t, err)
	assert.Equal(t, 21, n)
	assert.Contains(t, buf.String(), "INFO - GET /api/pitches 200\n")
}
