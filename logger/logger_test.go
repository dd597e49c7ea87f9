package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedLogger(buf *bytes.Buffer, level Level) *Logger {
	l := New(buf, level)
	l.now = func() time.Time { return time.Date(2024, 5, 1, 9, 8, 7, 0, time.UTC) }
	return l
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, LevelWarn)

	l.Tracef("trace")
	l.Debugf("debug")
	l.Infof("info")
	l.Warnf("careful %d", 1)
	l.Errorf("broken: %s", "x")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "[09:08:07] [WARN] careful 1", lines[0])
	assert.Equal(t, "[09:08:07] [ERROR] broken: x", lines[1])
}

func TestNoColorForBuffers(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, LevelTrace)
	l.Infof("plain")
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestNoColorForRegularFiles(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "log.txt"))
	require.NoError(t, err)
	defer f.Close()

	l := New(f, LevelInfo)
	assert.False(t, l.colorOutput)
	l.Warnf("to a file")

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[WARN] to a file")
	assert.NotContains(t, string(data), "\x1b[")
}

func TestColorOutput(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, LevelInfo)
	l.colorOutput = true
	l.Errorf("red")

	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "ERROR")
	assert.Contains(t, buf.String(), "] red")
}

func TestNilLoggerDiscards(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() { l.Errorf("nothing") })
	assert.False(t, l.Enabled(LevelError))

	l = New(nil, LevelTrace)
	assert.NotPanics(t, func() { l.Errorf("nothing") })
}

func TestParseLevel(t *testing.T) {
	var tests = []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "trace", want: LevelTrace},
		{in: "DEBUG", want: LevelDebug},
		{in: " info ", want: LevelInfo},
		{in: "warning", want: LevelWarn},
		{in: "error", want: LevelError},
		{in: "loud", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
