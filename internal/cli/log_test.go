package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", LogInfo, func(l *log.Logger) { l.Info("decoded") }, true},
		{"debug at info level", LogInfo, func(l *log.Logger) { l.Debug("cache hit") }, false},
		{"debug at debug level", LogDebug, func(l *log.Logger) { l.Debug("cache hit") }, true},
		{"info at warn level", LogWarn, func(l *log.Logger) { l.Info("decoded") }, false},
		{"warn at warn level", LogWarn, func(l *log.Logger) { l.Warn("dangling wire") }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug logged at info level: %q", buf.String())
	}

	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown", "components", 6)
	if !strings.Contains(buf.String(), "components=6") {
		t.Errorf("log output %q missing key/value", buf.String())
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("Analyzed 3 saves")

	out := buf.String()
	if !strings.Contains(out, "Analyzed 3 saves") {
		t.Errorf("output %q missing message", out)
	}
	if !strings.Contains(out, "ms)") && !strings.Contains(out, "s)") {
		t.Errorf("output %q missing elapsed time", out)
	}
}
