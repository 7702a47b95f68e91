package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		emit  func(*log.Logger)
		want  bool
	}{
		{"info at info", log.InfoLevel, func(l *log.Logger) { l.Info("formatted") }, true},
		{"debug at info", log.InfoLevel, func(l *log.Logger) { l.Debug("cache hit") }, false},
		{"debug at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("cache hit") }, true},
		{"warn at info", log.InfoLevel, func(l *log.Logger) { l.Warn("unknown config key") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("wrote output = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewLoggerReportsCallerAtDebug(t *testing.T) {
	var info, debug bytes.Buffer
	newLogger(&info, log.InfoLevel).Info("x")
	newLogger(&debug, log.DebugLevel).Info("x")

	if strings.Contains(info.String(), "log_test.go") {
		t.Errorf("info logger should not report the caller: %q", info.String())
	}
	if !strings.Contains(debug.String(), "log_test.go") {
		t.Errorf("debug logger should report the caller: %q", debug.String())
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("formatted", "source", "cat.json")

	out := buf.String()
	for _, want := range []string{"formatted", "source=cat.json", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("done() output %q should contain %q", out, want)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)

	ctx := withLogger(context.Background(), l)
	if got := loggerFromContext(ctx); got != l {
		t.Error("loggerFromContext() should return the attached logger")
	}

	fallback := loggerFromContext(context.Background())
	if fallback == nil {
		t.Fatal("loggerFromContext() without a logger returned nil")
	}
	fallback.Error("dropped")
}

func TestCommandLogger(t *testing.T) {
	var buf bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&buf, log.InfoLevel))

	commandLogger(ctx, "serve").Info("listening")
	if !strings.Contains(buf.String(), "serve") {
		t.Errorf("command logger output %q should carry the prefix", buf.String())
	}
}
