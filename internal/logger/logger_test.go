package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"invalid level", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.level)
			if log == nil {
				t.Error("New() returned nil")
			}
		})
	}
}

func TestShouldLog(t *testing.T) {
	tests := []struct {
		name        string
		configLevel string
		logLevel    string
		shouldLog   bool
	}{
		{"debug logs at debug level", "debug", "debug", true},
		{"info logs at debug level", "debug", "info", true},
		{"debug doesn't log at info level", "info", "debug", false},
		{"info logs at info level", "info", "info", true},
		{"error always logs", "debug", "error", true},
		{"unknown config level acts as info", "loud", "debug", false},
		{"upper case config level", "WARN", "info", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.configLevel).(*implLogger)
			result := log.shouldLog(tt.logLevel)
			if result != tt.shouldLog {
				t.Errorf("shouldLog() = %v, want %v", result, tt.shouldLog)
			}
		})
	}
}

func TestRunIDPrefix(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	ctx := WithRunID(context.Background(), "abc123")
	log.Info(ctx, "uploaded %s", "gs://b/o")

	out := buf.String()
	if !strings.Contains(out, "[INFO] [run=abc123] uploaded gs://b/o") {
		t.Errorf("output = %q, want run id prefix", out)
	}
}

func TestNoRunID(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("debug", &buf)

	log.Debug(context.Background(), "plain")

	out := buf.String()
	if strings.Contains(out, "run=") {
		t.Errorf("output = %q, want no run id", out)
	}
	if !strings.Contains(out, "[DEBUG] plain") {
		t.Errorf("output = %q, want debug line", out)
	}
}

func TestFilteredLevelWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("error", &buf)

	log.Info(context.Background(), "hidden")
	log.Warn(context.Background(), "hidden")

	if buf.Len() != 0 {
		t.Errorf("output = %q, want empty", buf.String())
	}
}
