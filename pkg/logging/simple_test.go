package logging

import (
	"bytes"
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/go-logr/logr"
)

// Test that if writer is nil, the logger defaults to os.Stderr.
func TestDefaultWriter(t *testing.T) {
	s := NewSimpleLogSink(nil, 1, true)
	if s.writer != os.Stderr {
		t.Errorf("expected default writer to be os.Stderr, got %v", s.writer)
	}
}

// Test that the Enabled method returns true only for levels less than or equal to minVerbosity.
func TestEnabled(t *testing.T) {
	s := NewSimpleLogSink(&bytes.Buffer{}, LEVEL_DEBUG, false)
	if !s.Enabled(LEVEL_INFO) {
		t.Error("expected info to be enabled")
	}
	if !s.Enabled(LEVEL_DEBUG) {
		t.Error("expected debug to be enabled")
	}
	if s.Enabled(LEVEL_TRACE) {
		t.Error("expected trace to be disabled")
	}
}

// Test that Info() writes a properly formatted log message.
func TestInfoLogging(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSimpleLogSink(buf, 1, false)
	s.Info(0, "reading sector", "sector", 16)
	output := buf.String()

	if output != "[INFO] reading sector\n  sector: 16\n" {
		t.Errorf("unexpected output %q", output)
	}
}

// Test that a colored sink wraps the label in escape codes.
func TestColoredLabel(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSimpleLogSink(buf, 1, true)
	s.Info(1, "colored")
	output := buf.String()

	if !strings.Contains(output, "[DEBUG]") || !strings.Contains(output, "\x1b[") {
		t.Errorf("expected colored [DEBUG] label, got %q", output)
	}
}

// Test that a log at a level higher than minVerbosity is not written.
func TestInfoNotLoggedWhenDisabled(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSimpleLogSink(buf, 0, false)
	s.Info(1, "This should not be logged", "foo", "bar")
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

// Test that Error() writes an error log with the proper label and key/value output.
func TestErrorLogging(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSimpleLogSink(buf, 0, false)
	s.Error(errors.New("short read"), "sector read failed", "sector", 17)
	output := buf.String()

	if !strings.HasPrefix(output, "[ERROR] sector read failed\n") {
		t.Errorf("expected error message, got %q", output)
	}
	if !strings.Contains(output, "sector: 17") {
		t.Errorf("expected sector key-value, got %q", output)
	}
	if !strings.Contains(output, "error: short read") {
		t.Errorf("expected error key-value, got %q", output)
	}
}

// Test that chaining WithName produces a combined name and keeps the sink settings.
func TestChainedWithName(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSimpleLogSink(buf, 2, false)
	chain := s.WithName("parser").WithName("eltorito").(*SimpleLogSink)
	chain.Info(2, "Chained name")
	output := buf.String()

	if output != "[TRACE] [parser.eltorito] Chained name\n" {
		t.Errorf("unexpected output %q", output)
	}
}

// Test that values attached with WithValues are written before the call values.
func TestWithValues(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSimpleLogSink(buf, 1, false)
	s.WithValues("image", "boot.iso").Info(0, "descriptor", "type", 1)

	if buf.String() != "[INFO] descriptor\n  image: boot.iso\n  type: 1\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

// Test that if a key in the key-value list isn’t a string, it is replaced with a formatted key.
func TestNonStringKey(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSimpleLogSink(buf, 1, false)
	s.Info(0, "Non-string key", 123, "value")

	if !strings.Contains(buf.String(), "key0: value") {
		t.Errorf("expected output to contain 'key0: value', got %q", buf.String())
	}
}

// Test that Init properly sets the callDepth field (using reflection because the field is unexported).
func TestInitSetsCallDepth(t *testing.T) {
	s := NewSimpleLogSink(&bytes.Buffer{}, 1, false)
	s.Init(logr.RuntimeInfo{CallDepth: 5})

	val := reflect.ValueOf(s).Elem()
	if cd := val.FieldByName("callDepth").Int(); cd != 5 {
		t.Errorf("expected callDepth 5, got %d", cd)
	}
}

// Test that the Logger wrapper routes levels through logr verbosity.
func TestLoggerLevels(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewLogger(NewSimpleLogger(buf, LEVEL_DEBUG, false)).WithName("isoinfo")
	l.Info("info")
	l.Debug("debug")
	l.Trace("trace")

	output := buf.String()
	if !strings.Contains(output, "[INFO] [isoinfo] info") || !strings.Contains(output, "[DEBUG] [isoinfo] debug") {
		t.Errorf("expected info and debug messages, got %q", output)
	}
	if strings.Contains(output, "trace") {
		t.Errorf("expected trace to be filtered, got %q", output)
	}
}

// Test that a zero logr.Logger and the default logger discard output without panicking.
func TestDiscardLoggers(t *testing.T) {
	NewLogger(logr.Logger{}).Info("dropped")
	DefaultLogger().Error(errors.New("dropped"), "dropped")
}
