package obslog

import (
	"bytes"
	"log/slog"
	"testing"
)

func TestNew_DefaultsToInfoAndJSON(t *testing.T) {
	log := New(Config{})
	if log == nil {
		t.Fatal("expected a non-nil logger")
	}
	if !log.Enabled(nil, slog.LevelInfo) {
		t.Error("expected default level to allow info")
	}
	if log.Enabled(nil, slog.LevelDebug) {
		t.Error("expected default level to exclude debug")
	}
}

func TestNew_LevelDebug(t *testing.T) {
	log := New(Config{Level: "debug"})
	if !log.Enabled(nil, slog.LevelDebug) {
		t.Error("expected debug level to be enabled")
	}
}

func TestNew_LevelWarnExcludesInfo(t *testing.T) {
	log := New(Config{Level: "warn"})
	if log.Enabled(nil, slog.LevelInfo) {
		t.Error("expected warn level to exclude info")
	}
	if !log.Enabled(nil, slog.LevelWarn) {
		t.Error("expected warn level to be enabled")
	}
}

func TestNew_TextFormat(t *testing.T) {
	log := New(Config{Format: "text", Output: "stderr"})
	if log == nil {
		t.Fatal("expected a non-nil logger")
	}
}

func TestWithRequestID_AddsField(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	derived := WithRequestID(base, "req-123")
	derived.Info("hello")

	if !bytes.Contains(buf.Bytes(), []byte(`"request_id":"req-123"`)) {
		t.Errorf("expected log line to contain request_id field, got %s", buf.String())
	}
}

func TestWithComponent_AddsField(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	derived := WithComponent(base, "solver")
	derived.Info("solving")

	if !bytes.Contains(buf.Bytes(), []byte(`"component":"solver"`)) {
		t.Errorf("expected log line to contain component field, got %s", buf.String())
	}
}
