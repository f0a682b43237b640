package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, Options{Level: "debug", Format: "json"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	Component(logger, "tokenize").Debug("cache hit", slog.String("participant", "user1"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", buf.String(), err)
	}
	if record["component"] != "tokenize" || record["participant"] != "user1" {
		t.Fatalf("unexpected record: %v", record)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, Options{Level: "warn"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestNewRejectsUnknownValues(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, Options{Format: "xml"}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
