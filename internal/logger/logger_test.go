package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer

	log := New(Config{
		Level:     DEBUG,
		Format:    JSONFormat,
		Output:    &buf,
		Component: "test",
	})

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d log lines, want 4", len(lines))
	}
	for i, line := range lines {
		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Errorf("line %d is not valid JSON: %v", i+1, err)
		}
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	log := New(Config{
		Level:  WARN,
		Format: JSONFormat,
		Output: &buf,
	})

	log.Debug("filtered")
	log.Info("filtered")
	log.Warn("kept")
	log.Error("kept", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Errorf("got %d log lines with WARN level, want 2", len(lines))
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer

	log := New(Config{
		Level:     INFO,
		Format:    JSONFormat,
		Output:    &buf,
		Component: "fetcher",
	})

	log.Info("snapshot ready", map[string]interface{}{
		"samples": 120,
		"source":  "swpc",
	})

	var entry Entry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}
	if entry.Level != "INFO" {
		t.Errorf("Level = %q, want INFO", entry.Level)
	}
	if entry.Message != "snapshot ready" {
		t.Errorf("Message = %q, want 'snapshot ready'", entry.Message)
	}
	if entry.Component != "fetcher" {
		t.Errorf("Component = %q, want fetcher", entry.Component)
	}
	if entry.Fields["source"] != "swpc" {
		t.Errorf("Fields[source] = %v, want swpc", entry.Fields["source"])
	}
	if entry.Fields["samples"] != float64(120) { // JSON numbers are float64
		t.Errorf("Fields[samples] = %v, want 120", entry.Fields["samples"])
	}
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer

	log := New(Config{
		Level:     INFO,
		Format:    TextFormat,
		Output:    &buf,
		Component: "poller",
	})

	log.Info("poll loop started", map[string]interface{}{"interval": "5m"})

	out := buf.String()
	for _, want := range []string{"INFO", "[poller]", "poll loop started", "interval=5m"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q: %s", want, out)
		}
	}
}

func TestErrorField(t *testing.T) {
	var buf bytes.Buffer

	log := New(Config{Level: INFO, Format: JSONFormat, Output: &buf})
	log.Error("fetch failed", errors.New("connection refused"))

	var entry Entry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}
	if entry.Error != "connection refused" {
		t.Errorf("Error = %q, want 'connection refused'", entry.Error)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer

	base := New(Config{Level: DEBUG, Format: JSONFormat, Output: &buf})
	child := base.WithComponent("storage")

	child.Info("bundle stored")

	var entry Entry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}
	if entry.Component != "storage" {
		t.Errorf("Component = %q, want storage", entry.Component)
	}
}

func TestFormattedVariants(t *testing.T) {
	var buf bytes.Buffer

	log := New(Config{Level: DEBUG, Format: TextFormat, Output: &buf})
	log.Infof("stored %d files in %s", 7, "bundles/2024")

	if !strings.Contains(buf.String(), "stored 7 files in bundles/2024") {
		t.Errorf("formatted message missing: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"debug", DEBUG, true},
		{"INFO", INFO, true},
		{"Warn", WARN, true},
		{"warning", WARN, true},
		{"error", ERROR, true},
		{"fatal", FATAL, true},
		{"verbose", INFO, false},
		{"", INFO, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"json", JSONFormat, true},
		{"JSON", JSONFormat, true},
		{"text", TextFormat, true},
		{"yaml", TextFormat, false},
	}
	for _, tt := range tests {
		got, ok := ParseFormat(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseFormat(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
