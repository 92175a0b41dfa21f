package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func captureLogger(t *testing.T, handler func(*bytes.Buffer) slog.Handler) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	original := Logger()
	ReplaceLogger(slog.New(handler(buf)))
	t.Cleanup(func() {
		ReplaceLogger(original)
		_ = SetLevel("info")
	})
	return buf
}

func TestInfoProducesLogfmtWithTimestamp(t *testing.T) {
	buf := captureLogger(t, func(b *bytes.Buffer) slog.Handler { return newHandler(b) })

	Info(context.Background(), "hello", "product", "baguette")

	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatalf("expected log output, got empty string")
	}
	for _, want := range []string{"ts=", "level=info", "msg=hello", "product=baguette"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in log line, got %q", want, line)
		}
	}
}

func TestWithAttrsAddsContextFields(t *testing.T) {
	buf := captureLogger(t, func(b *bytes.Buffer) slog.Handler { return newHandler(b) })

	ctx := WithAttrs(context.Background(), "request_id", "abc123")
	ctx = WithAttrs(ctx, "route", "/products")
	Error(ctx, "store failed", "err", "boom")

	line := buf.String()
	for _, want := range []string{"request_id=abc123", "route=/products", "level=error", "err=boom"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in log line, got %q", want, line)
		}
	}
}

func TestSetLevelFiltersBelowThreshold(t *testing.T) {
	buf := captureLogger(t, func(b *bytes.Buffer) slog.Handler { return newHandler(b) })

	if err := SetLevel("warn"); err != nil {
		t.Fatalf("SetLevel(warn) error = %v", err)
	}
	Info(context.Background(), "quiet")
	Warn(context.Background(), "loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Fatalf("info line should be filtered at warn level, got %q", out)
	}
	if !strings.Contains(out, "level=warn") {
		t.Fatalf("expected warn line, got %q", out)
	}
}

func TestSetLevelRejectsUnknown(t *testing.T) {
	if err := SetLevel("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestJSONHandlerRenamesKeys(t *testing.T) {
	buf := captureLogger(t, func(b *bytes.Buffer) slog.Handler { return newJSONHandler(b) })

	Info(WithAttrs(context.Background(), "request_id", "r-1"), "hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode json log line: %v (%q)", err, buf.String())
	}
	if entry["level"] != "info" || entry["msg"] != "hello" || entry["request_id"] != "r-1" {
		t.Fatalf("unexpected json entry: %v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", entry)
	}
}

func TestSetFormatRejectsUnknown(t *testing.T) {
	if err := SetFormat("xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
