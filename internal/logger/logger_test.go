package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New("info").Output(&buf)

	log.Info().Msg("queue drained")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected valid JSON output, got error: %v, output: %s", err, buf.String())
	}
	if entry["message"] != "queue drained" {
		t.Errorf("expected message 'queue drained', got %v", entry["message"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("expected 'time' field in JSON output")
	}
}

func TestNew_InvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New("loud").Output(&buf)

	log.Debug().Msg("debug message")
	if buf.Len() > 0 {
		t.Error("expected debug message to be filtered at info level")
	}

	log.Info().Msg("info message")
	if buf.Len() == 0 {
		t.Error("expected info message to appear at info level")
	}
}

func TestNewFromConfig_StdoutDefault(t *testing.T) {
	log := NewFromConfig(Config{Level: "warn", Output: "stdout"})

	var buf bytes.Buffer
	log = log.Output(&buf)

	log.Info().Msg("filtered")
	if buf.Len() > 0 {
		t.Error("expected info to be filtered at warn level")
	}
	log.Warn().Msg("kept")
	if buf.Len() == 0 {
		t.Error("expected warn message to appear at warn level")
	}
}

func TestCorrelationID_RoundTrip(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "cycle-42")
	if got := CorrelationIDFromContext(ctx); got != "cycle-42" {
		t.Errorf("expected correlation ID cycle-42, got %s", got)
	}
	if got := CorrelationIDFromContext(context.Background()); got != "" {
		t.Errorf("expected empty correlation ID, got %s", got)
	}
}

func TestFromContext_AttachesCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	log := New("info").Output(&buf)

	ctx := WithLogger(context.Background(), log)
	ctx = WithCorrelationID(ctx, "req-abc-123")

	ctxLog := FromContext(ctx)
	ctxLog.Info().Msg("request handled")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected valid JSON, got error: %v, output: %s", err, buf.String())
	}
	if entry["correlation_id"] != "req-abc-123" {
		t.Errorf("expected correlation_id 'req-abc-123', got %v", entry["correlation_id"])
	}
}

func TestNewCorrelationID_Unique(t *testing.T) {
	a, b := NewCorrelationID(), NewCorrelationID()
	if a == "" || a == b {
		t.Errorf("expected distinct non-empty IDs, got %q and %q", a, b)
	}
}
