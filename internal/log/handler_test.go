package log_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	ctxlog "github.com/ErlanBelekov/domain-gateway/internal/log"
	"github.com/ErlanBelekov/domain-gateway/internal/requestid"
)

func TestNew_JSONCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := ctxlog.New(&buf, "production", slog.LevelInfo)

	ctx := requestid.WithRequestID(context.Background(), "req-42")
	logger.With("component", "test").InfoContext(ctx, "hello")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if rec["request_id"] != "req-42" {
		t.Errorf("request_id = %v, want req-42", rec["request_id"])
	}
	if rec["component"] != "test" {
		t.Errorf("component = %v, want test", rec["component"])
	}
}

func TestNew_NoRequestIDWhenAbsent(t *testing.T) {
	var buf bytes.Buffer
	ctxlog.New(&buf, "production", slog.LevelInfo).Info("hello")

	if bytes.Contains(buf.Bytes(), []byte("request_id")) {
		t.Errorf("unexpected request_id in %s", buf.String())
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	ctxlog.New(&buf, "local", slog.LevelWarn).Info("quiet")

	if buf.Len() != 0 {
		t.Errorf("info record written at warn level: %s", buf.String())
	}
}

func TestWithAttrs_AccumulateOnRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := ctxlog.New(&buf, "production", slog.LevelInfo)

	ctx := ctxlog.WithAttrs(context.Background(), slog.String("user_id", "user-1"))
	ctx = ctxlog.WithAttrs(ctx, slog.String("generation", "v2"))
	logger.InfoContext(ctx, "hello")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if rec["user_id"] != "user-1" || rec["generation"] != "v2" {
		t.Errorf("record = %v, want user_id and generation", rec)
	}
}
