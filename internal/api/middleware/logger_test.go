package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"log/slog"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func TestStructuredLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"ok":true}`))
	})

	handler := chimiddleware.RequestID(StructuredLogger(logger)(nextHandler))

	req := httptest.NewRequest(http.MethodPost, "/loans", nil)
	req.Header.Set("User-Agent", "test-agent")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to decode log entry: %v", err)
	}

	if entry["msg"] != "Served request" {
		t.Errorf("expected msg %q, got %v", "Served request", entry["msg"])
	}
	if entry["method"] != "POST" {
		t.Errorf("expected method POST, got %v", entry["method"])
	}
	if entry["path"] != "/loans" {
		t.Errorf("expected path /loans, got %v", entry["path"])
	}
	if entry["user_agent"] != "test-agent" {
		t.Errorf("expected user_agent test-agent, got %v", entry["user_agent"])
	}
	if entry["status"] != float64(http.StatusCreated) {
		t.Errorf("expected status %d, got %v", http.StatusCreated, entry["status"])
	}
	if entry["bytes_written"] != float64(11) {
		t.Errorf("expected bytes_written 11, got %v", entry["bytes_written"])
	}
	if entry["request_id"] == "" {
		t.Error("expected a request_id")
	}
	if _, ok := entry["latency_ms"].(float64); !ok {
		t.Errorf("expected numeric latency_ms, got %v", entry["latency_ms"])
	}
}
