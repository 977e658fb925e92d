package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jonwraymond/devsecops-app/health"
	"github.com/jonwraymond/devsecops-app/observe"
)

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGreeting(t *testing.T) {
	h := New(Config{Flag: health.NewFlag()})

	rec := serve(h, http.MethodGet, "/", "")

	if rec.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Hello from DevSecOps App") {
		t.Errorf("Body = %q, want greeting", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("Content-Type = %v, want text/plain; charset=utf-8", ct)
	}
}

func TestGreeting_Custom(t *testing.T) {
	rec := serve(New(Config{Greeting: "hi"}), http.MethodGet, "/", "")

	if rec.Body.String() != "hi" {
		t.Errorf("Body = %q, want 'hi'", rec.Body.String())
	}
}

func TestHealth_DefaultHealthy(t *testing.T) {
	rec := serve(New(Config{Flag: health.NewFlag()}), http.MethodGet, "/health", "")

	if rec.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"status":"healthy"}` {
		t.Errorf("Body = %v, want {\"status\":\"healthy\"}", got)
	}
}

func TestToggleRoundTrip(t *testing.T) {
	flag := health.NewFlag()
	h := New(Config{Flag: flag})

	rec := serve(h, http.MethodPost, "/toggle-health", `{"healthy": false}`)
	if got := strings.TrimSpace(rec.Body.String()); got != `{"updated":false}` {
		t.Errorf("toggle Body = %v, want {\"updated\":false}", got)
	}

	rec = serve(h, http.MethodGet, "/health", "")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"status":"unhealthy"}` {
		t.Errorf("Body = %v, want {\"status\":\"unhealthy\"}", got)
	}

	serve(h, http.MethodPost, "/toggle-health", `{"healthy": true}`)
	rec = serve(h, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestToggle_RejectsNonBoolean(t *testing.T) {
	flag := health.NewFlag()
	h := New(Config{Flag: flag})

	rec := serve(h, http.MethodPost, "/toggle-health", `{"healthy": "no"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !flag.Healthy() {
		t.Error("flag changed by a rejected toggle")
	}
}

func TestMethodAndPathMismatch(t *testing.T) {
	h := New(Config{})

	tests := []struct {
		method, path string
		want         int
	}{
		{http.MethodPost, "/", http.StatusMethodNotAllowed},
		{http.MethodGet, "/toggle-health", http.StatusMethodNotAllowed},
		{http.MethodDelete, "/health", http.StatusMethodNotAllowed},
		{http.MethodGet, "/missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			if rec := serve(h, tt.method, tt.path, ""); rec.Code != tt.want {
				t.Errorf("Status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestMiddlewareWired(t *testing.T) {
	var buf bytes.Buffer
	logger := observe.NewJSONLogger(&buf, "info")
	obs, err := observe.NewObserver(context.Background(), observe.Config{ServiceName: "router-test"})
	if err != nil {
		t.Fatalf("NewObserver failed: %v", err)
	}
	mw := observe.NewMiddleware(observe.NewTracer(obs.Tracer()), logger)

	h := New(Config{Middleware: mw, Logger: logger})

	for _, path := range []string{"/health", "/missing"} {
		rec := serve(h, http.MethodGet, path, "")
		if rec.Header().Get(observe.RequestIDHeader) == "" {
			t.Errorf("%s: expected X-Request-ID header", path)
		}
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 access log lines, got %d: %s", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("failed to parse log line: %v", err)
	}
	if entry["route"] != "/health" {
		t.Errorf("route = %v, want '/health'", entry["route"])
	}
}

func TestRecoversPanics(t *testing.T) {
	var buf bytes.Buffer
	logger := observe.NewJSONLogger(&buf, "info")

	wrapped := recoverWith(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := serve(wrapped, http.MethodGet, "/", "")

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if !strings.Contains(buf.String(), "recovered from panic") {
		t.Errorf("expected panic log line, got %s", buf.String())
	}
}
