package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"mailrelay/internal/auth"
	"mailrelay/internal/providers"
	"mailrelay/internal/relay"

	"github.com/go-logr/logr"
)

type recordingTransport struct {
	mu     sync.Mutex
	pushes []string
}

func (t *recordingTransport) Push(_ context.Context, queue string, _ []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pushes = append(t.pushes, queue)
	return nil
}

func (t *recordingTransport) count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pushes)
}

func newTestServer(t *testing.T) (*Server, *recordingTransport) {
	t.Helper()
	authenticator, err := auth.New("test-secret")
	if err != nil {
		t.Fatal(err)
	}
	marshaller, err := providers.ForName("sendgrid")
	if err != nil {
		t.Fatal(err)
	}
	transport := &recordingTransport{}
	dispatcher := relay.NewDispatcher(relay.NewRoutes("test"), transport, logr.Discard(), nil)
	pipeline := relay.NewPipeline(authenticator, marshaller, dispatcher, logr.Discard())
	return NewServer(pipeline, logr.Discard()), transport
}

func TestHealthz(t *testing.T) {
	server, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	server.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status got %d want 200", rec.Code)
	}
}

func TestEventsRequiresPost(t *testing.T) {
	server, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/events", nil)
	rec := httptest.NewRecorder()
	server.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status got %d want 405", rec.Code)
	}
}

func TestEventsAuthenticatedBatch(t *testing.T) {
	server, transport := newTestServer(t)
	body := `[
		{"event":"delivered","email":"a@example.com"},
		{"event":"bounce","email":"b@example.com"}
	]`
	req := httptest.NewRequest(http.MethodPost, "/v1/events?auth=test-secret", strings.NewReader(body))
	rec := httptest.NewRecorder()
	server.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status got %d want 200, body %q", rec.Code, rec.Body.String())
	}
	if got := rec.Body.String(); got != "Processed 2 events" {
		t.Fatalf("body got %q", got)
	}
	if transport.count() != 2 {
		t.Fatalf("expected 2 pushes, got %d", transport.count())
	}
}

func TestEventsWrongAuth(t *testing.T) {
	server, transport := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/events?auth=nope", strings.NewReader(`[{"event":"delivered","email":"a@example.com"}]`))
	rec := httptest.NewRecorder()
	server.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status got %d want 401", rec.Code)
	}
	if got := rec.Body.String(); got != "Unauthorized" {
		t.Fatalf("body got %q", got)
	}
	if transport.count() != 0 {
		t.Fatal("no pushes expected after failed auth")
	}
}

func TestEventsMissingAuth(t *testing.T) {
	server, transport := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/events", strings.NewReader(`[]`))
	rec := httptest.NewRecorder()
	server.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status got %d want 401", rec.Code)
	}
	if transport.count() != 0 {
		t.Fatal("no pushes expected without credentials")
	}
}

func TestEventsInvalidBody(t *testing.T) {
	server, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/events?auth=test-secret", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	server.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status got %d want 500", rec.Code)
	}
	if got := rec.Body.String(); got != "Internal Server Error" {
		t.Fatalf("body got %q", got)
	}
}
