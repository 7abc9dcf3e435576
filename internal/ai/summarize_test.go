package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSummarizeReturnsFallbackWhenUnreachable(t *testing.T) {
	// Grab an address that is guaranteed to refuse connections.
	srv := httptest.NewServer(http.NotFoundHandler())
	deadURL := srv.URL
	srv.Close()

	c := NewClient(deadURL, "test-model")
	c.httpc = &http.Client{Timeout: time.Second}

	got := c.SummarizeOpportunity(context.Background(), "A very long opportunity description.")
	if got != SummaryFallback {
		t.Errorf("expected fallback %q, got %q", SummaryFallback, got)
	}
}

func TestSummarizeParsesBackendResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response": "{\"summary\": \"Fully funded scholarship, apply by June.\"}", "done": true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-model")
	got := c.SummarizeOpportunity(context.Background(), "details")
	if got != "Fully funded scholarship, apply by June." {
		t.Errorf("unexpected summary: %q", got)
	}
}

func TestSummarizeFallsBackOnGarbageOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response": "sorry, I cannot help with that", "done": true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-model")
	if got := c.SummarizeOpportunity(context.Background(), "details"); got != SummaryFallback {
		t.Errorf("expected fallback for non-JSON output, got %q", got)
	}
}

func TestParseSummaryUnwrapsCodeFences(t *testing.T) {
	got, err := parseSummary("```json\n{\"summary\": \"Short and sweet.\"}\n```")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Short and sweet." {
		t.Errorf("unexpected summary %q", got)
	}

	if _, err := parseSummary(`{"summary": "  "}`); err == nil {
		t.Error("blank summary must be rejected so the fallback applies")
	}
}
