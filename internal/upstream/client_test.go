package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGenerate_Success(t *testing.T) {
	var gotReq Request
	var gotKey string
	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("Failed to decode upstream request: %v", err)
		}

		json.NewEncoder(w).Encode(Response{
			Candidates: []Candidate{
				{Content: &Content{Role: "model", Parts: []Part{{Text: "hello there"}}}},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "gemini-2.0-flash", "test-key")

	req := &Request{
		Contents:          []Content{{Role: "user", Parts: []Part{{Text: "hi"}}}},
		SystemInstruction: &Content{Parts: []Part{{Text: "be nice"}}},
	}

	text, err := client.Generate(context.Background(), req, 0)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if text != "hello there" {
		t.Errorf("Expected text 'hello there', got %q", text)
	}
	if gotPath != "/v1beta/models/gemini-2.0-flash:generateContent" {
		t.Errorf("Unexpected request path %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("Expected key query parameter 'test-key', got %q", gotKey)
	}
	if len(gotReq.Contents) != 1 || gotReq.Contents[0].Parts[0].Text != "hi" {
		t.Errorf("Upstream did not receive the caller's content: %+v", gotReq.Contents)
	}
	if gotReq.SystemInstruction == nil || gotReq.SystemInstruction.Parts[0].Text != "be nice" {
		t.Errorf("Upstream did not receive the system instruction: %+v", gotReq.SystemInstruction)
	}
}

func TestGenerate_MissingKeyShortCircuits(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	client := NewClient(server.URL, "gemini-2.0-flash", "")

	_, err := client.Generate(context.Background(), &Request{}, 0)

	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Expected ConfigurationError, got %v", err)
	}
	if calls != 0 {
		t.Errorf("Expected no network call, got %d", calls)
	}
}

func TestGenerate_UpstreamErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "quota exceeded"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "gemini-2.0-flash", "test-key")

	_, err := client.Generate(context.Background(), &Request{}, 0)

	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("Expected UpstreamError, got %v", err)
	}
	if upErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", upErr.StatusCode)
	}
}

func TestGenerate_EmptyCandidates(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no candidates", `{"candidates": []}`},
		{"nil content", `{"candidates": [{}]}`},
		{"no parts", `{"candidates": [{"content": {"parts": []}}]}`},
		{"blank text", `{"candidates": [{"content": {"parts": [{"text": "   "}]}}]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, "gemini-2.0-flash", "test-key")

			_, err := client.Generate(context.Background(), &Request{}, 0)

			var upErr *UpstreamError
			if !errors.As(err, &upErr) {
				t.Fatalf("Expected UpstreamError, got %v", err)
			}
		})
	}
}

func TestGenerate_TimeoutBounded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server's background read starts and the
		// request context is canceled when the client disconnects;
		// otherwise this handler blocks forever and Close deadlocks.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewClient(server.URL, "gemini-2.0-flash", "test-key")

	start := time.Now()
	_, err := client.Generate(context.Background(), &Request{}, 100*time.Millisecond)
	elapsed := time.Since(start)

	var trErr *TransportError
	if !errors.As(err, &trErr) {
		t.Fatalf("Expected TransportError, got %v", err)
	}
	if elapsed > time.Second {
		t.Errorf("Timeout not enforced: call took %v", elapsed)
	}
}
