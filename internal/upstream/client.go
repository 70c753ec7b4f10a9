package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Client performs single generateContent calls against the Gemini REST
// API. The credential and endpoint are injected once at construction so
// the configuration-error path needs no environment manipulation.
type Client struct {
	baseURL string
	model   string
	apiKey  string
	httpc   *http.Client
}

func NewClient(baseURL, model, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
		apiKey:  apiKey,
		// No client-wide timeout: callers that need one pass it per
		// request; the chat path inherits the transport default.
		httpc: &http.Client{},
	}
}

// ConfigurationError means the required credential is absent. Fatal to
// the request, not to the process.
type ConfigurationError struct{ Message string }

func (e *ConfigurationError) Error() string { return e.Message }

// TransportError means no response was received from the upstream.
type TransportError struct{ Err error }

func (e *TransportError) Error() string { return fmt.Sprintf("request error: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamError means the upstream responded, but unusably: an error
// status or an empty candidate.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string { return e.Message }

// Generate posts req to the generateContent endpoint and returns the
// first candidate's first text part. A timeout of zero means no
// per-call deadline.
func (c *Client) Generate(ctx context.Context, req *Request, timeout time.Duration) (string, error) {
	if c.apiKey == "" {
		return "", &ConfigurationError{Message: "Gemini API key is not configured"}
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode Gemini request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"?key="+c.apiKey, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build Gemini request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		// Do not log the full URL, it carries the credential.
		log.Printf("Gemini request error: POST %s: %v", endpoint, err)
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		log.Printf("Gemini application error: status %d, body: %s", resp.StatusCode, respBody)
		return "", &UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Gemini returned status %d", resp.StatusCode),
		}
	}

	var parsed Response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		log.Printf("Gemini response decode error: %v", err)
		return "", &UpstreamError{StatusCode: resp.StatusCode, Message: "Gemini returned an unreadable body"}
	}

	text := firstCandidateText(&parsed)
	if strings.TrimSpace(text) == "" {
		log.Println("WARNING: Gemini returned empty candidate text")
		return "", &UpstreamError{StatusCode: resp.StatusCode, Message: "Gemini returned an empty response"}
	}

	return text, nil
}

func firstCandidateText(resp *Response) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return ""
	}
	return content.Parts[0].Text
}
