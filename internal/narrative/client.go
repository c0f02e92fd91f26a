// Package narrative decorates a selected dungeon with human-readable text
// from an Ollama-compatible completion endpoint. The generative core never
// depends on this package; narration failures degrade to template text.
package narrative

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to an Ollama-compatible completion endpoint.
type Client struct {
	url     string
	model   string
	options map[string]any
	hc      *http.Client
}

// NewClient builds a client from the narration configuration.
func NewClient(cfg Config) *Client {
	path := strings.TrimSpace(cfg.CompletionPath)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	timeout := time.Duration(cfg.TimeoutSeconds * float64(time.Second))
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		url:     strings.TrimRight(cfg.Endpoint, "/") + path,
		model:   cfg.Model,
		options: cfg.Options,
		hc:      &http.Client{Timeout: timeout},
	}
}

// Generate requests one completion. The system prompt, when present, is
// prepended to the user prompt.
func (c *Client) Generate(prompt, system string) (string, error) {
	merged := strings.TrimSpace(prompt)
	if system = strings.TrimSpace(system); system != "" {
		merged = system + "\n\n" + merged
	}

	payload := map[string]any{
		"model":  c.model,
		"prompt": merged,
		"stream": false,
	}
	for k, v := range c.options {
		payload[k] = v
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode narration request: %w", err)
	}

	resp, err := c.hc.Post(c.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("narration request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read narration response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("narration endpoint returned status %d: %s", resp.StatusCode, raw)
	}

	var parsed struct {
		Response string `json:"response"`
		Error    string `json:"error"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("malformed narration response: %w", err)
	}
	if parsed.Error != "" {
		return "", fmt.Errorf("narration endpoint error: %s", parsed.Error)
	}
	return strings.TrimSpace(parsed.Response), nil
}
