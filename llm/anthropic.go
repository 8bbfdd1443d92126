package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jrsteele09/now-playing/internal/errors"
)

const (
	defaultAnthropicModel   = "claude-3-haiku-20240307"
	defaultAnthropicBaseURL = "https://api.anthropic.com/v1"
	anthropicVersion        = "2023-06-01"
)

// Anthropic calls the messages API
type Anthropic struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewAnthropic creates the client. An empty apiKey yields an unconfigured completer.
func NewAnthropic(apiKey, model, baseURL string, httpClient *http.Client) *Anthropic {
	if model == "" {
		model = defaultAnthropicModel
	}
	if baseURL == "" {
		baseURL = defaultAnthropicBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Anthropic{apiKey: apiKey, model: model, baseURL: strings.TrimSuffix(baseURL, "/"), client: httpClient}
}

func (a *Anthropic) Name() string { return "anthropic" }

func (a *Anthropic) Configured() bool { return a.apiKey != "" }

type messagesRequest struct {
	Model       string        `json:"model"`
	System      string        `json:"system,omitempty"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature,omitempty"`
}

type messagesResponse struct {
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (a *Anthropic) Complete(ctx context.Context, req Request) (*Completion, error) {
	if !a.Configured() {
		return nil, errors.ErrNotConfigured
	}

	body, err := json.Marshal(messagesRequest{
		Model:       a.model,
		System:      req.System,
		Messages:    []chatMessage{{Role: "user", Content: req.Prompt}},
		MaxTokens:   req.maxTokens(),
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", a.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: anthropic request failed: %w", errors.ErrCollaboratorFailure, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read anthropic response: %w", errors.ErrCollaboratorFailure, err)
	}

	var msg messagesResponse
	if err := json.Unmarshal(respBody, &msg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse anthropic response (status %d): %w", errors.ErrCollaboratorFailure, resp.StatusCode, err)
	}
	if msg.Error != nil {
		return nil, fmt.Errorf("%w: anthropic API error: %s (type: %s)", errors.ErrCollaboratorFailure, msg.Error.Message, msg.Error.Type)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: anthropic API returned status %d", errors.ErrCollaboratorFailure, resp.StatusCode)
	}

	// first text block only
	for _, block := range msg.Content {
		if block.Type != "text" {
			continue
		}
		text := strings.TrimSpace(block.Text)
		if text == "" {
			break
		}
		model := msg.Model
		if model == "" {
			model = a.model
		}
		return &Completion{Text: text, Model: model, Provider: a.Name()}, nil
	}
	return nil, unusable(a.Name())
}
