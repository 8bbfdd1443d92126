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
	defaultOpenAIModel   = "gpt-4o"
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultSystemPrompt  = "You are a helpful assistant for music metadata and summaries."
)

// OpenAI calls the chat completions API
type OpenAI struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewOpenAI creates the client. An empty apiKey yields an unconfigured completer.
func NewOpenAI(apiKey, model, baseURL string, httpClient *http.Client) *OpenAI {
	if model == "" {
		model = defaultOpenAIModel
	}
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OpenAI{apiKey: apiKey, model: model, baseURL: strings.TrimSuffix(baseURL, "/"), client: httpClient}
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Configured() bool { return o.apiKey != "" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func (o *OpenAI) Complete(ctx context.Context, req Request) (*Completion, error) {
	if !o.Configured() {
		return nil, errors.ErrNotConfigured
	}

	system := req.System
	if system == "" {
		system = defaultSystemPrompt
	}
	body, err := json.Marshal(chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: req.Prompt},
		},
		MaxTokens:   req.maxTokens(),
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: openai request failed: %w", errors.ErrCollaboratorFailure, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read openai response: %w", errors.ErrCollaboratorFailure, err)
	}

	var chat chatResponse
	if err := json.Unmarshal(respBody, &chat); err != nil {
		return nil, fmt.Errorf("%w: failed to parse openai response (status %d): %w", errors.ErrCollaboratorFailure, resp.StatusCode, err)
	}
	if chat.Error != nil {
		return nil, fmt.Errorf("%w: openai API error: %s (type: %s)", errors.ErrCollaboratorFailure, chat.Error.Message, chat.Error.Type)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: openai API returned status %d", errors.ErrCollaboratorFailure, resp.StatusCode)
	}
	if len(chat.Choices) == 0 {
		return nil, unusable(o.Name())
	}

	text := strings.TrimSpace(chat.Choices[0].Message.Content)
	if text == "" {
		return nil, unusable(o.Name())
	}
	model := chat.Model
	if model == "" {
		model = o.model
	}
	return &Completion{Text: text, Model: model, Provider: o.Name()}, nil
}
