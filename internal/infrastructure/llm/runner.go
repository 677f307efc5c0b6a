package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"helpdesk/internal/domain/agent"
	"helpdesk/internal/domain/thread"
	"helpdesk/internal/shared/logger"
)

const defaultTimeout = 60 * time.Second

// ChatRunner produces agent replies through an OpenAI compatible chat
// completions endpoint. The agent record supplies the model name and the
// system prompt; the runner only handles transport.
type ChatRunner struct {
	baseURL    string
	apiKey     string
	maxTokens  int
	httpClient *http.Client
	logger     logger.Interface
}

func NewChatRunner(baseURL, apiKey string, timeoutSeconds, maxTokens int, log logger.Interface) (*ChatRunner, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("llm base URL is required")
	}
	timeout := defaultTimeout
	if timeoutSeconds > 0 {
		timeout = time.Duration(timeoutSeconds) * time.Second
	}

	return &ChatRunner{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		maxTokens:  maxTokens,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log.Named("llm"),
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

// Reply sends the system prompt, the conversation so far and the new user
// message to the model and returns its answer.
func (r *ChatRunner) Reply(ctx context.Context, ag *agent.Agent, history []*thread.Message, userMessage *thread.Message) (string, int, error) {
	messages := make([]chatMessage, 0, len(history)+2)
	messages = append(messages, chatMessage{Role: "system", Content: ag.SystemPrompt()})
	for _, m := range history {
		messages = append(messages, chatMessage{Role: wireRole(m.Role()), Content: m.Content()})
	}
	messages = append(messages, chatMessage{Role: "user", Content: userMessage.Content()})

	payload, err := json.Marshal(chatRequest{
		Model:     ag.ModelName(),
		Messages:  messages,
		MaxTokens: r.maxTokens,
	})
	if err != nil {
		return "", 0, fmt.Errorf("failed to marshal chat request: %w", err)
	}

	url := r.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", 0, fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	start := time.Now()
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", 0, fmt.Errorf("model endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", 0, fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", 0, fmt.Errorf("model returned no choices")
	}

	r.logger.Debugw("agent reply generated",
		"model", ag.ModelName(),
		"tokens", parsed.Usage.TotalTokens,
		"latency", time.Since(start).String())

	return parsed.Choices[0].Message.Content, parsed.Usage.TotalTokens, nil
}

// wireRole maps thread message roles onto the chat completions roles. Agent
// turns go back to the model as assistant turns.
func wireRole(role thread.MessageRole) string {
	switch role {
	case thread.RoleAgent:
		return "assistant"
	case thread.RoleSystem:
		return "system"
	default:
		return "user"
	}
}
