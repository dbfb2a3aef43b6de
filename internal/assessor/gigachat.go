package assessor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/valpere/obratno/internal/session"
)

const (
	DefaultGigaChatURL   = "https://gigachat.devices.sberbank.ru/api/v1"
	DefaultGigaChatModel = "GigaChat:latest"
)

// GigaChat assesses translations through the Sber GigaChat chat-completions
// API. The access token is passed in; token negotiation is the caller's
// problem.
type GigaChat struct {
	token   string
	model   string
	baseURL string
	client  *http.Client
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewGigaChat creates the assessor backend. Empty model and baseURL fall
// back to the GigaChat defaults.
func NewGigaChat(token, model, baseURL string) *GigaChat {
	if model == "" {
		model = DefaultGigaChatModel
	}
	if baseURL == "" {
		baseURL = DefaultGigaChatURL
	}
	return &GigaChat{
		token:   token,
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Compare scores backTranslated against original and returns suggestions for
// improving the underlying Russian translation.
func (g *GigaChat) Compare(ctx context.Context, original, backTranslated string) (session.Assessment, error) {
	reply, err := g.complete(ctx, buildComparePrompt(original, backTranslated), 500)
	if err != nil {
		return session.Assessment{}, err
	}
	return parseAssessment(reply)
}

func (g *GigaChat) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	reqBody := chatRequest{
		Model:       g.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: 0.3,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/chat/completions", g.baseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", g.token))

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("assessment request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GigaChat returned status %d", resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("empty choices in GigaChat response")
	}

	return chatResp.Choices[0].Message.Content, nil
}
