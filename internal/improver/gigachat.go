package improver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/valpere/obratno/internal/postprocess"
)

const (
	DefaultGigaChatURL   = "https://gigachat.devices.sberbank.ru/api/v1"
	DefaultGigaChatModel = "GigaChat:latest"
)

// GigaChat improves translations through the Sber GigaChat chat-completions API.
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

// Improve returns a rewritten Russian text. An empty reply after artifact
// cleanup falls back to the input text unchanged.
func (g *GigaChat) Improve(ctx context.Context, russianText, suggestions string) (string, error) {
	reqBody := chatRequest{
		Model:       g.model,
		Messages:    []chatMessage{{Role: "user", Content: buildImprovePrompt(russianText, suggestions)}},
		MaxTokens:   200,
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
		return "", fmt.Errorf("improvement request failed: %w", err)
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

	improved := postprocess.Clean(chatResp.Choices[0].Message.Content)
	if improved == "" {
		return russianText, nil
	}
	return improved, nil
}
