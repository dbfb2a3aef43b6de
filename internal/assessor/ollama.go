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

// Ollama assesses translations through a local Ollama model using the same
// prompt and reply format as the GigaChat backend.
type Ollama struct {
	model   string
	baseURL string
	client  *http.Client
}

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

func NewOllama(model, baseURL string) *Ollama {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	return &Ollama{
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (o *Ollama) Compare(ctx context.Context, original, backTranslated string) (session.Assessment, error) {
	reqBody := ollamaRequest{
		Model:  o.model,
		Prompt: buildComparePrompt(original, backTranslated),
		Stream: false,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return session.Assessment{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/api/generate", o.baseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return session.Assessment{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return session.Assessment{}, fmt.Errorf("assessment request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return session.Assessment{}, fmt.Errorf("assessor returned status %d", resp.StatusCode)
	}

	var ollamaResp ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&ollamaResp); err != nil {
		return session.Assessment{}, fmt.Errorf("failed to decode response: %w", err)
	}

	return parseAssessment(ollamaResp.Response)
}
