package translator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOllamaService_Translate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model  string `json:"model"`
			Prompt string `json:"prompt"`
			Stream bool   `json:"stream"`
		}
		json.NewDecoder(r.Body).Decode(&req)

		if req.Model != "llama3.2" {
			t.Errorf("expected model 'llama3.2', got %q", req.Model)
		}
		if req.Stream {
			t.Error("expected stream=false")
		}
		if !strings.Contains(req.Prompt, "from en to ru") {
			t.Errorf("prompt missing language pair: %q", req.Prompt)
		}

		json.NewEncoder(w).Encode(map[string]string{"response": "Привет, мир!"})
	}))
	defer server.Close()

	svc := NewOllamaService(server.URL, "")

	result, err := svc.Translate(context.Background(), ServiceConfig{}, Request{
		Text:       "Hello, world!",
		SourceLang: "en",
		TargetLang: "ru",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TranslatedText != "Привет, мир!" {
		t.Errorf("expected 'Привет, мир!', got %q", result.TranslatedText)
	}
	if result.Latency <= 0 {
		t.Error("expected positive latency")
	}
}

func TestOllamaService_Translate_CleansOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"response": `"Привет, мир!"`})
	}))
	defer server.Close()

	svc := NewOllamaService(server.URL, "gemma2:2b")

	result, err := svc.Translate(context.Background(), ServiceConfig{}, Request{
		Text:       "Hello, world!",
		SourceLang: "en",
		TargetLang: "ru",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TranslatedText != "Привет, мир!" {
		t.Errorf("expected quotes stripped, got %q", result.TranslatedText)
	}
}

func TestOllamaService_Translate_ApiError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewOllamaService(server.URL, "")

	result, err := svc.Translate(context.Background(), ServiceConfig{}, Request{
		Text:       "Hello",
		SourceLang: "en",
		TargetLang: "ru",
	})
	if err == nil {
		t.Error("expected error for non-OK status")
	}
	if result.Error == "" {
		t.Error("expected error message in result")
	}
}

func TestOllamaService_IsAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("expected /api/tags, got %s", r.URL.Path)
		}
	}))
	defer server.Close()

	svc := NewOllamaService(server.URL, "")

	if err := svc.IsAvailable(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestOllamaService_Defaults(t *testing.T) {
	svc := NewOllamaService("", "")

	if svc.baseURL != "http://localhost:11434" {
		t.Errorf("expected default base URL, got %q", svc.baseURL)
	}
	if svc.model != DefaultOllamaModel {
		t.Errorf("expected default model, got %q", svc.model)
	}
}

func TestOllamaService_Name(t *testing.T) {
	if NewOllamaService("", "").Name() != "ollama" {
		t.Error("expected service name 'ollama'")
	}
}

func TestMyMemoryService_Name(t *testing.T) {
	if NewMyMemoryService("").Name() != "mymemory" {
		t.Error("expected service name 'mymemory'")
	}
}

func TestMyMemoryService_IsAvailable(t *testing.T) {
	svc := NewMyMemoryService("test@example.com")

	if err := svc.IsAvailable(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGoogleService_Translate_InvalidLanguage(t *testing.T) {
	svc := NewGoogleService("")

	result, err := svc.Translate(context.Background(), ServiceConfig{}, Request{
		Text:       "Hello",
		SourceLang: "not-a-lang-code!!",
		TargetLang: "ru",
	})
	if err == nil {
		t.Error("expected error for invalid source language")
	}
	if result.Error == "" {
		t.Error("expected error message in result")
	}
}

func TestGoogleService_Name(t *testing.T) {
	if NewGoogleService("").Name() != "google" {
		t.Error("expected service name 'google'")
	}
}
