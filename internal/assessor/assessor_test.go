package assessor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/valpere/obratno/internal/session"
)

func TestParseAssessment(t *testing.T) {
	reply := "SIMILARITY: 0.85\nSUGGESTIONS: Consider improving word choice."

	a, err := parseAssessment(reply)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Score != 0.85 {
		t.Errorf("expected score 0.85, got %v", a.Score)
	}
	if a.Suggestions != "Consider improving word choice." {
		t.Errorf("unexpected suggestions: %q", a.Suggestions)
	}
}

func TestParseAssessment_ExtraProse(t *testing.T) {
	reply := "Let me evaluate these texts.\n\nSIMILARITY: 0.7\nSUGGESTIONS: none\n\nHope this helps!"

	a, err := parseAssessment(reply)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Score != 0.7 {
		t.Errorf("expected score 0.7, got %v", a.Score)
	}
}

func TestParseAssessment_ClampsScore(t *testing.T) {
	for reply, want := range map[string]float64{
		"SIMILARITY: 1.3":  1.0,
		"SIMILARITY: -0.2": 0.0,
	} {
		a, err := parseAssessment(reply)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", reply, err)
		}
		if a.Score != want {
			t.Errorf("parseAssessment(%q).Score = %v, want %v", reply, a.Score, want)
		}
	}
}

func TestParseAssessment_MissingScore(t *testing.T) {
	if _, err := parseAssessment("SUGGESTIONS: do better"); err == nil {
		t.Error("expected error when SIMILARITY line is missing")
	}
}

func TestParseAssessment_UnparseableScore(t *testing.T) {
	if _, err := parseAssessment("SIMILARITY: quite high"); err == nil {
		t.Error("expected error for non-numeric score")
	}
}

func TestGigaChat_Compare(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("expected /chat/completions, got %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-token" {
			t.Errorf("unexpected authorization header: %q", auth)
		}

		var req chatRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Model != DefaultGigaChatModel {
			t.Errorf("expected default model, got %q", req.Model)
		}
		if len(req.Messages) != 1 || !strings.Contains(req.Messages[0].Content, "BACK-TRANSLATED") {
			t.Error("expected compare prompt in single user message")
		}

		w.Write([]byte(`{"choices":[{"message":{"content":"SIMILARITY: 0.85\nSUGGESTIONS: Consider improving word choice."}}]}`))
	}))
	defer server.Close()

	g := NewGigaChat("test-token", "", server.URL)

	a, err := g.Compare(context.Background(), "Hello you beautiful people!", "Hello, you beautiful people!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Score != 0.85 {
		t.Errorf("expected score 0.85, got %v", a.Score)
	}
	if a.Suggestions == "" {
		t.Error("expected non-empty suggestions")
	}
}

func TestGigaChat_Compare_ApiError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	g := NewGigaChat("test-token", "", server.URL)

	if _, err := g.Compare(context.Background(), "a", "b"); err == nil {
		t.Error("expected error for non-OK status")
	}
}

func TestGigaChat_Compare_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatResponse{})
	}))
	defer server.Close()

	g := NewGigaChat("test-token", "", server.URL)

	if _, err := g.Compare(context.Background(), "a", "b"); err == nil {
		t.Error("expected error for empty choices")
	}
}

func TestOllama_Compare(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Stream {
			t.Error("expected stream=false")
		}

		json.NewEncoder(w).Encode(ollamaResponse{Response: "SIMILARITY: 0.6\nSUGGESTIONS: tighten phrasing"})
	}))
	defer server.Close()

	o := NewOllama("llama3.2", server.URL)

	a, err := o.Compare(context.Background(), "Hello", "Hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Score != 0.6 {
		t.Errorf("expected score 0.6, got %v", a.Score)
	}
}

func TestOllama_Compare_MalformedReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaResponse{Response: "I think they are similar."})
	}))
	defer server.Close()

	o := NewOllama("llama3.2", server.URL)

	if _, err := o.Compare(context.Background(), "Hello", "Hi"); err == nil {
		t.Error("expected error for reply without SIMILARITY line")
	}
}

func TestAssessorInterfaces(t *testing.T) {
	var _ session.Assessor = (*GigaChat)(nil)
	var _ session.Assessor = (*Ollama)(nil)
}
