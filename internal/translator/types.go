package translator

import (
	"context"
	"time"
)

// ServiceConfig carries per-call credentials and tuning shared by all
// backends. Fields irrelevant to a given backend are ignored.
type ServiceConfig struct {
	Credentials string        `mapstructure:"credentials" json:"credentials"`
	APIKey      string        `mapstructure:"api_key" json:"api_key"`
	Model       string        `mapstructure:"model" json:"model"`
	BaseURL     string        `mapstructure:"base_url" json:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout" json:"timeout"`
	ProjectID   string        `mapstructure:"project_id" json:"project_id"`
}

type Request struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

type Result struct {
	ServiceName    string        `json:"service_name"`
	TranslatedText string        `json:"translated_text"`
	Latency        time.Duration `json:"latency"`
	Error          string        `json:"error,omitempty"`
}

// Service is a single translation backend. Implementations fill Result.Error
// and return a non-nil error on failure; both are set so callers can log the
// result record and propagate the error.
type Service interface {
	Name() string
	Translate(ctx context.Context, cfg ServiceConfig, req Request) (*Result, error)
	IsAvailable(ctx context.Context) error
}
