package translator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/valpere/obratno/internal/session"
	"github.com/valpere/obratno/internal/translator"
)

type fakeService struct {
	name          string
	translateFunc func(ctx context.Context, cfg translator.ServiceConfig, req translator.Request) (*translator.Result, error)
}

func (f *fakeService) Name() string { return f.name }

func (f *fakeService) Translate(ctx context.Context, cfg translator.ServiceConfig, req translator.Request) (*translator.Result, error) {
	if f.translateFunc != nil {
		return f.translateFunc(ctx, cfg, req)
	}
	return &translator.Result{ServiceName: f.name, TranslatedText: "ok"}, nil
}

func (f *fakeService) IsAvailable(ctx context.Context) error { return nil }

func TestPair_DirectionSwap(t *testing.T) {
	var requests []translator.Request
	svc := &fakeService{
		name: "fake",
		translateFunc: func(ctx context.Context, cfg translator.ServiceConfig, req translator.Request) (*translator.Result, error) {
			requests = append(requests, req)
			return &translator.Result{ServiceName: "fake", TranslatedText: "text"}, nil
		},
	}

	pair := translator.NewPair(svc, translator.ServiceConfig{}, "en", "ru")

	if _, err := pair.TranslateForward(context.Background(), "Hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := pair.TranslateBackward(context.Background(), "Привет"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(requests))
	}
	if requests[0].SourceLang != "en" || requests[0].TargetLang != "ru" {
		t.Errorf("forward request has wrong pair: %s→%s", requests[0].SourceLang, requests[0].TargetLang)
	}
	if requests[1].SourceLang != "ru" || requests[1].TargetLang != "en" {
		t.Errorf("backward request has wrong pair: %s→%s", requests[1].SourceLang, requests[1].TargetLang)
	}
}

func TestPair_ErrorPropagation(t *testing.T) {
	inner := errors.New("connection refused")
	svc := &fakeService{
		name: "fake",
		translateFunc: func(ctx context.Context, cfg translator.ServiceConfig, req translator.Request) (*translator.Result, error) {
			return &translator.Result{ServiceName: "fake", Error: inner.Error()}, inner
		},
	}

	pair := translator.NewPair(svc, translator.ServiceConfig{}, "en", "ru")

	_, err := pair.TranslateForward(context.Background(), "Hello")
	if !errors.Is(err, inner) {
		t.Errorf("expected wrapped inner error, got %v", err)
	}
}

func TestPair_ResultErrorWithoutGoError(t *testing.T) {
	svc := &fakeService{
		name: "fake",
		translateFunc: func(ctx context.Context, cfg translator.ServiceConfig, req translator.Request) (*translator.Result, error) {
			return &translator.Result{ServiceName: "fake", Error: "quota exceeded"}, nil
		},
	}

	pair := translator.NewPair(svc, translator.ServiceConfig{}, "en", "ru")

	if _, err := pair.TranslateForward(context.Background(), "Hello"); err == nil {
		t.Error("expected error when result carries an error message")
	}
}

func TestPair_EmptyTranslation(t *testing.T) {
	svc := &fakeService{
		name: "fake",
		translateFunc: func(ctx context.Context, cfg translator.ServiceConfig, req translator.Request) (*translator.Result, error) {
			return &translator.Result{ServiceName: "fake"}, nil
		},
	}

	pair := translator.NewPair(svc, translator.ServiceConfig{}, "en", "ru")

	if _, err := pair.TranslateBackward(context.Background(), "Привет"); err == nil {
		t.Error("expected error for empty translation")
	}
}

func TestPairImplementsSessionTranslator(t *testing.T) {
	var _ session.Translator = (*translator.Pair)(nil)
}
