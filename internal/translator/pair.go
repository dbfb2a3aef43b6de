package translator

import (
	"context"
	"fmt"
)

// Pair binds a Service to a fixed source/target language pair and exposes
// the two directional calls the improvement loop needs. The same backend
// handles both directions with the languages swapped.
type Pair struct {
	svc    Service
	cfg    ServiceConfig
	source string
	target string
}

// NewPair wraps svc for source→target forward translation and target→source
// back-translation.
func NewPair(svc Service, cfg ServiceConfig, source, target string) *Pair {
	return &Pair{svc: svc, cfg: cfg, source: source, target: target}
}

// TranslateForward translates text from the source to the target language.
func (p *Pair) TranslateForward(ctx context.Context, text string) (string, error) {
	return p.translate(ctx, text, p.source, p.target)
}

// TranslateBackward translates text from the target back to the source language.
func (p *Pair) TranslateBackward(ctx context.Context, text string) (string, error) {
	return p.translate(ctx, text, p.target, p.source)
}

func (p *Pair) translate(ctx context.Context, text, from, to string) (string, error) {
	result, err := p.svc.Translate(ctx, p.cfg, Request{
		Text:       text,
		SourceLang: from,
		TargetLang: to,
	})
	if err != nil {
		return "", fmt.Errorf("%s %s→%s: %w", p.svc.Name(), from, to, err)
	}
	if result.Error != "" {
		return "", fmt.Errorf("%s %s→%s: %s", p.svc.Name(), from, to, result.Error)
	}
	if result.TranslatedText == "" {
		return "", fmt.Errorf("%s %s→%s: empty translation", p.svc.Name(), from, to)
	}
	return result.TranslatedText, nil
}
