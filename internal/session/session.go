// Package session drives the iterative back-translation improvement loop.
//
// A session translates English source text to Russian, then repeatedly
// back-translates the candidate to English, scores it against the original
// with an LLM assessor, and applies suggested refinements until the score
// reaches the configured threshold or the iteration budget runs out. The
// assessor and improver are optional; without them the session still
// produces translate/back-translate pairs (fallback mode).
package session

import (
	"context"
	"fmt"
)

// Outcome is the terminal state of a completed session.
type Outcome string

const (
	// OutcomeEarlyStopped means the similarity threshold was reached
	// before the iteration budget was spent.
	OutcomeEarlyStopped Outcome = "early_stopped"
	// OutcomeExhausted means all iterations ran without reaching the threshold.
	OutcomeExhausted Outcome = "exhausted"
	// OutcomeCancelled means the caller's context was cancelled between iterations.
	OutcomeCancelled Outcome = "cancelled"
)

// Attempt records one round of the loop. Scored is false when the assessor
// was unavailable for this round; Score and Suggestions are then meaningless.
type Attempt struct {
	Iteration      int     `json:"iteration"`
	RussianText    string  `json:"russian_text"`
	BackTranslated string  `json:"back_translated"`
	Score          float64 `json:"score"`
	Scored         bool    `json:"scored"`
	Suggestions    string  `json:"suggestions,omitempty"`
}

// Session is the full trace of one improvement run. Attempts are ordered by
// Iteration starting at 1. Best indexes the highest-scoring attempt, or the
// last attempt when nothing was scored; it is -1 only while no attempt exists.
type Session struct {
	SourceText    string    `json:"source_text"`
	MaxIterations int       `json:"max_iterations"`
	Attempts      []Attempt `json:"attempts"`
	Best          int       `json:"best"`
	Outcome       Outcome   `json:"outcome"`
}

// BestAttempt returns the best attempt, or nil when the session recorded none.
func (s *Session) BestAttempt() *Attempt {
	if s == nil || s.Best < 0 || s.Best >= len(s.Attempts) {
		return nil
	}
	return &s.Attempts[s.Best]
}

// Direction labels the two translation calls for error reporting.
type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

// TranslationError is the fatal failure of a forward or backward translation
// call. There is no fallback translation path, so it aborts the session.
type TranslationError struct {
	Direction Direction
	Err       error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("%s translation failed: %v", e.Direction, e.Err)
}

func (e *TranslationError) Unwrap() error { return e.Err }

// Translator produces the forward (en→ru) and backward (ru→en) translations.
// Both calls are fatal on error.
type Translator interface {
	TranslateForward(ctx context.Context, text string) (string, error)
	TranslateBackward(ctx context.Context, text string) (string, error)
}

// Assessment is the assessor's verdict on how well a back-translation
// preserves the original meaning.
type Assessment struct {
	Score       float64
	Suggestions string
}

// Assessor scores the back-translated text against the original. Errors are
// treated as service unavailability, never as session failure.
type Assessor interface {
	Compare(ctx context.Context, original, backTranslated string) (Assessment, error)
}

// Improver rewrites the Russian candidate using the assessor's suggestions.
// Errors leave the candidate unchanged.
type Improver interface {
	Improve(ctx context.Context, russianText, suggestions string) (string, error)
}
