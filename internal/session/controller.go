package session

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Defaults applied by New when the corresponding Config field is zero.
const (
	DefaultMaxIterations = 3
	DefaultThreshold     = 0.95
)

// ErrEmptySource is returned by Run for empty or whitespace-only input.
var ErrEmptySource = errors.New("source text is empty")

type Config struct {
	// MaxIterations bounds the number of improvement rounds (≥1).
	MaxIterations int
	// Threshold is the similarity score at which iteration stops early.
	Threshold float64
	// StepTimeout bounds each external call (translate, compare, improve).
	// Zero means no per-step timeout beyond the caller's context.
	StepTimeout time.Duration
}

// Controller runs improvement sessions. It is stateless between runs; all
// per-run state lives in the Session it returns.
type Controller struct {
	translator Translator
	assessor   Assessor
	improver   Improver
	config     Config
}

// New creates a Controller. The translator is required; assessor and improver
// may be nil, in which case sessions run in fallback mode and record unscored
// attempts. Nil collaborators are decided here once, not probed at runtime.
func New(translator Translator, assessor Assessor, improver Improver, config Config) *Controller {
	if config.MaxIterations <= 0 {
		config.MaxIterations = DefaultMaxIterations
	}
	if config.Threshold <= 0 {
		config.Threshold = DefaultThreshold
	}
	return &Controller{
		translator: translator,
		assessor:   assessor,
		improver:   improver,
		config:     config,
	}
}

// Run executes one improvement session over sourceText.
//
// Translator failure (either direction) is fatal: Run returns the partial
// session alongside a *TranslationError. Assessor failure disables scoring
// and improvement for the rest of the session; improver failure keeps the
// current candidate and continues. Both degradations are recorded in the
// trace as unscored attempts, not surfaced as errors.
func (c *Controller) Run(ctx context.Context, sourceText string) (*Session, error) {
	if strings.TrimSpace(sourceText) == "" {
		return nil, ErrEmptySource
	}

	sess := &Session{
		SourceText:    sourceText,
		MaxIterations: c.config.MaxIterations,
		Best:          -1,
	}

	current, err := c.translateForward(ctx, sourceText)
	if err != nil {
		return sess, &TranslationError{Direction: Forward, Err: err}
	}

	// The assessor is consulted until its first failure; after that the
	// session keeps producing translate/back-translate pairs but skips
	// both scoring and improvement.
	assessorUp := c.assessor != nil

	for i := 1; i <= c.config.MaxIterations; i++ {
		if err := ctx.Err(); err != nil {
			sess.Outcome = OutcomeCancelled
			return sess, err
		}

		back, err := c.translateBackward(ctx, current)
		if err != nil {
			return sess, &TranslationError{Direction: Backward, Err: err}
		}

		att := Attempt{
			Iteration:      i,
			RussianText:    current,
			BackTranslated: back,
		}

		if assessorUp {
			if a, err := c.compare(ctx, sourceText, back); err != nil {
				assessorUp = false
			} else {
				att.Score = a.Score
				att.Scored = true
				att.Suggestions = a.Suggestions
			}
		}

		sess.Attempts = append(sess.Attempts, att)
		sess.updateBest()

		if att.Scored && att.Score >= c.config.Threshold {
			sess.Outcome = OutcomeEarlyStopped
			return sess, nil
		}

		// Improving after the final round would produce a candidate the
		// loop never evaluates, so skip it.
		if assessorUp && c.improver != nil && i < c.config.MaxIterations {
			if improved, err := c.improve(ctx, current, att.Suggestions); err == nil && improved != "" {
				current = improved
			}
		}
	}

	sess.Outcome = OutcomeExhausted
	return sess, nil
}

// updateBest keeps Best pointing at the highest-scoring attempt; while no
// attempt has a score it tracks the most recent one.
func (s *Session) updateBest() {
	idx := len(s.Attempts) - 1
	att := s.Attempts[idx]

	switch {
	case att.Scored && (s.Best < 0 || !s.Attempts[s.Best].Scored || att.Score > s.Attempts[s.Best].Score):
		s.Best = idx
	case s.Best < 0 || !s.Attempts[s.Best].Scored:
		s.Best = idx
	}
}

func (c *Controller) translateForward(ctx context.Context, text string) (string, error) {
	ctx, cancel := c.stepContext(ctx)
	defer cancel()
	return c.translator.TranslateForward(ctx, text)
}

func (c *Controller) translateBackward(ctx context.Context, text string) (string, error) {
	ctx, cancel := c.stepContext(ctx)
	defer cancel()
	return c.translator.TranslateBackward(ctx, text)
}

func (c *Controller) compare(ctx context.Context, original, back string) (Assessment, error) {
	ctx, cancel := c.stepContext(ctx)
	defer cancel()
	return c.assessor.Compare(ctx, original, back)
}

func (c *Controller) improve(ctx context.Context, text, suggestions string) (string, error) {
	ctx, cancel := c.stepContext(ctx)
	defer cancel()
	return c.improver.Improve(ctx, text, suggestions)
}

func (c *Controller) stepContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.config.StepTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.config.StepTimeout)
}
