// Package assessor scores a back-translation against the original English
// text using an LLM and extracts improvement suggestions for the Russian
// candidate. All backend failures surface as errors; the session loop treats
// any error as service unavailability.
package assessor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/valpere/obratno/internal/session"
)

// buildComparePrompt asks the model for a similarity verdict in a fixed
// line-oriented format that parseAssessment understands.
func buildComparePrompt(original, backTranslated string) string {
	return fmt.Sprintf(`You are a translation quality assessment expert. Compare these two English texts:

ORIGINAL: "%s"
BACK-TRANSLATED: "%s"

Please provide:
1. A similarity score from 0.0 to 1.0 (where 1.0 means identical meaning)
2. Specific suggestions for improving the Russian translation to better preserve the original meaning

Format your response as:
SIMILARITY: [score]
SUGGESTIONS: [your suggestions]`, original, backTranslated)
}

// parseAssessment extracts the SIMILARITY and SUGGESTIONS lines from a model
// reply. A missing or unparseable score is an error; missing suggestions are
// not. The score is clamped to [0, 1].
func parseAssessment(reply string) (session.Assessment, error) {
	var a session.Assessment
	scored := false

	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "SIMILARITY:"):
			raw := strings.TrimSpace(strings.TrimPrefix(line, "SIMILARITY:"))
			score, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return session.Assessment{}, fmt.Errorf("unparseable similarity score %q: %w", raw, err)
			}
			a.Score = clamp(score)
			scored = true
		case strings.HasPrefix(line, "SUGGESTIONS:"):
			a.Suggestions = strings.TrimSpace(strings.TrimPrefix(line, "SUGGESTIONS:"))
		}
	}

	if !scored {
		return session.Assessment{}, fmt.Errorf("no SIMILARITY line in assessment reply")
	}
	return a, nil
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
