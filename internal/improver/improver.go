// Package improver rewrites a Russian translation candidate based on the
// assessor's suggestions. Backend failures surface as errors; the session
// loop keeps the previous candidate in that case.
package improver

import "fmt"

// buildImprovePrompt asks the model for an improved Russian text and nothing
// else; postprocess.Clean handles the models that ignore that instruction.
func buildImprovePrompt(russianText, suggestions string) string {
	return fmt.Sprintf(`You are a professional translator. Improve this Russian translation based on the suggestions:

CURRENT RUSSIAN: "%s"
IMPROVEMENT SUGGESTIONS: "%s"

Provide an improved Russian translation that better preserves the original meaning.
Return only the improved Russian text, nothing else.`, russianText, suggestions)
}
