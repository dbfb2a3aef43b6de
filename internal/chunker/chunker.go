// Package chunker splits long inputs into pieces small enough to run an
// improvement session each, preferring paragraph and sentence boundaries so
// every chunk stays a coherent unit of meaning.
package chunker

import (
	"strings"
	"unicode"
)

// Split cuts text into pieces each no longer than maxRunes code points.
// Splits are attempted (in order of preference) at:
//  1. Paragraph boundaries (\n\n or \r\n\r\n)
//  2. Sentence-ending punctuation (. ! ?) followed by whitespace
//  3. Whitespace (word boundary)
//  4. Hard cut at maxRunes if no suitable boundary is found
//
// If text fits within maxRunes, a single-element slice is returned.
// maxRunes ≤ 0 means unlimited.
func Split(text string, maxRunes int) []string {
	if maxRunes <= 0 || len([]rune(text)) <= maxRunes {
		return []string{text}
	}

	var chunks []string
	remaining := text

	for len([]rune(remaining)) > maxRunes {
		cut := findCut(remaining, maxRunes)
		chunk := strings.TrimSpace(remaining[:cut])
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		remaining = strings.TrimSpace(remaining[cut:])
	}

	if strings.TrimSpace(remaining) != "" {
		chunks = append(chunks, strings.TrimSpace(remaining))
	}

	return chunks
}

// findCut returns the byte index at which to split text so the consumed part
// holds at most maxRunes runes, searching backwards for the best boundary.
func findCut(text string, maxRunes int) int {
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return len(text)
	}
	candidate := runes[:maxRunes]

	// 1. Paragraph boundary.
	prefix := string(candidate)
	if idx := strings.LastIndex(prefix, "\r\n\r\n"); idx > 0 {
		return idx + 4
	}
	if idx := strings.LastIndex(prefix, "\n\n"); idx > 0 {
		return idx + 2
	}

	// 2. Sentence-ending punctuation followed by a space.
	for i := len(candidate) - 1; i > 0; i-- {
		r := candidate[i]
		if (r == '.' || r == '!' || r == '?') && i+1 < len(candidate) && unicode.IsSpace(candidate[i+1]) {
			return len(string(candidate[:i+1]))
		}
	}

	// 3. Whitespace word boundary.
	for i := len(candidate) - 1; i > 0; i-- {
		if unicode.IsSpace(candidate[i]) {
			return len(string(candidate[:i]))
		}
	}

	// 4. Hard cut.
	return len(prefix)
}
