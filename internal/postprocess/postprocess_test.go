package postprocess

import "testing"

func TestClean_PlainText(t *testing.T) {
	in := "Привет, мир!"
	if got := Clean(in); got != in {
		t.Errorf("expected unchanged text, got %q", got)
	}
}

func TestClean_ThinkingBlock(t *testing.T) {
	in := "<thinking>the user wants Russian</thinking>Привет, мир!"
	if got := Clean(in); got != "Привет, мир!" {
		t.Errorf("expected thinking block removed, got %q", got)
	}
}

func TestClean_TruncatedThinkingBlock(t *testing.T) {
	in := "Привет, мир!<think>wait, maybe I should"
	if got := Clean(in); got != "Привет, мир!" {
		t.Errorf("expected truncated block removed, got %q", got)
	}
}

func TestClean_InstructionEcho(t *testing.T) {
	cases := map[string]string{
		"Here is the improved Russian translation: Привет, мир!": "Привет, мир!",
		"Improved translation: Привет, мир!":                     "Привет, мир!",
		"Sure, here is the translation: Привет, мир!":            "Привет, мир!",
		"Улучшенный перевод: Привет, мир!":                       "Привет, мир!",
	}
	for in, want := range cases {
		if got := Clean(in); got != want {
			t.Errorf("Clean(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestClean_NoFalsePositiveWithoutColon(t *testing.T) {
	in := "The translation process went well"
	if got := Clean(in); got != in {
		t.Errorf("expected text without colon untouched, got %q", got)
	}
}

func TestClean_QuoteWrapping(t *testing.T) {
	cases := map[string]string{
		`"Привет, мир!"`:   "Привет, мир!",
		"«Привет, мир!»":   "Привет, мир!",
		"“Привет”": "Привет",
	}
	for in, want := range cases {
		if got := Clean(in); got != want {
			t.Errorf("Clean(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestClean_MismatchedQuotesKept(t *testing.T) {
	in := `"Привет, мир!`
	if got := Clean(in); got != in {
		t.Errorf("expected mismatched quote kept, got %q", got)
	}
}

func TestClean_Empty(t *testing.T) {
	if got := Clean("   "); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestClean_CombinedArtifacts(t *testing.T) {
	in := "<thinking>hm</thinking>Here is the improved translation: «Привет, мир!»"
	if got := Clean(in); got != "Привет, мир!" {
		t.Errorf("expected all artifacts removed, got %q", got)
	}
}
