package compose

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFooter_ContainsLinkAndCTA(t *testing.T) {
	footer := Footer("https://example.com/news/1")
	if !strings.Contains(footer, `<a href="https://example.com/news/1">Подробнее</a>`) {
		t.Errorf("footer missing source link: %q", footer)
	}
	if !strings.Contains(footer, "#") {
		t.Errorf("footer missing hashtags: %q", footer)
	}
}

func TestBuild_ShortTextKeptWhole(t *testing.T) {
	text := "Короткий пост про безопасность телефона."
	out := Build(text, "https://example.com/a", CaptionBudget)

	if !strings.HasPrefix(out, text) {
		t.Errorf("short text must be kept intact, got %q", out)
	}
	if !strings.Contains(out, "Подробнее") {
		t.Errorf("footer missing: %q", out)
	}
}

func TestBuild_StaysWithinCaptionBudget(t *testing.T) {
	text := strings.Repeat("Это длинное предложение про защиту телефона от мошенников. ", 60)
	out := Build(text, "https://example.com/a", CaptionBudget)

	if n := utf8.RuneCountInString(out); n > CaptionBudget {
		t.Errorf("post length %d exceeds caption budget %d", n, CaptionBudget)
	}
	if !strings.Contains(out, "Подробнее") {
		t.Errorf("footer must survive trimming")
	}
}

func TestTrimToSentence_CutsAtSentenceEnd(t *testing.T) {
	got := TrimToSentence("One two three. Four five six. Tail")
	want := "One two three. Four five six."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTrimToSentence_NoBoundaryKeepsText(t *testing.T) {
	in := "no sentence end here"
	if got := TrimToSentence(in); got != in {
		t.Errorf("text without sentence end must be kept, got %q", got)
	}
}
