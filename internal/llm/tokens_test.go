package llm

import (
	"strings"
	"testing"
)

func TestCountTokens_NonEmptyText(t *testing.T) {
	if got := CountTokens("Привет, мир! Это проверка токенов.", OpenAIModel); got <= 0 {
		t.Errorf("token count = %d, want > 0", got)
	}
}

func TestTrimToTokenBudget_ZeroBudgetKeepsText(t *testing.T) {
	in := "любой текст"
	if got := TrimToTokenBudget(in, OpenAIModel, 0); got != in {
		t.Errorf("zero budget must keep text, got %q", got)
	}
}

func TestTrimToTokenBudget_LargeBudgetKeepsText(t *testing.T) {
	in := "Короткая новость про телефоны."
	if got := TrimToTokenBudget(in, OpenAIModel, len(in)); got != in {
		t.Errorf("text within budget must be unchanged, got %q", got)
	}
}

func TestTrimToTokenBudget_Shortens(t *testing.T) {
	in := strings.Repeat("Это очень длинное предложение про безопасность смартфонов и паролей. ", 50)
	out := TrimToTokenBudget(in, OpenAIModel, 10)

	if out == "" {
		t.Fatalf("trim produced empty text")
	}
	if len(out) >= len(in) {
		t.Errorf("text over budget was not shortened: %d >= %d", len(out), len(in))
	}
}

func TestTrimToSentenceEnd(t *testing.T) {
	got := TrimToSentenceEnd("Alpha beta gamma delta epsilon. Tail")
	want := "Alpha beta gamma delta epsilon."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	in := "no boundary at all"
	if got := TrimToSentenceEnd(in); got != in {
		t.Errorf("text without boundary must be kept, got %q", got)
	}
}
