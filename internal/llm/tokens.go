package llm

import (
	"strings"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// approxRunesPerToken is the fallback estimate when the encoder is
// unavailable (offline BPE files). Russian text runs ~2-3 runes per token.
const approxRunesPerToken = 3

// CountTokens returns the token count of text for a model, or an estimate
// when the encoding cannot be loaded.
func CountTokens(text, model string) int {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return len([]rune(text)) / approxRunesPerToken
	}
	return len(enc.Encode(text, nil, nil))
}

// TrimToTokenBudget cuts text down to at most budget tokens, preferring a
// sentence boundary near the cut.
func TrimToTokenBudget(text, model string, budget int) string {
	if budget <= 0 {
		return text
	}

	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return trimToRunes(text, budget*approxRunesPerToken)
	}

	tokens := enc.Encode(text, nil, nil)
	if len(tokens) <= budget {
		return text
	}

	trimmed := enc.Decode(tokens[:budget])
	return TrimToSentenceEnd(trimmed)
}

func trimToRunes(text string, maxRunes int) string {
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	return TrimToSentenceEnd(string(runes[:maxRunes]))
}

// TrimToSentenceEnd drops a trailing partial sentence when enough text
// remains before it.
func TrimToSentenceEnd(text string) string {
	floor := len(text) / 2
	for _, end := range []string{". ", "! ", "? ", ".\n"} {
		if pos := strings.LastIndex(text, end); pos > floor {
			return text[:pos+1]
		}
	}
	return text
}
