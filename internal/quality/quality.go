// Package quality screens LLM output before it reaches the channel.
package quality

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinPostRunes is the floor under which a generation is considered junk.
const MinPostRunes = 300

var (
	reCodeFence = regexp.MustCompile("(?s)```[a-zA-Z]*\n?|```")
	reNoteLine  = regexp.MustCompile(`(?im)^\s*(note|примечание|внимание: это машинный перевод)\s*:.*$`)
	reBracketed = regexp.MustCompile(`(?i)[\[(]\s*note[^\])]*[\])]`)
	reInlineAI  = regexp.MustCompile(`(?i)\((this (translation|text) is (a )?machine[^)]*|as an ai[^)]*)\)`)
	reTrailHR   = regexp.MustCompile(`(?m)^\s*[-—]{3,}\s*$`)
	reManyNL    = regexp.MustCompile(`\n{3,}`)
)

// Sanitize strips model wrapper artifacts: markdown fences, translation
// disclaimers, trailing horizontal rules.
func Sanitize(text string) string {
	text = reCodeFence.ReplaceAllString(text, "")
	text = reNoteLine.ReplaceAllString(text, "")
	text = reBracketed.ReplaceAllString(text, "")
	text = reInlineAI.ReplaceAllString(text, "")
	text = reTrailHR.ReplaceAllString(text, "")
	text = reManyNL.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Banality patterns: filler openers, clichés and meta phrases that mark a
// generic, useless post. Matched case-insensitively.
var banalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)в современном мире`),
	regexp.MustCompile(`(?i)в наш(е время|у цифровую эпоху)`),
	regexp.MustCompile(`(?i)важно помнить`),
	regexp.MustCompile(`(?i)как (мы все|всем) (знаем|известно)`),
	regexp.MustCompile(`(?i)не секрет, что`),
	regexp.MustCompile(`(?i)технологии развиваются`),
	regexp.MustCompile(`(?i)будьте бдительны и осторожны`),
	regexp.MustCompile(`(?i)as we all know`),
	regexp.MustCompile(`(?i)in today'?s digital (world|age)`),
	regexp.MustCompile(`(?i)it'?s important to (note|remember)`),
	// Meta phrases: the model talking about the post instead of writing it.
	regexp.MustCompile(`(?i)^вот (пост|текст|вариант)`),
	regexp.MustCompile(`(?i)^here (is|'s) (the|a) post`),
	regexp.MustCompile(`(?i)надеюсь, (этот пост|это) (поможет|будет полезн)`),
}

// IsBanal flags text with two or more cliché hits, or one inside the first
// sentence (a banal opener poisons the whole post).
func IsBanal(text string) (bool, string) {
	hits := 0
	var first string

	firstSentence := text
	if idx := strings.IndexAny(text, ".!?\n"); idx > 0 {
		firstSentence = text[:idx]
	}

	for _, re := range banalPatterns {
		if loc := re.FindStringIndex(text); loc != nil {
			hits++
			if first == "" {
				first = text[loc[0]:loc[1]]
			}
			if re.MatchString(firstSentence) {
				return true, first
			}
		}
	}
	if hits >= 2 {
		return true, first
	}
	return false, ""
}

// Check runs the full screen: sanitize first, then length and banality.
// Returns the cleaned text or an error describing the rejection.
func Check(text string) (string, error) {
	clean := Sanitize(text)

	if n := utf8.RuneCountInString(clean); n < MinPostRunes {
		return "", fmt.Errorf("generated text too short: %d runes", n)
	}
	if banal, phrase := IsBanal(clean); banal {
		return "", fmt.Errorf("generated text rejected as banal (%q)", phrase)
	}
	return clean, nil
}
