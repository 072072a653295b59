// Package compose assembles the final Telegram post from generated text.
package compose

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
)

const (
	// CaptionBudget is the Telegram photo caption limit.
	CaptionBudget = 1024
	// TextBudget is the plain message limit.
	TextBudget = 4096
)

var ctaOptions = []string{
	"\n\n📲 Перешли тем, кого это тоже касается",
	"\n\n💾 Сохрани, чтобы не забыть",
	"\n\n📢 Расскажи близким — пусть тоже проверят",
	"\n\n👆 Отправь друзьям и родителям",
}

var hashtagPools = [][]string{
	{"#безопасность", "#защита", "#киберсос"},
	{"#смартфон", "#телефон", "#android", "#iphone"},
	{"#советы", "#инструкция", "#чтоделать"},
}

var reManyNewlines = regexp.MustCompile(`\n{3,}`)

// Footer builds the post footer: one CTA line, two hashtags from distinct
// pools, and the source link.
func Footer(link string) string {
	footer := ctaOptions[rand.Intn(len(ctaOptions))]
	footer += "\n\n" + randomHashtags()
	footer += fmt.Sprintf("\n\n<a href=\"%s\">Подробнее</a>", link)
	return footer
}

func randomHashtags() string {
	// Two distinct pools, one tag from each.
	i := rand.Intn(len(hashtagPools))
	j := rand.Intn(len(hashtagPools) - 1)
	if j >= i {
		j++
	}
	a := hashtagPools[i][rand.Intn(len(hashtagPools[i]))]
	b := hashtagPools[j][rand.Intn(len(hashtagPools[j]))]
	return a + " " + b
}

// Build produces the final post within maxLen, trimming the body back to a
// sentence end when the footer does not fit.
func Build(text, link string, maxLen int) string {
	text = reManyNewlines.ReplaceAllString(strings.TrimSpace(text), "\n\n")
	footer := Footer(link)

	// Reserve headroom for HTML entity expansion on the Telegram side.
	budget := maxLen - len([]rune(footer)) - 50
	if budget < 0 {
		budget = 0
	}

	runes := []rune(text)
	if len(runes) > budget {
		text = TrimToSentence(string(runes[:budget]))
	}

	return text + footer
}

// TrimToSentence cuts text at the last sentence end past 60% of its length,
// so a trimmed post does not stop mid-word.
func TrimToSentence(text string) string {
	floor := len(text) * 6 / 10
	for _, end := range []string{". ", "! ", "? ", ".\n"} {
		if pos := strings.LastIndex(text, end); pos > floor {
			return text[:pos+1]
		}
	}
	return text
}
