// Package llm turns a filtered news item into channel post text.
package llm

import (
	"context"
	"fmt"
	"log"

	"github.com/kibersos/autopost/internal/ratelimit"
	"github.com/kibersos/autopost/internal/styles"
)

// Provider is one LLM backend.
type Provider interface {
	Name() string
	GeneratePost(ctx context.Context, system, user string) (string, error)
}

// Generator tries providers in order under the shared AI budget.
type Generator struct {
	openai      *OpenAIClient
	gemini      *GeminiClient
	limiter     *ratelimit.AILimiter
	tokenBudget int
}

func NewGenerator(openai *OpenAIClient, gemini *GeminiClient, limiter *ratelimit.AILimiter, tokenBudget int) *Generator {
	return &Generator{
		openai:      openai,
		gemini:      gemini,
		limiter:     limiter,
		tokenBudget: tokenBudget,
	}
}

// promptRules is appended to every style prompt; keeps the model on the
// "ordinary person" register regardless of style.
const promptRules = `
КРИТИЧЕСКИ ВАЖНО:
1. Пиши для ОБЫЧНОГО ЧЕЛОВЕКА, не для айтишника
2. Никаких терминов: CVE, RCE, XSS, API, бэкенд, инфраструктура
3. Каждый шаг инструкции — конкретный: «Откройте Настройки → Безопасность → ...»
4. Если новость не касается обычных людей — честно скажи это в начале
5. Примеры устройств: телефон, компьютер, браузер, приложение
6. Примеры действий: обновить приложение, сменить пароль, включить защиту
`

// BuildUserPrompt assembles the user prompt for a style and article,
// trimming the article content to the token budget.
func (g *Generator) BuildUserPrompt(style styles.Style, title, content string) string {
	content = TrimToTokenBudget(content, OpenAIModel, g.tokenBudget)

	return style.Prompt + fmt.Sprintf(`

---
НОВОСТЬ:

Заголовок: %s

Содержание: %s
---
%s`, title, content, promptRules)
}

// GeneratePost produces post text for the article using the first provider
// with remaining budget. Returns the text and the provider name.
func (g *Generator) GeneratePost(ctx context.Context, style styles.Style, title, content string) (string, string, error) {
	user := g.BuildUserPrompt(style, title, content)

	if g.openai != nil && g.limiter.CanUseOpenAI() {
		if err := g.limiter.UseOpenAI(); err == nil {
			text, err := g.openai.GeneratePost(ctx, style.System, user)
			if err == nil {
				return text, g.openai.Name(), nil
			}
			log.Printf("❌ OpenAI error: %v", err)
		}
	}

	if g.gemini != nil && g.limiter.CanUseGemini() {
		if err := g.limiter.UseGemini(); err == nil {
			text, err := g.gemini.GeneratePost(ctx, style.System, user)
			if err == nil {
				return text, g.gemini.Name(), nil
			}
			log.Printf("❌ Gemini error: %v", err)
		}
	}

	return "", "", fmt.Errorf("all providers failed or out of budget")
}

// EstimateTokens approximates the token cost of one generation for the
// cache-hit accounting.
func (g *Generator) EstimateTokens(style styles.Style, title, content string) int {
	return CountTokens(g.BuildUserPrompt(style, title, content)+style.System, OpenAIModel) + 1000
}
