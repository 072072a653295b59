package ratelimit

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// AILimiter enforces daily request budgets across LLM providers, and tracks
// how many tokens the generation cache saved.
type AILimiter struct {
	mu          sync.Mutex
	openaiCount int
	geminiCount int
	totalCount  int
	maxOpenAI   int
	maxGemini   int
	maxTotal    int
	resetTime   time.Time
	tokensSaved int
	cacheHits   int
	cacheMisses int
}

// New creates a limiter; a zero limit means unlimited.
func New(maxOpenAI, maxGemini, maxTotal int) *AILimiter {
	return &AILimiter{
		maxOpenAI: maxOpenAI,
		maxGemini: maxGemini,
		maxTotal:  maxTotal,
		resetTime: time.Now().Add(24 * time.Hour),
	}
}

// CanUseOpenAI checks if an OpenAI request fits the budget.
func (rl *AILimiter) CanUseOpenAI() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.checkReset()

	if rl.maxOpenAI > 0 && rl.openaiCount >= rl.maxOpenAI {
		log.Printf("⚠️ OpenAI budget reached (%d/%d)", rl.openaiCount, rl.maxOpenAI)
		return false
	}
	if rl.maxTotal > 0 && rl.totalCount >= rl.maxTotal {
		log.Printf("⚠️ Total AI budget reached (%d/%d)", rl.totalCount, rl.maxTotal)
		return false
	}
	return true
}

// CanUseGemini checks if a Gemini request fits the budget.
func (rl *AILimiter) CanUseGemini() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.checkReset()

	if rl.maxGemini > 0 && rl.geminiCount >= rl.maxGemini {
		log.Printf("⚠️ Gemini budget reached (%d/%d)", rl.geminiCount, rl.maxGemini)
		return false
	}
	if rl.maxTotal > 0 && rl.totalCount >= rl.maxTotal {
		log.Printf("⚠️ Total AI budget reached (%d/%d)", rl.totalCount, rl.maxTotal)
		return false
	}
	return true
}

// UseOpenAI consumes one OpenAI request.
func (rl *AILimiter) UseOpenAI() error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.checkReset()

	if rl.maxOpenAI > 0 && rl.openaiCount >= rl.maxOpenAI {
		return fmt.Errorf("openai budget exceeded")
	}
	if rl.maxTotal > 0 && rl.totalCount >= rl.maxTotal {
		return fmt.Errorf("total AI budget exceeded")
	}

	rl.openaiCount++
	rl.totalCount++
	rl.cacheMisses++

	log.Printf("📊 AI usage: OpenAI=%d/%d, Total=%d/%d", rl.openaiCount, rl.maxOpenAI, rl.totalCount, rl.maxTotal)
	return nil
}

// UseGemini consumes one Gemini request.
func (rl *AILimiter) UseGemini() error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.checkReset()

	if rl.maxGemini > 0 && rl.geminiCount >= rl.maxGemini {
		return fmt.Errorf("gemini budget exceeded")
	}
	if rl.maxTotal > 0 && rl.totalCount >= rl.maxTotal {
		return fmt.Errorf("total AI budget exceeded")
	}

	rl.geminiCount++
	rl.totalCount++
	rl.cacheMisses++

	log.Printf("📊 AI usage: Gemini=%d/%d, Total=%d/%d", rl.geminiCount, rl.maxGemini, rl.totalCount, rl.maxTotal)
	return nil
}

// RecordCacheHit records a generation served from cache (saves tokens!).
func (rl *AILimiter) RecordCacheHit(estimatedTokens int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.cacheHits++
	rl.tokensSaved += estimatedTokens

	log.Printf("💰 Cache HIT! Saved ~%d tokens (total saved: %d, hit rate: %.1f%%)",
		estimatedTokens, rl.tokensSaved, rl.hitRate())
}

func (rl *AILimiter) hitRate() float64 {
	total := rl.cacheHits + rl.cacheMisses
	if total == 0 {
		return 0
	}
	return float64(rl.cacheHits) / float64(total) * 100
}

// GetStats returns a snapshot of limiter counters.
func (rl *AILimiter) GetStats() map[string]interface{} {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return map[string]interface{}{
		"openai_used":    rl.openaiCount,
		"openai_limit":   rl.maxOpenAI,
		"gemini_used":    rl.geminiCount,
		"gemini_limit":   rl.maxGemini,
		"total_used":     rl.totalCount,
		"total_limit":    rl.maxTotal,
		"cache_hits":     rl.cacheHits,
		"cache_misses":   rl.cacheMisses,
		"cache_hit_rate": rl.hitRate(),
		"tokens_saved":   rl.tokensSaved,
		"reset_time":     rl.resetTime,
	}
}

// PrintStats logs current counters.
func (rl *AILimiter) PrintStats() {
	stats := rl.GetStats()
	log.Printf("📊 === AI budget ===")
	log.Printf("  OpenAI: %d/%d", stats["openai_used"], stats["openai_limit"])
	log.Printf("  Gemini: %d/%d", stats["gemini_used"], stats["gemini_limit"])
	log.Printf("  Total:  %d/%d", stats["total_used"], stats["total_limit"])
	log.Printf("  Cache:  %d hits, %d misses (%.1f%% hit rate)",
		stats["cache_hits"], stats["cache_misses"], stats["cache_hit_rate"])
	log.Printf("  Tokens saved: ~%d", stats["tokens_saved"])
}

// checkReset rolls the daily window. Caller must hold mu.
func (rl *AILimiter) checkReset() {
	if time.Now().After(rl.resetTime) {
		log.Printf("🔄 Resetting AI budget counters")
		rl.openaiCount = 0
		rl.geminiCount = 0
		rl.totalCount = 0
		rl.cacheHits = 0
		rl.cacheMisses = 0
		rl.tokensSaved = 0
		rl.resetTime = time.Now().Add(24 * time.Hour)
	}
}
