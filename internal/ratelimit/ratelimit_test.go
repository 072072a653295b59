package ratelimit

import "testing"

func TestLimiter_PerProviderBudget(t *testing.T) {
	rl := New(1, 1, 10)

	if !rl.CanUseOpenAI() {
		t.Fatalf("fresh limiter must allow openai")
	}
	if err := rl.UseOpenAI(); err != nil {
		t.Fatalf("first use failed: %v", err)
	}
	if rl.CanUseOpenAI() {
		t.Errorf("openai budget of 1 must be exhausted")
	}
	if err := rl.UseOpenAI(); err == nil {
		t.Errorf("use over budget must fail")
	}

	// Gemini has its own counter.
	if !rl.CanUseGemini() {
		t.Errorf("gemini budget must be independent")
	}
}

func TestLimiter_TotalBudget(t *testing.T) {
	rl := New(5, 5, 2)

	if err := rl.UseOpenAI(); err != nil {
		t.Fatal(err)
	}
	if err := rl.UseGemini(); err != nil {
		t.Fatal(err)
	}
	if rl.CanUseOpenAI() || rl.CanUseGemini() {
		t.Errorf("total budget of 2 must block both providers")
	}
}

func TestLimiter_CacheHitAccounting(t *testing.T) {
	rl := New(10, 10, 20)
	rl.RecordCacheHit(500)
	rl.RecordCacheHit(300)

	stats := rl.GetStats()
	if got := stats["tokens_saved"].(int); got != 800 {
		t.Errorf("tokens saved = %d, want 800", got)
	}
	if got := stats["cache_hits"].(int); got != 2 {
		t.Errorf("cache hits = %d, want 2", got)
	}
}
