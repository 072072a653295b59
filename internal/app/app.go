// Package app wires the full autopost pipeline: fetch, filter, dedup,
// generate, illustrate, publish.
package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/kibersos/autopost/internal/compose"
	"github.com/kibersos/autopost/internal/config"
	"github.com/kibersos/autopost/internal/dedup"
	"github.com/kibersos/autopost/internal/feeds"
	"github.com/kibersos/autopost/internal/filter"
	"github.com/kibersos/autopost/internal/imagegen"
	"github.com/kibersos/autopost/internal/llm"
	"github.com/kibersos/autopost/internal/logger"
	"github.com/kibersos/autopost/internal/metrics"
	"github.com/kibersos/autopost/internal/quality"
	"github.com/kibersos/autopost/internal/ratelimit"
	"github.com/kibersos/autopost/internal/retry"
	"github.com/kibersos/autopost/internal/scraper"
	"github.com/kibersos/autopost/internal/state"
	"github.com/kibersos/autopost/internal/storage"
	"github.com/kibersos/autopost/internal/styles"
	"github.com/kibersos/autopost/internal/telegram"
	"github.com/kibersos/autopost/internal/youtube"
)

// candidate is a feed item that passed relevance and dedup screens.
type candidate struct {
	feeds.Item
	ID    string
	Score int
}

// Run executes one autopost cycle: at most one post per invocation.
func Run(ctx context.Context, cfg *config.Config) error {
	start := time.Now()
	defer func() {
		metrics.Global.RecordRunDuration(time.Since(start))
		metrics.Global.SetLastRun()
	}()

	log.Printf("🚀 KIBER SOS autopost — %s", start.Format("2006-01-02 15:04:05"))

	sources, err := feeds.LoadSources(cfg.SourcesConfigPath)
	if err != nil {
		return fmt.Errorf("load sources: %w", err)
	}

	st := state.Load(cfg.StatePath, time.Duration(cfg.RetentionDays)*24*time.Hour)
	st.CleanupOld()

	var ledger *storage.PostgresLedger
	if cfg.DatabaseURL != "" {
		ledger, err = storage.NewPostgresLedger(cfg.DatabaseURL, cfg.RetentionDays)
		if err != nil {
			log.Printf("⚠️ Postgres unavailable, continuing with file state: %v", err)
			ledger = nil
		} else {
			defer ledger.Close()
			if err := ledger.Cleanup(); err != nil {
				log.Printf("⚠️ Ledger cleanup: %v", err)
			}
		}
	}

	// Rotate sources so one feed cannot monopolize the channel.
	order := st.NextSourceOrder(len(sources))
	rotated := make([]feeds.Source, 0, len(sources))
	for _, i := range order {
		rotated = append(rotated, sources[i])
	}
	log.Printf("📍 Source order: %s", sourceNames(rotated))

	items := feeds.FetchAll(rotated, cfg.MaxArticleAge, cfg.RequestTimeout)
	candidates := selectCandidates(items, st, ledger)

	if len(candidates) == 0 {
		log.Println("❌ No new relevant articles")
		return st.Save()
	}
	log.Printf("📊 Candidates: %d", len(candidates))

	article := pickArticle(candidates, rotated)
	log.Printf("📝 Picked: %.70s... (source: %s)", article.Title, article.Source)

	content := enrichContent(article)

	limiter := ratelimit.New(cfg.MaxOpenAIRequests, cfg.MaxGeminiRequests, cfg.MaxTotalAIRequests)
	gen, closeGen, err := buildGenerator(cfg, limiter)
	if err != nil {
		return err
	}
	defer closeGen()

	postText, styleName, err := generateWithRetry(ctx, gen, limiter, ledger, st, article, content)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return failRun(st, err)
	}

	budget := compose.TextBudget
	if cfg.EnableImages {
		budget = cfg.CaptionMaxRunes
	}
	finalPost := compose.Build(postText, article.Link, budget)
	log.Printf("✅ Post ready: %d chars (style: %s)", len([]rune(finalPost)), styleName)

	var imagePath string
	if cfg.EnableImages {
		rc := retry.Config{MaxAttempts: cfg.RetryAttempts, Delay: cfg.RetryDelay}
		imagePath, err = imagegen.Generate(ctx, article.Title, cfg.CacheDir, rc)
		if err != nil {
			log.Printf("⚠️ Image generation failed, posting text only: %v", err)
			imagePath = ""
		} else {
			metrics.Global.IncrementImagesGenerated()
		}
	}
	if imagePath != "" {
		defer func() {
			if err := os.Remove(imagePath); err != nil {
				log.Printf("Warning: failed to remove %s: %v", imagePath, err)
			}
		}()
	}

	tg := telegram.New(cfg.TelegramBotToken, cfg.ChannelID, cfg.RetryAttempts)
	if imagePath != "" {
		err = tg.SendPhotoFile(imagePath, finalPost)
	} else {
		err = tg.SendMessage(finalPost)
	}
	if err != nil {
		metrics.Global.SetError(err.Error())
		return failRun(st, fmt.Errorf("publish: %w", err))
	}
	metrics.Global.IncrementPostsPublished()

	// Mark posted only after a successful send.
	st.MarkPosted(article.ID, article.Source, article.Title)
	if ledger != nil {
		if err := ledger.MarkPosted(article.ID, article.Title, article.Link, article.Source, styleName); err != nil {
			log.Printf("⚠️ Ledger mark: %v", err)
		}
	}
	if err := st.Save(); err != nil {
		return err
	}

	limiter.PrintStats()
	log.Printf("📈 Per-source stats:")
	for src, count := range st.Stats() {
		log.Printf("   %s: %d", src, count)
	}
	log.Printf("✅ PUBLISHED: %s", article.Title)
	return nil
}

// selectCandidates filters items for relevance and screens duplicates
// against the run, the ledger, and recently posted titles.
func selectCandidates(items []feeds.Item, st *state.State, ledger *storage.PostgresLedger) []candidate {
	seenLinks := map[string]struct{}{}
	seenSimilar := map[string]struct{}{}
	postedTitles := st.PostedTitles()
	if ledger != nil {
		if titles, err := ledger.RecentTitles(100); err == nil {
			postedTitles = append(postedTitles, titles...)
		}
	}

	var out []candidate

	for _, item := range items {
		metrics.Global.IncrementItemsProcessed()

		score := filter.Score(item.Title, item.Summary)
		if score == 0 {
			metrics.Global.IncrementIrrelevantFiltered()
			continue
		}

		id := dedup.ArticleID(item.Title, item.Link)
		if st.IsPosted(id) || (ledger != nil && (ledger.IsAlreadyPosted(id) || ledger.IsLinkAlreadyPosted(item.Link))) {
			metrics.Global.IncrementDuplicatesFiltered()
			continue
		}

		if _, dup := seenLinks[item.Link]; dup {
			metrics.Global.IncrementDuplicatesFiltered()
			continue
		}
		seenLinks[item.Link] = struct{}{}

		simKey := dedup.SimilarityKey(item.Title, item.Summary, item.Link, item.Published)
		if _, dup := seenSimilar[simKey]; dup {
			logger.Debug("similar item in run, skipping", "title", item.Title)
			metrics.Global.IncrementDuplicatesFiltered()
			continue
		}
		seenSimilar[simKey] = struct{}{}

		if similarToPosted(item.Title, postedTitles) {
			logger.Debug("similar to a posted title, skipping", "title", item.Title)
			metrics.Global.IncrementDuplicatesFiltered()
			continue
		}

		out = append(out, candidate{Item: item, ID: id, Score: score})
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Published.Equal(out[j].Published) {
			return out[i].Published.After(out[j].Published)
		}
		return out[i].Score > out[j].Score
	})
	return out
}

// failRun saves state before surfacing the error, so a failed run still
// advances the source and style rotation cursors for the next one.
func failRun(st *state.State, err error) error {
	if saveErr := st.Save(); saveErr != nil {
		log.Printf("⚠️ State save after failed run: %v", saveErr)
	}
	return err
}

func similarToPosted(title string, posted []string) bool {
	for _, p := range posted {
		if dedup.SimilarTitles(title, p) {
			return true
		}
	}
	return false
}

// pickArticle honours the source rotation: first candidate from the first
// rotated source that has one, else the freshest candidate overall.
func pickArticle(candidates []candidate, rotated []feeds.Source) candidate {
	for _, src := range rotated {
		for _, c := range candidates {
			if c.Source == src.Name {
				return c
			}
		}
	}
	return candidates[0]
}

// enrichContent upgrades the feed summary to a transcript (videos) or the
// scraped article body, best effort.
func enrichContent(article candidate) string {
	if article.Kind == "youtube" && article.VideoID != "" {
		transcript, err := youtube.FetchTranscript(article.VideoID)
		if err != nil {
			log.Printf("⚠️ No transcript for %s: %v", article.VideoID, err)
			return article.Summary
		}
		log.Printf("✅ Transcript fetched (%d chars)", len(transcript))
		return transcript
	}
	return scraper.Enrich(article.Link, article.Summary)
}

func buildGenerator(cfg *config.Config, limiter *ratelimit.AILimiter) (*llm.Generator, func(), error) {
	var oc *llm.OpenAIClient
	var gc *llm.GeminiClient

	if cfg.OpenAIAPIKey != "" {
		oc = llm.NewOpenAIClient(cfg.OpenAIAPIKey)
	}
	if cfg.GeminiAPIKey != "" {
		var err error
		gc, err = llm.NewGeminiClient(cfg.GeminiAPIKey)
		if err != nil {
			if oc == nil {
				return nil, nil, fmt.Errorf("gemini client: %w", err)
			}
			log.Printf("⚠️ Gemini client unavailable: %v", err)
			gc = nil
		}
	}

	closeFn := func() {
		if gc != nil {
			gc.Close()
		}
	}
	return llm.NewGenerator(oc, gc, limiter, cfg.PromptTokenBudget), closeFn, nil
}

// generateWithRetry produces screened post text, consulting the generation
// cache first and retrying once with the next style on a quality rejection.
func generateWithRetry(ctx context.Context, gen *llm.Generator, limiter *ratelimit.AILimiter,
	ledger *storage.PostgresLedger, st *state.State, article candidate, content string) (string, string, error) {

	contentHash := hashContent(article.Title, content)

	if ledger != nil {
		if cached, err := ledger.GetGeneration(contentHash); err == nil && cached.PostText != "" {
			limiter.RecordCacheHit(gen.EstimateTokens(styles.ByIndex(0), article.Title, content))
			log.Printf("💰 Using cached generation (style: %s)", cached.Style)
			return cached.PostText, cached.Style, nil
		}
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		style := styles.ByIndex(st.NextStyle(len(styles.All)))
		log.Printf("🎨 Style: %s (attempt %d)", style.Name, attempt+1)

		text, provider, err := gen.GeneratePost(ctx, style, article.Title, content)
		if err != nil {
			metrics.Global.IncrementGenerationsFailed()
			return "", "", err
		}

		clean, err := quality.Check(text)
		if err != nil {
			metrics.Global.IncrementGenerationsRejected()
			log.Printf("⚠️ Generation rejected: %v", err)
			lastErr = err
			continue
		}

		metrics.Global.IncrementGenerationsOK()
		if ledger != nil {
			item := storage.GenerationCacheItem{
				ContentHash: contentHash,
				Title:       article.Title,
				Style:       style.Name,
				Provider:    provider,
				PostText:    clean,
			}
			if err := ledger.PutGeneration(item); err != nil {
				log.Printf("⚠️ Generation cache store: %v", err)
			}
		}
		return clean, style.Name, nil
	}

	return "", "", fmt.Errorf("no acceptable generation: %w", lastErr)
}

func hashContent(title, content string) string {
	h := sha256.Sum256([]byte(title + "\x00" + content))
	return hex.EncodeToString(h[:])
}

func sourceNames(sources []feeds.Source) string {
	names := ""
	for i, s := range sources {
		if i > 0 {
			names += ", "
		}
		names += s.Name
	}
	return names
}
