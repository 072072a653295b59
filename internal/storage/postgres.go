package storage

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
)

// PostgresLedger keeps the posted-article ledger and the generation cache
// in PostgreSQL. Optional: the JSON state file remains authoritative for
// rotation cursors.
type PostgresLedger struct {
	db            *sql.DB
	retentionDays int
}

// GenerationCacheItem is one cached LLM generation.
type GenerationCacheItem struct {
	ContentHash string
	Title       string
	Style       string
	Provider    string
	PostText    string
	CreatedAt   time.Time
	LastUsedAt  time.Time
	UseCount    int
}

// NewPostgresLedger connects and initializes the schema.
func NewPostgresLedger(connectionString string, retentionDays int) (*PostgresLedger, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %v", err)
	}

	ledger := &PostgresLedger{
		db:            db,
		retentionDays: retentionDays,
	}

	if err := ledger.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %v", err)
	}

	log.Println("✅ PostgreSQL ledger connected")
	return ledger, nil
}

func (pl *PostgresLedger) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS posted_articles (
		id SERIAL PRIMARY KEY,
		article_id VARCHAR(64) UNIQUE NOT NULL,
		title TEXT NOT NULL,
		link TEXT NOT NULL,
		source VARCHAR(100),
		style VARCHAR(50),
		posted_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_posted_articles_id ON posted_articles(article_id);
	CREATE INDEX IF NOT EXISTS idx_posted_articles_posted_at ON posted_articles(posted_at);
	CREATE INDEX IF NOT EXISTS idx_posted_articles_link ON posted_articles(link);

	-- Cache of generated posts (saves tokens!)
	CREATE TABLE IF NOT EXISTS generation_cache (
		id SERIAL PRIMARY KEY,
		content_hash VARCHAR(64) UNIQUE NOT NULL,
		title TEXT NOT NULL,
		style VARCHAR(50),
		provider VARCHAR(50),
		post_text TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		last_used_at TIMESTAMP NOT NULL DEFAULT NOW(),
		use_count INTEGER DEFAULT 1
	);

	CREATE INDEX IF NOT EXISTS idx_generation_cache_hash ON generation_cache(content_hash);
	`

	_, err := pl.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %v", err)
	}
	return nil
}

// IsAlreadyPosted checks the ledger within the retention window.
func (pl *PostgresLedger) IsAlreadyPosted(articleID string) bool {
	cutoff := time.Now().AddDate(0, 0, -pl.retentionDays)

	var count int
	query := `SELECT COUNT(*) FROM posted_articles WHERE article_id = $1 AND posted_at > $2`
	err := pl.db.QueryRow(query, articleID, cutoff).Scan(&count)
	if err != nil {
		log.Printf("⚠️ Error checking duplicate: %v", err)
		return false
	}
	return count > 0
}

// IsLinkAlreadyPosted is an additional safety check by exact link.
func (pl *PostgresLedger) IsLinkAlreadyPosted(link string) bool {
	cutoff := time.Now().AddDate(0, 0, -pl.retentionDays)

	var count int
	query := `SELECT COUNT(*) FROM posted_articles WHERE link = $1 AND posted_at > $2`
	err := pl.db.QueryRow(query, link, cutoff).Scan(&count)
	if err != nil {
		log.Printf("⚠️ Error checking link duplicate: %v", err)
		return false
	}
	return count > 0
}

// MarkPosted records a published article; ON CONFLICT keeps retries safe.
func (pl *PostgresLedger) MarkPosted(articleID, title, link, source, style string) error {
	query := `
		INSERT INTO posted_articles (article_id, title, link, source, style, posted_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (article_id) DO UPDATE SET posted_at = NOW()
	`
	_, err := pl.db.Exec(query, articleID, title, link, source, style)
	if err != nil {
		return fmt.Errorf("failed to mark as posted: %v", err)
	}
	return nil
}

// Cleanup removes ledger rows past retention.
func (pl *PostgresLedger) Cleanup() error {
	cutoff := time.Now().AddDate(0, 0, -pl.retentionDays)

	result, err := pl.db.Exec(`DELETE FROM posted_articles WHERE posted_at < $1`, cutoff)
	if err != nil {
		return fmt.Errorf("failed to cleanup: %v", err)
	}

	rows, _ := result.RowsAffected()
	if rows > 0 {
		log.Printf("🗑️ Cleaned up %d old ledger rows", rows)
	}
	return nil
}

// RecentTitles returns recently posted titles for the similarity screen.
func (pl *PostgresLedger) RecentTitles(limit int) ([]string, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := pl.db.Query(`
		SELECT title FROM posted_articles
		ORDER BY posted_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			continue
		}
		titles = append(titles, t)
	}
	return titles, rows.Err()
}

// GetGeneration retrieves a cached post by content hash. A zero-value item
// with empty PostText means not found.
func (pl *PostgresLedger) GetGeneration(contentHash string) (GenerationCacheItem, error) {
	var item GenerationCacheItem

	query := `
		SELECT content_hash, title, style, provider, post_text, created_at, last_used_at, use_count
		FROM generation_cache
		WHERE content_hash = $1
	`
	err := pl.db.QueryRow(query, contentHash).Scan(
		&item.ContentHash, &item.Title, &item.Style, &item.Provider,
		&item.PostText, &item.CreatedAt, &item.LastUsedAt, &item.UseCount,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return item, nil
		}
		return item, fmt.Errorf("failed to get generation from cache: %v", err)
	}
	return item, nil
}

// PutGeneration stores a generated post, bumping use_count on conflict.
func (pl *PostgresLedger) PutGeneration(item GenerationCacheItem) error {
	query := `
		INSERT INTO generation_cache (content_hash, title, style, provider, post_text, created_at, last_used_at, use_count)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW(), 1)
		ON CONFLICT (content_hash) DO UPDATE SET
			post_text = EXCLUDED.post_text,
			style = EXCLUDED.style,
			provider = EXCLUDED.provider,
			last_used_at = NOW(),
			use_count = generation_cache.use_count + 1
	`
	_, err := pl.db.Exec(query, item.ContentHash, item.Title, item.Style, item.Provider, item.PostText)
	if err != nil {
		return fmt.Errorf("failed to store generation: %v", err)
	}
	return nil
}

// GetStats returns ledger statistics grouped by source.
func (pl *PostgresLedger) GetStats() (map[string]int, error) {
	stats := make(map[string]int)

	var total int
	if err := pl.db.QueryRow(`SELECT COUNT(*) FROM posted_articles`).Scan(&total); err != nil {
		return nil, err
	}
	stats["total_items"] = total

	cutoff := time.Now().AddDate(0, 0, -pl.retentionDays)
	rows, err := pl.db.Query(`
		SELECT source, COUNT(*)
		FROM posted_articles
		WHERE posted_at > $1
		GROUP BY source
	`, cutoff)
	if err == nil {
		defer rows.Close()
		for rows.Next() {
			var source string
			var count int
			if err := rows.Scan(&source, &count); err == nil {
				stats["source_"+source] = count
			}
		}
	}

	return stats, nil
}

// Close closes the database connection.
func (pl *PostgresLedger) Close() error {
	if pl.db != nil {
		return pl.db.Close()
	}
	return nil
}
