// Package imagegen fetches illustrative images from pollinations.ai.
package imagegen

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/kibersos/autopost/internal/retry"
)

const endpoint = "https://image.pollinations.ai/prompt/"

// minImageBytes: tiny responses are error pages, not images.
const minImageBytes = 10000

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

var promptStyles = []string{
	"friendly illustration about %s, warm colors, simple, modern",
	"clean vector art, %s, blue and white, safe feeling",
	"smartphone and protection concept, %s, minimal style",
	"digital safety illustration, %s, friendly, non-threatening",
	"modern flat design, %s, security shield, positive mood",
}

var reNonWord = regexp.MustCompile(`[^\p{L}\p{N}\s]`)

// BuildURL composes the generation URL for a title and seed.
func BuildURL(title string, seed int) string {
	style := promptStyles[rand.Intn(len(promptStyles))]

	keywords := reNonWord.ReplaceAllString(title, "")
	if len([]rune(keywords)) > 40 {
		keywords = string([]rune(keywords)[:40])
	}
	prompt := fmt.Sprintf(style, keywords) + ", no text, no letters, 4k quality"

	return fmt.Sprintf("%s%s?seed=%d&width=1024&height=1024&nologo=true",
		endpoint, url.PathEscape(prompt), seed)
}

// Generate downloads an illustration for the article title into dir.
// Returns the file path; caller removes the file after posting.
func Generate(ctx context.Context, title, dir string, rc retry.Config) (string, error) {
	if rc.MaxAttempts <= 0 {
		rc = retry.Config{MaxAttempts: 2, Delay: 2 * time.Second}
	}

	seed := rand.Intn(999999999) + 1
	imgURL := BuildURL(title, seed)
	path := filepath.Join(dir, fmt.Sprintf("img_%d.jpg", seed))

	client := &http.Client{Timeout: 60 * time.Second}

	err := retry.Do(ctx, rc, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, imgURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != 200 {
			return fmt.Errorf("image API status %d", resp.StatusCode)
		}

		data, err := io.ReadAll(io.LimitReader(resp.Body, 20<<20))
		if err != nil {
			return err
		}
		if len(data) < minImageBytes {
			return fmt.Errorf("image too small (%d bytes), likely an error page", len(data))
		}

		return os.WriteFile(path, data, 0644)
	})
	if err != nil {
		return "", err
	}

	return path, nil
}
