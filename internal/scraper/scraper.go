package scraper

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ArticleContent is the full body of a news page.
type ArticleContent struct {
	Title   string
	Content string
	URL     string
}

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// ExtractFullArticle fetches a page and pulls out the article body.
func ExtractFullArticle(url string) (*ArticleContent, error) {
	client := &http.Client{
		Timeout: 15 * time.Second,
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error loading page: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML: %v", err)
	}

	content := extractContentBySource(doc, url)
	title := extractTitle(doc)

	if content == "" {
		return nil, fmt.Errorf("can't get content")
	}

	return &ArticleContent{
		Title:   title,
		Content: content,
		URL:     url,
	}, nil
}

// extractContentBySource picks selector lists per known news site.
func extractContentBySource(doc *goquery.Document, url string) string {
	var content string

	switch {
	case strings.Contains(url, "securitylab.ru"):
		content = extractBySelectors(doc, []string{
			".article-body p",
			"[itemprop=articleBody] p",
			".news-detail p",
			"article p",
		}, 1)
	case strings.Contains(url, "anti-malware.ru"):
		content = extractBySelectors(doc, []string{
			".field--name-body p",
			".node__content p",
			".content p",
			"article p",
		}, 1)
	case strings.Contains(url, "1275.ru"):
		content = extractBySelectors(doc, []string{
			".entry-content p",
			".post-content p",
			"article p",
		}, 1)
	default:
		content = extractBySelectors(doc, []string{
			"article p",
			".article p",
			".content p",
			".post-content p",
			".entry-content p",
			"main p",
			"#content p",
			"p",
		}, 3)
	}

	return cleanContent(content)
}

// extractBySelectors tries selectors in order until enough paragraphs appear.
func extractBySelectors(doc *goquery.Document, selectors []string, minParagraphs int) string {
	var paragraphs []string

	for _, selector := range selectors {
		doc.Find(selector).Each(func(i int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if text != "" && len(text) > 20 {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) >= minParagraphs {
			break
		}
		paragraphs = paragraphs[:0]
	}

	return strings.Join(paragraphs, "\n\n")
}

func extractTitle(doc *goquery.Document) string {
	selectors := []string{
		"h1",
		"title",
		".article-title",
		".headline",
		".entry-title",
	}

	for _, selector := range selectors {
		title := strings.TrimSpace(doc.Find(selector).First().Text())
		if title != "" {
			return title
		}
	}
	return ""
}

// Junk phrases common on Russian security news pages.
var junkPhrases = []string{
	"Подписывайтесь на наш Telegram-канал",
	"Подписывайтесь на канал",
	"Читайте также:", "Читайте также", "Смотрите также:",
	"Поделиться новостью", "Поделиться статьёй",
	"Нашли опечатку?", "Сообщить об ошибке",
	"Реклама.", "Erid:",
	"Cookie", "GDPR", "Политика конфиденциальности",
	"Войти", "Зарегистрироваться", "Оставить комментарий",
}

var junkIndicators = []string{
	"cookie", "реклама", "подписк", "читайте также",
	"поделиться", "комментар", "зарегистрир",
}

// cleanContent strips junk lines and caps length on paragraph boundaries.
func cleanContent(content string) string {
	if content == "" {
		return ""
	}

	for _, phrase := range junkPhrases {
		content = strings.ReplaceAll(content, phrase, "")
	}

	lines := strings.Split(content, "\n")
	var cleanLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) < 8 {
			continue
		}

		lower := strings.ToLower(line)
		isJunk := false
		for _, indicator := range junkIndicators {
			if strings.Contains(lower, indicator) {
				isJunk = true
				break
			}
		}
		if isJunk {
			continue
		}

		cleanLines = append(cleanLines, line)
	}

	result := strings.Join(cleanLines, "\n\n")

	for strings.Contains(result, "  ") {
		result = strings.ReplaceAll(result, "  ", " ")
	}
	result = strings.TrimSpace(result)

	// Keep full paragraphs under the cap.
	if len(result) > 1800 {
		paragraphs := strings.Split(result, "\n\n")
		var selected []string
		total := 0

		for _, paragraph := range paragraphs {
			if total+len(paragraph) < 1600 {
				selected = append(selected, paragraph)
				total += len(paragraph) + 2
			} else {
				break
			}
		}
		if len(selected) > 0 {
			result = strings.Join(selected, "\n\n")
		}
	}

	return result
}

// Enrich fetches the full body for an article link, best effort. Returns the
// fallback text when extraction fails or yields too little.
func Enrich(url, fallback string) string {
	article, err := ExtractFullArticle(url)
	if err != nil {
		log.Printf("⚠️ Can't get full content for %s: %v", url, err)
		return fallback
	}
	if len(article.Content) < 200 {
		log.Printf("⚠️ Content too short for %s, using feed summary", url)
		return fallback
	}
	log.Printf("✅ Full content extracted (%d chars)", len(article.Content))
	return article.Content
}
