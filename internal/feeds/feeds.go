package feeds

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// maxItemsPerSource caps how many entries we even look at per feed.
const maxItemsPerSource = 25

// Source is one entry of configs/sources.yaml.
// kind "rss" (default) takes url as a feed URL; kind "youtube" takes url
// as a channel ID and expands it to the channel uploads feed.
type Source struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	Kind string `yaml:"kind,omitempty"`
}

type SourcesConfig struct {
	Sources []Source `yaml:"sources"`
}

// Item is a normalized feed entry, HTML already stripped.
type Item struct {
	Title     string
	Summary   string
	Link      string
	Published time.Time
	Source    string
	Kind      string
	VideoID   string
}

// LoadSources reads the source list from a YAML file.
func LoadSources(path string) ([]Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg SourcesConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	if len(cfg.Sources) == 0 {
		return nil, fmt.Errorf("no sources in %s", path)
	}
	return cfg.Sources, nil
}

// YouTubeFeedURL expands a channel ID into the channel uploads feed.
func YouTubeFeedURL(channelID string) string {
	return "https://www.youtube.com/feeds/videos.xml?channel_id=" + channelID
}

// FeedURL returns the effective feed URL for a source.
func (s Source) FeedURL() string {
	if s.Kind == "youtube" {
		return YouTubeFeedURL(s.URL)
	}
	return s.URL
}

// FetchAll downloads and parses all feeds, returning fresh items.
// Per-source errors are logged, never fatal.
func FetchAll(sources []Source, maxAge time.Duration, timeout time.Duration) []Item {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	parser.Client = &http.Client{Timeout: timeout}

	var all []Item
	okCount := 0

	for _, src := range sources {
		items, err := fetchOne(parser, src, maxAge)
		if err != nil {
			log.Printf("❌ %s: %v", src.Name, err)
			continue
		}
		if len(items) == 0 {
			log.Printf("⚪ %s: no fresh items", src.Name)
		} else {
			log.Printf("✅ %s: %d items", src.Name, len(items))
		}
		all = append(all, items...)
		okCount++
	}

	log.Printf("Feeds processed: %d/%d ok, %d items total", okCount, len(sources), len(all))
	return all
}

func fetchOne(parser *gofeed.Parser, src Source, maxAge time.Duration) ([]Item, error) {
	feed, err := parser.ParseURL(src.FeedURL())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var items []Item

	for i, entry := range feed.Items {
		if i >= maxItemsPerSource {
			break
		}

		title := CleanText(entry.Title)
		link := strings.TrimSpace(entry.Link)
		if title == "" || link == "" {
			continue
		}

		published := now
		if entry.PublishedParsed != nil {
			published = *entry.PublishedParsed
		} else if entry.UpdatedParsed != nil {
			published = *entry.UpdatedParsed
		}
		if now.Sub(published) > maxAge {
			continue
		}

		summary := CleanText(entry.Description)
		if summary == "" {
			summary = CleanText(entry.Content)
		}
		summary = capRunes(summary, 1500)

		items = append(items, Item{
			Title:     title,
			Summary:   summary,
			Link:      link,
			Published: published,
			Source:    src.Name,
			Kind:      sourceKind(src),
			VideoID:   videoID(link),
		})
	}

	return items, nil
}

func sourceKind(src Source) string {
	if src.Kind == "" {
		return "rss"
	}
	return src.Kind
}

var (
	reTags     = regexp.MustCompile(`<[^>]+>`)
	reEntities = regexp.MustCompile(`&#?\w+;`)
	reVideoID  = regexp.MustCompile(`[?&]v=([\w-]{6,})`)
)

// CleanText strips HTML tags and entities, collapses whitespace.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = reTags.ReplaceAllString(s, " ")
	s = reEntities.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// capRunes truncates on a rune boundary so multi-byte text stays valid.
func capRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func videoID(link string) string {
	if m := reVideoID.FindStringSubmatch(link); m != nil {
		return m[1]
	}
	return ""
}
