package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/adrg/strutil/metrics"
)

// ArticleID generates a stable id from title and link.
func ArticleID(title, link string) string {
	h := sha256.Sum256([]byte(title + "|" + link))
	return hex.EncodeToString(h[:])[:20]
}

// CleanTitle crops trailing source suffixes ("... - SecurityLab", "... | Новости")
// so the same story from different feeds compares equal.
func CleanTitle(s string) string {
	s = cropAfter(s, " – ")
	s = cropAfter(s, " - ")
	s = cropAfter(s, "|")
	return strings.TrimSpace(s)
}

// cropAfter removes text after marker, but only when enough title remains.
func cropAfter(s, marker string) string {
	const minLengthBeforeMarker = 15
	if pos := strings.Index(s, marker); pos != -1 && pos >= minLengthBeforeMarker {
		return s[:pos]
	}
	return s
}

// SimilarTitles reports whether two cleaned titles are near-duplicates,
// using Hamming distance over the leading characters.
func SimilarTitles(a, b string) bool {
	a, b = strings.ToLower(CleanTitle(a)), strings.ToLower(CleanTitle(b))

	lenDiff := len(a) - len(b)
	if lenDiff < 0 {
		lenDiff = -lenDiff
	}
	if lenDiff > 10 {
		return false
	}

	minLength := len(a)
	if len(b) < minLength {
		minLength = len(b)
	}
	if minLength <= 20 {
		return a == b
	}

	compareLength := 30
	if minLength < compareLength {
		compareLength = minLength
	}
	hamming := metrics.NewHamming()
	distance := hamming.Distance(a[:compareLength], b[:compareLength])
	return distance <= 5
}

// SimilarityKey builds a soft within-run dedup key: host|topWords|windowUnix.
// Two items from the same host with the same leading significant words inside
// one time window collapse into one.
func SimilarityKey(title, description, link string, published time.Time) string {
	const (
		windowHours = 6
		maxWords    = 6
	)

	host := "unknown"
	if u, err := url.Parse(link); err == nil && u.Host != "" {
		host = strings.ToLower(u.Host)
	}

	norm := normalize(title + " " + description)
	words := strings.Fields(norm)

	significant := make([]string, 0, maxWords)
	for _, w := range words {
		if len(significant) >= maxWords {
			break
		}
		if stopWords[w] {
			continue
		}
		if len([]rune(w)) <= 2 {
			continue
		}
		significant = append(significant, w)
	}
	if len(significant) == 0 {
		for i := 0; i < len(words) && i < maxWords; i++ {
			significant = append(significant, words[i])
		}
	}

	if published.IsZero() {
		published = time.Now()
	}
	windowStart := published.Truncate(windowHours * time.Hour).Unix()

	return fmt.Sprintf("%s|%s|%d", host, strings.Join(significant, "_"), windowStart)
}

var reHTMLTags = regexp.MustCompile(`<[^>]*>`)

// normalize lowers, strips tags and punctuation, collapses whitespace.
func normalize(s string) string {
	s = strings.ToLower(s)
	s = reHTMLTags.ReplaceAllString(s, " ")

	b := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			b = append(b, r)
		} else {
			b = append(b, ' ')
		}
	}
	return strings.Join(strings.Fields(string(b)), " ")
}

// Russian and English stop words common in security headlines.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "of": true, "in": true, "for": true,
	"and": true, "to": true, "как": true, "что": true, "для": true,
	"это": true, "или": true, "при": true, "из": true, "под": true,
	"новый": true, "новая": true, "новое": true,
}
