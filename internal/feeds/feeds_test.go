package feeds

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCleanText_StripsTagsAndEntities(t *testing.T) {
	got := CleanText("<p>Hello &amp; world</p>")
	if got != "Hello world" {
		t.Errorf("got %q, want %q", got, "Hello world")
	}
}

func TestCleanText_CollapsesWhitespace(t *testing.T) {
	got := CleanText("  строка \n\n  с   пробелами ")
	if got != "строка с пробелами" {
		t.Errorf("got %q", got)
	}
}

func TestCapRunes_MultibyteSafe(t *testing.T) {
	in := strings.Repeat("д", 1600)
	got := capRunes(in, 1500)

	if n := utf8.RuneCountInString(got); n != 1500 {
		t.Errorf("length = %d runes, want 1500", n)
	}
	if !utf8.ValidString(got) {
		t.Errorf("truncation produced invalid UTF-8")
	}
	if short := "короткий текст"; capRunes(short, 1500) != short {
		t.Errorf("short text must be kept intact")
	}
}

func TestYouTubeFeedURL(t *testing.T) {
	got := YouTubeFeedURL("UCabc123")
	want := "https://www.youtube.com/feeds/videos.xml?channel_id=UCabc123"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFeedURL_ExpandsYouTubeKind(t *testing.T) {
	src := Source{Name: "Канал", URL: "UCabc123", Kind: "youtube"}
	if got := src.FeedURL(); got != YouTubeFeedURL("UCabc123") {
		t.Errorf("got %q", got)
	}

	rss := Source{Name: "Лента", URL: "https://example.com/rss"}
	if got := rss.FeedURL(); got != "https://example.com/rss" {
		t.Errorf("rss source url changed: %q", got)
	}
}

func TestVideoID(t *testing.T) {
	if got := videoID("https://www.youtube.com/watch?v=dQw4w9WgXcQ"); got != "dQw4w9WgXcQ" {
		t.Errorf("got %q", got)
	}
	if got := videoID("https://example.com/article"); got != "" {
		t.Errorf("expected empty id for non-video link, got %q", got)
	}
}

func TestLoadSources(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	raw := `sources:
  - name: SecurityLab
    url: https://www.securitylab.ru/_services/export/rss/
  - name: Канал
    url: UCabc123
    kind: youtube
`
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	sources, err := LoadSources(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("got %d sources, want 2", len(sources))
	}
	if sources[0].Name != "SecurityLab" || sources[1].Kind != "youtube" {
		t.Errorf("sources parsed wrong: %+v", sources)
	}
}

func TestLoadSources_EmptyListFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	if err := os.WriteFile(path, []byte("sources: []\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSources(path); err == nil {
		t.Errorf("expected error for empty source list")
	}
}
