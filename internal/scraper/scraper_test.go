package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestExtractBySelectors_PicksArticleParagraphs(t *testing.T) {
	html := `<html><body><article>
		<p>Это первый абзац статьи, он достаточно длинный для отбора.</p>
		<p>Второй абзац тоже вполне содержательный и длинный.</p>
	</article></body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}

	got := extractBySelectors(doc, []string{"article p"}, 1)
	if !strings.Contains(got, "первый абзац") || !strings.Contains(got, "Второй абзац") {
		t.Errorf("paragraphs lost: %q", got)
	}
}

func TestCleanContent_StripsJunkLines(t *testing.T) {
	content := strings.Join([]string{
		"Мошенники придумали новую схему обмана через поддельные приложения.",
		"Подписывайтесь на наш Telegram-канал",
		"Мы используем cookie для улучшения сайта",
		"Оставить комментарий",
	}, "\n")

	got := cleanContent(content)
	if !strings.Contains(got, "новую схему обмана") {
		t.Errorf("article text lost: %q", got)
	}
	if strings.Contains(strings.ToLower(got), "cookie") || strings.Contains(got, "Подписывайтесь") {
		t.Errorf("junk survived: %q", got)
	}
}

func TestCleanContent_CapsLengthOnParagraphs(t *testing.T) {
	paragraph := "Абзац новостного текста, достаточно длинный чтобы пройти фильтры очистки содержимого."
	content := strings.Repeat(paragraph+"\n", 60)

	got := cleanContent(content)
	if len(got) > 1800 {
		t.Errorf("content length %d exceeds cap", len(got))
	}
	if got == "" {
		t.Errorf("all content lost")
	}
}
