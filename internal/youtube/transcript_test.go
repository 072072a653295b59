package youtube

import (
	"strings"
	"testing"
)

func TestParseTimedText_JoinsLines(t *testing.T) {
	body := []byte(`<transcript>` +
		`<text start="0" dur="1.5">Hello world</text>` +
		`<text start="1.5" dur="2">second line</text>` +
		`<text start="3.5" dur="1">   </text>` +
		`</transcript>`)

	got, err := ParseTimedText(body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != "Hello world second line" {
		t.Errorf("got %q", got)
	}
}

func TestParseTimedText_UnescapesEntities(t *testing.T) {
	body := []byte(`<transcript><text start="0" dur="1">rock &amp; roll</text></transcript>`)
	got, err := ParseTimedText(body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !strings.Contains(got, "rock & roll") {
		t.Errorf("entity not decoded: %q", got)
	}
}

func TestParseTimedText_InvalidXML(t *testing.T) {
	if _, err := ParseTimedText([]byte("not xml at all")); err == nil {
		t.Errorf("expected error for invalid xml")
	}
}

func TestParseTimedText_CapsLength(t *testing.T) {
	var b strings.Builder
	b.WriteString("<transcript>")
	for i := 0; i < 500; i++ {
		b.WriteString(`<text start="0" dur="1">some spoken words in the video</text>`)
	}
	b.WriteString("</transcript>")

	got, err := ParseTimedText([]byte(b.String()))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) > maxTranscriptChars {
		t.Errorf("transcript length %d exceeds cap %d", len(got), maxTranscriptChars)
	}
}

func TestFetchTranscript_EmptyID(t *testing.T) {
	if _, err := FetchTranscript(""); err == nil {
		t.Errorf("expected error for empty video id")
	}
}
