// Package youtube fetches auto-generated transcripts via the timedtext
// endpoint. Channel feeds themselves go through the regular feed pipeline.
package youtube

import (
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const timedTextURL = "https://video.google.com/timedtext"

// maxTranscriptChars keeps transcripts prompt-sized.
const maxTranscriptChars = 4000

type transcript struct {
	XMLName xml.Name `xml:"transcript"`
	Texts   []struct {
		Start string `xml:"start,attr"`
		Dur   string `xml:"dur,attr"`
		Body  string `xml:",chardata"`
	} `xml:"text"`
}

// FetchTranscript retrieves the transcript of a video, trying the given
// languages in order. Returns an error when no track exists.
func FetchTranscript(videoID string, langs ...string) (string, error) {
	if videoID == "" {
		return "", fmt.Errorf("empty video id")
	}
	if len(langs) == 0 {
		langs = []string{"ru", "en"}
	}

	client := &http.Client{Timeout: 20 * time.Second}

	var lastErr error
	for _, lang := range langs {
		text, err := fetchTrack(client, videoID, lang)
		if err != nil {
			lastErr = err
			continue
		}
		if text != "" {
			return text, nil
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no transcript track for %s", videoID)
	}
	return "", lastErr
}

func fetchTrack(client *http.Client, videoID, lang string) (string, error) {
	params := url.Values{}
	params.Set("v", videoID)
	params.Set("lang", lang)

	resp, err := client.Get(timedTextURL + "?" + params.Encode())
	if err != nil {
		return "", fmt.Errorf("timedtext request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return "", fmt.Errorf("timedtext status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read transcript: %v", err)
	}
	// Endpoint answers 200 with an empty body when the track is missing.
	if len(body) == 0 {
		return "", nil
	}

	return ParseTimedText(body)
}

// ParseTimedText decodes a timedtext XML document into plain text.
func ParseTimedText(body []byte) (string, error) {
	var doc transcript
	if err := xml.Unmarshal(body, &doc); err != nil {
		return "", fmt.Errorf("parse transcript xml: %v", err)
	}

	var b strings.Builder
	for _, t := range doc.Texts {
		line := strings.TrimSpace(html.UnescapeString(t.Body))
		if line == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(line)
		if b.Len() >= maxTranscriptChars {
			break
		}
	}

	out := b.String()
	if len(out) > maxTranscriptChars {
		out = out[:maxTranscriptChars]
		if idx := strings.LastIndex(out, " "); idx > 0 {
			out = out[:idx]
		}
	}
	return out, nil
}
