package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const apiBase = "https://api.telegram.org/bot"

const defaultRetries = 3

// Client talks to the Bot API for one bot/channel pair.
type Client struct {
	token   string
	chatID  string
	retries int
}

// New creates a client; retries <= 0 falls back to the default.
func New(token, chatID string, retries int) *Client {
	if retries <= 0 {
		retries = defaultRetries
	}
	return &Client{token: token, chatID: chatID, retries: retries}
}

// apiError mirrors the Bot API error envelope; parameters.retry_after is
// set on 429 responses.
type apiError struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
	Parameters  struct {
		RetryAfter int `json:"retry_after"`
	} `json:"parameters"`
}

// SendMessage sends an HTML text message to the channel with retry logic.
func (c *Client) SendMessage(text string) error {
	for attempt := 1; attempt <= c.retries; attempt++ {
		err := c.sendMessageOnce(text)
		if err == nil {
			log.Printf("Message sent to Telegram (try %d)", attempt)
			return nil
		}

		log.Printf("Error sending to Telegram (try %d/%d): %v", attempt, c.retries, err)

		if attempt < c.retries {
			wait := backoff(attempt, err)
			log.Printf("Wait %v before next try...", wait)
			time.Sleep(wait)
		}
	}

	return fmt.Errorf("can't send message after %d tries", c.retries)
}

func (c *Client) sendMessageOnce(text string) error {
	url := apiBase + c.token + "/sendMessage"

	payload := map[string]interface{}{
		"chat_id":                  c.chatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error making JSON: %v", err)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("error HTTP request: %v", err)
	}
	defer closeBody(resp.Body)

	return checkResponse(resp)
}

// SendPhotoFile uploads a local image with an HTML caption, with retry logic.
func (c *Client) SendPhotoFile(photoPath, caption string) error {
	for attempt := 1; attempt <= c.retries; attempt++ {
		err := c.sendPhotoFileOnce(photoPath, caption)
		if err == nil {
			log.Printf("Photo sent to Telegram (try %d)", attempt)
			return nil
		}

		log.Printf("Error sending photo to Telegram (try %d/%d): %v", attempt, c.retries, err)

		if attempt < c.retries {
			wait := backoff(attempt, err)
			log.Printf("Wait %v before next try...", wait)
			time.Sleep(wait)
		}
	}

	return fmt.Errorf("can't send photo after %d tries", c.retries)
}

func (c *Client) sendPhotoFileOnce(photoPath, caption string) error {
	url := apiBase + c.token + "/sendPhoto"

	// Telegram caption max ~1024 chars; trim defensively on rune boundary.
	if runes := []rune(caption); len(runes) > 1024 {
		caption = string(runes[:1024])
	}

	file, err := os.Open(photoPath)
	if err != nil {
		return fmt.Errorf("error opening photo: %v", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("chat_id", c.chatID); err != nil {
		return err
	}
	if err := writer.WriteField("caption", caption); err != nil {
		return err
	}
	if err := writer.WriteField("parse_mode", "HTML"); err != nil {
		return err
	}

	part, err := writer.CreateFormFile("photo", filepath.Base(photoPath))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("error writing photo data: %v", err)
	}
	if err := writer.Close(); err != nil {
		return err
	}

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Post(url, writer.FormDataContentType(), &buf)
	if err != nil {
		return fmt.Errorf("error HTTP request: %v", err)
	}
	defer closeBody(resp.Body)

	return checkResponse(resp)
}

// retryAfterError carries the server-requested pause from a 429.
type retryAfterError struct {
	after time.Duration
	desc  string
}

func (e *retryAfterError) Error() string {
	return fmt.Sprintf("telegram API rate limited: %s (retry after %v)", e.desc, e.after)
}

func checkResponse(resp *http.Response) error {
	if resp.StatusCode == 200 {
		return nil
	}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var apiErr apiError
	if err := json.Unmarshal(data, &apiErr); err == nil {
		if resp.StatusCode == http.StatusTooManyRequests && apiErr.Parameters.RetryAfter > 0 {
			return &retryAfterError{
				after: time.Duration(apiErr.Parameters.RetryAfter) * time.Second,
				desc:  apiErr.Description,
			}
		}
		if apiErr.Description != "" {
			return fmt.Errorf("telegram API error: status %d: %s", resp.StatusCode, apiErr.Description)
		}
	}

	return fmt.Errorf("telegram API error: status %d", resp.StatusCode)
}

// backoff picks the wait for the next attempt: the server's retry-after on
// 429, exponential otherwise.
func backoff(attempt int, err error) time.Duration {
	if ra, ok := err.(*retryAfterError); ok {
		return ra.after
	}
	return time.Duration(1<<attempt) * time.Second
}

func closeBody(body io.ReadCloser) {
	if err := body.Close(); err != nil {
		log.Printf("Warning: failed to close response body: %v", err)
	}
}
