package telegram

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

func fakeResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestNew_RetriesFallBackToDefault(t *testing.T) {
	if c := New("t", "@c", 0); c.retries != defaultRetries {
		t.Errorf("retries = %d, want default %d", c.retries, defaultRetries)
	}
	if c := New("t", "@c", 5); c.retries != 5 {
		t.Errorf("retries = %d, want 5", c.retries)
	}
}

func TestCheckResponse_OK(t *testing.T) {
	if err := checkResponse(fakeResponse(200, `{"ok":true}`)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCheckResponse_RateLimitCarriesRetryAfter(t *testing.T) {
	body := `{"ok":false,"description":"Too Many Requests: retry after 7","parameters":{"retry_after":7}}`
	err := checkResponse(fakeResponse(429, body))
	if err == nil {
		t.Fatalf("expected error on 429")
	}

	ra, ok := err.(*retryAfterError)
	if !ok {
		t.Fatalf("expected retryAfterError, got %T: %v", err, err)
	}
	if ra.after != 7*time.Second {
		t.Errorf("retry after = %v, want 7s", ra.after)
	}
}

func TestCheckResponse_ReportsDescription(t *testing.T) {
	body := `{"ok":false,"description":"Bad Request: chat not found"}`
	err := checkResponse(fakeResponse(400, body))
	if err == nil || !strings.Contains(err.Error(), "chat not found") {
		t.Errorf("description lost: %v", err)
	}
}

func TestBackoff_HonoursRetryAfter(t *testing.T) {
	err := &retryAfterError{after: 9 * time.Second, desc: "flood"}
	if got := backoff(1, err); got != 9*time.Second {
		t.Errorf("backoff = %v, want server's 9s", got)
	}
}

func TestBackoff_ExponentialOtherwise(t *testing.T) {
	if got := backoff(2, errors.New("network")); got != 4*time.Second {
		t.Errorf("backoff = %v, want 4s", got)
	}
}
