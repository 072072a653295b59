package imagegen

import (
	"strings"
	"testing"
)

func TestBuildURL_Shape(t *testing.T) {
	u := BuildURL("Мошенники атакуют! Взлом банка?", 42)

	if !strings.HasPrefix(u, endpoint) {
		t.Errorf("url must start with the API endpoint: %q", u)
	}
	for _, param := range []string{"seed=42", "width=1024", "height=1024", "nologo=true"} {
		if !strings.Contains(u, param) {
			t.Errorf("url missing %q: %q", param, u)
		}
	}
	if strings.Contains(u, " ") {
		t.Errorf("spaces must be escaped: %q", u)
	}
}

func TestBuildURL_StripsPunctuation(t *testing.T) {
	u := BuildURL("Взлом!!! Срочно???", 1)
	if strings.Contains(u, "!") || strings.Contains(u, "?!") {
		t.Errorf("title punctuation leaked into prompt: %q", u)
	}
}
