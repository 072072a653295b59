package quality

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitize_RemovesCodeFence(t *testing.T) {
	out := Sanitize("```html\nТекст поста про безопасность.\n```")
	if strings.Contains(out, "```") {
		t.Errorf("code fence not removed: %q", out)
	}
	if !strings.Contains(out, "Текст поста") {
		t.Errorf("content lost: %q", out)
	}
}

func TestSanitize_RemovesNoteLine(t *testing.T) {
	out := Sanitize("Note: this was generated automatically.\nПроверьте настройки телефона.")
	if strings.Contains(strings.ToLower(out), "note:") {
		t.Errorf("note line not removed: %q", out)
	}
	if !strings.Contains(out, "Проверьте настройки") {
		t.Errorf("content line lost: %q", out)
	}
}

func TestSanitize_RemovesBracketedDisclaimer(t *testing.T) {
	out := Sanitize("[Note: machine generated] Это текст поста.")
	if strings.Contains(strings.ToLower(out), "note") {
		t.Errorf("bracketed disclaimer not removed: %q", out)
	}
	if !strings.Contains(out, "Это текст поста") {
		t.Errorf("content lost: %q", out)
	}
}

func TestIsBanal_ClicheOpenerRejected(t *testing.T) {
	banal, phrase := IsBanal("В современном мире гаджеты окружают нас повсюду. Дальше текст.")
	if !banal {
		t.Errorf("cliché in the first sentence must be rejected")
	}
	if phrase == "" {
		t.Errorf("expected the matched phrase to be reported")
	}
}

func TestIsBanal_SingleMidTextHitAllowed(t *testing.T) {
	banal, _ := IsBanal("Хакеры атакуют банки. Важно помнить о смене паролей.")
	if banal {
		t.Errorf("one cliché outside the opener should pass")
	}
}

func TestIsBanal_TwoHitsRejected(t *testing.T) {
	text := "Хакеры атакуют. Важно помнить о паролях. Не секрет, что многие их не меняют."
	if banal, _ := IsBanal(text); !banal {
		t.Errorf("two cliché hits must be rejected")
	}
}

func TestCheck_TooShortRejected(t *testing.T) {
	if _, err := Check("Коротко."); err == nil {
		t.Errorf("expected rejection of a short generation")
	}
}

func TestCheck_AcceptsNormalPost(t *testing.T) {
	text := strings.Repeat("Проверьте настройки телефона и обновите приложения на всех устройствах. ", 8)
	out, err := Check(text)
	if err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}
	if utf8.RuneCountInString(out) < MinPostRunes {
		t.Errorf("accepted text shorter than minimum: %d runes", utf8.RuneCountInString(out))
	}
}
