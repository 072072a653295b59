package state

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestLoad_MissingFileStartsEmpty(t *testing.T) {
	st := Load(filepath.Join(t.TempDir(), "state.json"), 14*24*time.Hour)
	if st.IsPosted("anything") {
		t.Errorf("fresh state must be empty")
	}
}

func TestLoad_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}
	st := Load(path, 14*24*time.Hour)
	if st.IsPosted("anything") {
		t.Errorf("corrupt state must start empty")
	}
}

func TestSaveLoad_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	st := Load(path, 14*24*time.Hour)
	st.MarkPosted("abc123", "SecurityLab", "Хакеры атакуют банки")
	if err := st.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	st2 := Load(path, 14*24*time.Hour)
	if !st2.IsPosted("abc123") {
		t.Errorf("posted id lost after reload")
	}
	if got := st2.Stats()["SecurityLab"]; got != 1 {
		t.Errorf("source stats = %d, want 1", got)
	}
	titles := st2.PostedTitles()
	if len(titles) != 1 || titles[0] != "Хакеры атакуют банки" {
		t.Errorf("posted titles = %v", titles)
	}
}

func TestMarkPosted_CapsLongTitle(t *testing.T) {
	st := Load(filepath.Join(t.TempDir(), "state.json"), time.Hour)
	st.MarkPosted("id", "src", strings.Repeat("д", 150))

	titles := st.PostedTitles()
	if len(titles) != 1 {
		t.Fatalf("expected one title, got %d", len(titles))
	}
	if n := utf8.RuneCountInString(titles[0]); n != 100 {
		t.Errorf("stored title length = %d runes, want 100", n)
	}
}

func TestCleanupOld_DropsExpiredEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	raw := `{
		"posted_ids": {
			"old": {"posted_at": "2020-01-01T00:00:00Z", "source": "X", "title": "Old"}
		},
		"source_index": 0,
		"style_index": 0,
		"last_run": "2020-01-01T00:00:00Z",
		"stats": {}
	}`
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	st := Load(path, 14*24*time.Hour)
	if !st.IsPosted("old") {
		t.Fatalf("entry not loaded")
	}
	st.CleanupOld()
	if st.IsPosted("old") {
		t.Errorf("expired entry survived cleanup")
	}
}

func TestNextSourceOrder_Rotates(t *testing.T) {
	st := Load(filepath.Join(t.TempDir(), "state.json"), time.Hour)

	want := [][]int{
		{0, 1, 2},
		{1, 2, 0},
		{2, 0, 1},
		{0, 1, 2},
	}
	for i, w := range want {
		got := st.NextSourceOrder(3)
		if len(got) != len(w) {
			t.Fatalf("call %d: got %v, want %v", i, got, w)
		}
		for j := range w {
			if got[j] != w[j] {
				t.Errorf("call %d: got %v, want %v", i, got, w)
				break
			}
		}
	}
}

func TestNextStyle_Cycles(t *testing.T) {
	st := Load(filepath.Join(t.TempDir(), "state.json"), time.Hour)

	for i, want := range []int{0, 1, 2, 0, 1} {
		if got := st.NextStyle(3); got != want {
			t.Errorf("call %d: style = %d, want %d", i, got, want)
		}
	}
}
