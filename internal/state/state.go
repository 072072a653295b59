package state

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// PostedItem is one entry of the posted ledger.
type PostedItem struct {
	PostedAt time.Time `json:"posted_at"`
	Source   string    `json:"source"`
	Title    string    `json:"title"`
}

type data struct {
	Posted      map[string]PostedItem `json:"posted_ids"`
	SourceIndex int                   `json:"source_index"`
	StyleIndex  int                   `json:"style_index"`
	LastRun     time.Time             `json:"last_run"`
	Stats       map[string]int        `json:"stats"`
}

// State persists the posted ledger and the source/style rotation cursors
// in a flat JSON file between runs.
type State struct {
	path      string
	retention time.Duration
	mu        sync.Mutex
	data      data
}

// Load reads state from path. A missing or corrupt file starts empty.
func Load(path string, retention time.Duration) *State {
	st := &State{
		path:      path,
		retention: retention,
		data: data{
			Posted: make(map[string]PostedItem),
			Stats:  make(map[string]int),
		},
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️ state: read %s: %v, starting empty", path, err)
		}
		return st
	}

	var loaded data
	if err := json.Unmarshal(raw, &loaded); err != nil {
		log.Printf("⚠️ state: corrupt %s: %v, starting empty", path, err)
		return st
	}
	if loaded.Posted == nil {
		loaded.Posted = make(map[string]PostedItem)
	}
	if loaded.Stats == nil {
		loaded.Stats = make(map[string]int)
	}
	st.data = loaded

	log.Printf("📂 state: %d posts in history", len(st.data.Posted))
	return st
}

// Save writes state atomically (temp file + rename).
func (st *State) Save() error {
	st.mu.Lock()
	st.data.LastRun = time.Now()
	raw, err := json.MarshalIndent(st.data, "", "  ")
	st.mu.Unlock()
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	dir := filepath.Dir(st.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	tmp := st.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp, st.path); err != nil {
		return fmt.Errorf("rename state: %w", err)
	}
	return nil
}

// IsPosted checks the ledger.
func (st *State) IsPosted(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, ok := st.data.Posted[id]
	return ok
}

// MarkPosted records a published article and bumps the source counter.
func (st *State) MarkPosted(id, source, title string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if len([]rune(title)) > 100 {
		title = string([]rune(title)[:100])
	}
	st.data.Posted[id] = PostedItem{
		PostedAt: time.Now(),
		Source:   source,
		Title:    title,
	}
	st.data.Stats[source]++
}

// CleanupOld drops ledger entries past the retention window.
func (st *State) CleanupOld() {
	st.mu.Lock()
	defer st.mu.Unlock()

	cutoff := time.Now().Add(-st.retention)
	removed := 0
	for id, item := range st.data.Posted {
		if item.PostedAt.Before(cutoff) {
			delete(st.data.Posted, id)
			removed++
		}
	}
	if removed > 0 {
		log.Printf("🧹 state: cleaned %d old entries", removed)
	}
}

// NextSourceOrder returns sources rotated so a different source leads each
// run, and advances the cursor.
func (st *State) NextSourceOrder(n int) []int {
	st.mu.Lock()
	defer st.mu.Unlock()

	if n == 0 {
		return nil
	}
	idx := st.data.SourceIndex % n
	order := make([]int, 0, n)
	for i := 0; i < n; i++ {
		order = append(order, (idx+i)%n)
	}
	st.data.SourceIndex = (idx + 1) % n
	return order
}

// NextStyle returns the next style index in rotation.
func (st *State) NextStyle(n int) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	if n == 0 {
		return 0
	}
	idx := st.data.StyleIndex % n
	st.data.StyleIndex = (idx + 1) % n
	return idx
}

// Stats returns a copy of per-source post counts.
func (st *State) Stats() map[string]int {
	st.mu.Lock()
	defer st.mu.Unlock()

	out := make(map[string]int, len(st.data.Stats))
	for k, v := range st.data.Stats {
		out[k] = v
	}
	return out
}

// PostedTitles returns recent ledger titles for the similarity screen.
func (st *State) PostedTitles() []string {
	st.mu.Lock()
	defer st.mu.Unlock()

	out := make([]string, 0, len(st.data.Posted))
	for _, item := range st.data.Posted {
		out = append(out, item.Title)
	}
	return out
}
