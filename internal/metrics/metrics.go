package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	ItemsProcessed       int64
	DuplicatesFiltered   int64
	IrrelevantFiltered   int64
	GenerationsOK        int64
	GenerationsRejected  int64
	GenerationsFailed    int64
	ImagesGenerated      int64
	PostsPublished       int64

	// Timings
	LastRunDuration    time.Duration
	TotalRunDuration   time.Duration
	AverageRunDuration time.Duration
	RunCount           int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) IncrementItemsProcessed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ItemsProcessed++
}

func (m *Metrics) IncrementDuplicatesFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered++
}

func (m *Metrics) IncrementIrrelevantFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.IrrelevantFiltered++
}

func (m *Metrics) IncrementGenerationsOK() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerationsOK++
}

func (m *Metrics) IncrementGenerationsRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerationsRejected++
}

func (m *Metrics) IncrementGenerationsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerationsFailed++
}

func (m *Metrics) IncrementImagesGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ImagesGenerated++
}

func (m *Metrics) IncrementPostsPublished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PostsPublished++
}

func (m *Metrics) RecordRunDuration(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastRunDuration = duration
	m.TotalRunDuration += duration
	m.RunCount++

	if m.RunCount > 0 {
		m.AverageRunDuration = m.TotalRunDuration / time.Duration(m.RunCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"items_processed":         m.ItemsProcessed,
		"duplicates_filtered":     m.DuplicatesFiltered,
		"irrelevant_filtered":     m.IrrelevantFiltered,
		"generations_ok":          m.GenerationsOK,
		"generations_rejected":    m.GenerationsRejected,
		"generations_failed":      m.GenerationsFailed,
		"images_generated":        m.ImagesGenerated,
		"posts_published":         m.PostsPublished,
		"last_run_duration_ms":    m.LastRunDuration.Milliseconds(),
		"average_run_duration_ms": m.AverageRunDuration.Milliseconds(),
		"last_run_time":           m.LastRunTime.Format(time.RFC3339),
		"last_error_time":         m.LastErrorTime.Format(time.RFC3339),
		"last_error":              m.LastError,
		"is_healthy":              m.IsHealthy,
	}
}
