package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	CyclesCompleted    int64
	DaysSkipped        int64
	QuestionsScraped   int64
	BlocksFailed       int64
	TranslationsFailed int64
	PollsSent          int64
	PollsSkipped       int64
	SendFailures       int64

	// Timings
	LastCycleTime    time.Duration
	AverageCycleTime time.Duration
	TotalCycleTime   time.Duration
	CycleCount       int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddDaysSkipped(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DaysSkipped += int64(n)
}

func (m *Metrics) AddQuestionsScraped(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QuestionsScraped += int64(n)
}

func (m *Metrics) AddBlocksFailed(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BlocksFailed += int64(n)
}

func (m *Metrics) IncrementTranslationsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TranslationsFailed++
}

func (m *Metrics) IncrementPollsSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PollsSent++
}

func (m *Metrics) IncrementPollsSkipped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PollsSkipped++
}

func (m *Metrics) IncrementSendFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendFailures++
}

func (m *Metrics) RecordCycleTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastCycleTime = duration
	m.TotalCycleTime += duration
	m.CycleCount++

	if m.CycleCount > 0 {
		m.AverageCycleTime = m.TotalCycleTime / time.Duration(m.CycleCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.CyclesCompleted++
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
		"cycles_completed":      m.CyclesCompleted,
		"days_skipped":          m.DaysSkipped,
		"questions_scraped":     m.QuestionsScraped,
		"blocks_failed":         m.BlocksFailed,
		"translations_failed":   m.TranslationsFailed,
		"polls_sent":            m.PollsSent,
		"polls_skipped":         m.PollsSkipped,
		"send_failures":         m.SendFailures,
		"last_cycle_time_ms":    m.LastCycleTime.Milliseconds(),
		"average_cycle_time_ms": m.AverageCycleTime.Milliseconds(),
		"last_run_time":         m.LastRunTime.Format(time.RFC3339),
		"last_error_time":       m.LastErrorTime.Format(time.RFC3339),
		"last_error":            m.LastError,
		"is_healthy":            m.IsHealthy,
	}
}
