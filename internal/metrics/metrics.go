package metrics

import (
	"sync"
	"time"
)

// Metrics накапливает счетчики работы бэкенда интервью
type Metrics struct {
	mu                 sync.RWMutex
	SessionsStarted    int64
	SessionsCompleted  int64
	QuestionsIssued    int64
	AnswersSaved       int64
	GlyphsGenerated    int64
	APICallsTotal      int64
	APICallsSuccessful int64
	LastUpdateTime     time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{
		LastUpdateTime: time.Now(),
	}
}

func (m *Metrics) IncrementSessionsStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SessionsStarted++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementSessionsCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SessionsCompleted++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementQuestionsIssued() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QuestionsIssued++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementAnswersSaved() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AnswersSaved++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementGlyphsGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GlyphsGenerated++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementAPICall(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.APICallsTotal++
	if success {
		m.APICallsSuccessful++
	}
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) GetSnapshot() Metrics {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Metrics{
		SessionsStarted:    m.SessionsStarted,
		SessionsCompleted:  m.SessionsCompleted,
		QuestionsIssued:    m.QuestionsIssued,
		AnswersSaved:       m.AnswersSaved,
		GlyphsGenerated:    m.GlyphsGenerated,
		APICallsTotal:      m.APICallsTotal,
		APICallsSuccessful: m.APICallsSuccessful,
		LastUpdateTime:     m.LastUpdateTime,
	}
}
