package audit

import (
	"sync"
	"time"
)

// Event представляет одно событие журнала
type Event struct {
	Time    string         `json:"time"`
	Action  string         `json:"action"`
	Details map[string]any `json:"details"`
}

// Log — журнал событий в памяти для админки и CSV-выгрузки.
// Журнал ограничен по размеру, старые записи вытесняются.
type Log struct {
	mu      sync.Mutex
	entries []Event
	limit   int
}

const defaultLimit = 10000

func NewLog() *Log {
	return &Log{limit: defaultLimit}
}

// Record добавляет событие в журнал
func (l *Log) Record(action string, details map[string]any) {
	if details == nil {
		details = map[string]any{}
	}
	event := Event{
		Time:    time.Now().UTC().Format("2006-01-02 15:04:05"),
		Action:  action,
		Details: details,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, event)
	if len(l.entries) > l.limit {
		l.entries = l.entries[len(l.entries)-l.limit:]
	}
}

// Snapshot возвращает копию журнала от старых событий к новым
func (l *Log) Snapshot() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Event, len(l.entries))
	copy(out, l.entries)
	return out
}
