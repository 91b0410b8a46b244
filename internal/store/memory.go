package store

import "sync"

// MemoryStore is an in-memory implementation of [Store].
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]PushRecord
	order   []string
}

// NewMemoryStore creates an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]PushRecord),
	}
}

// Record stores rec under rec.WidgetKey.
func (m *MemoryStore) Record(rec PushRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.records[rec.WidgetKey]; !exists {
		m.order = append(m.order, rec.WidgetKey)
	}
	m.records[rec.WidgetKey] = rec
}

// Get returns the latest record for widgetKey.
func (m *MemoryStore) Get(widgetKey string) (PushRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[widgetKey]
	return rec, ok
}

// All returns a snapshot of the latest record per widget in first-seen order.
func (m *MemoryStore) All() []PushRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	results := make([]PushRecord, 0, len(m.order))
	for _, key := range m.order {
		results = append(results, m.records[key])
	}
	return results
}
