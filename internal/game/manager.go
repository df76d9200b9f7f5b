package game

import "sync"

// table pairs a session with the lock serialising its callers.
type table struct {
	mu      sync.Mutex
	session *Session
}

// Manager holds one session per chat.
type Manager struct {
	tables  map[int64]*table
	mu      sync.RWMutex
	factory func(chatID int64) *Session
}

func NewManager(factory func(chatID int64) *Session) *Manager {
	return &Manager{
		tables:  make(map[int64]*table),
		factory: factory,
	}
}

func (m *Manager) get(chatID int64) *table {
	m.mu.RLock()
	t := m.tables[chatID]
	m.mu.RUnlock()
	if t != nil {
		return t
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if t = m.tables[chatID]; t == nil {
		t = &table{session: m.factory(chatID)}
		m.tables[chatID] = t
	}
	return t
}

// Acquire returns the chat's session, creating it on first use, locked for
// the caller until release is called.
func (m *Manager) Acquire(chatID int64) (s *Session, release func()) {
	t := m.get(chatID)
	t.mu.Lock()
	return t.session, t.mu.Unlock
}

func (m *Manager) Delete(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tables, chatID)
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tables)
}
