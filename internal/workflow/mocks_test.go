package workflow

import (
	"sync"

	"gmeet-jira-bot/internal/models"
)

// memSessionStore is a small in-memory implementation used by unit tests.
type memSessionStore struct {
	mu    sync.RWMutex
	store map[int64]*models.Conversation
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{store: make(map[int64]*models.Conversation)}
}

func (m *memSessionStore) Get(chatID int64) (*models.Conversation, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	conv, ok := m.store[chatID]
	return conv, ok
}

func (m *memSessionStore) Set(chatID int64, conv *models.Conversation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[chatID] = conv
}

func (m *memSessionStore) Clear(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, chatID)
}

// memCreds simulates the Google credential store.
type memCreds struct {
	authorized map[int64]bool
}

func newMemCreds(chatIDs ...int64) *memCreds {
	m := &memCreds{authorized: make(map[int64]bool)}
	for _, id := range chatIDs {
		m.authorized[id] = true
	}
	return m
}

func (m *memCreds) Has(chatID int64) bool {
	return m.authorized[chatID]
}
