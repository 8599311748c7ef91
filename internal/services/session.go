package services

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"gmeet-jira-bot/internal/constants"
	"gmeet-jira-bot/internal/models"
)

// SessionStore keeps at most one conversation per chat. Abandoned
// conversations expire with the cache entry.
type SessionStore struct {
	cache  *cache.Cache
	logger *logrus.Logger
}

// NewSessionStore creates a new session store
func NewSessionStore(logger *logrus.Logger) *SessionStore {
	return &SessionStore{
		cache: cache.New(
			constants.SessionExpiration*time.Minute,
			constants.SessionCleanupInterval*time.Minute,
		),
		logger: logger,
	}
}

// Get returns the chat's conversation, if any
func (s *SessionStore) Get(chatID int64) (*models.Conversation, bool) {
	if data, found := s.cache.Get(sessionKey(chatID)); found {
		if conv, ok := data.(*models.Conversation); ok {
			return conv, true
		}
		s.logger.Errorf("Invalid conversation type for chat %d", chatID)
	}
	return nil, false
}

// Set stores the chat's conversation
func (s *SessionStore) Set(chatID int64, conv *models.Conversation) {
	s.cache.Set(sessionKey(chatID), conv, cache.DefaultExpiration)
	s.logger.Debugf("Set conversation for chat %d: workflow=%s step=%d", chatID, conv.Workflow, conv.StepIndex)
}

// Clear removes the chat's conversation
func (s *SessionStore) Clear(chatID int64) {
	s.cache.Delete(sessionKey(chatID))
	s.logger.Debugf("Cleared conversation for chat %d", chatID)
}

func sessionKey(chatID int64) string {
	return fmt.Sprintf("conversation_%d", chatID)
}
