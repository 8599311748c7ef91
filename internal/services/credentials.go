package services

import (
	"fmt"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

// CredentialStore holds OAuth token JSON per chat, in process memory
// only. Credentials live for the lifetime of the process and are lost
// on restart.
type CredentialStore struct {
	cache  *cache.Cache
	logger *logrus.Logger
}

// NewCredentialStore creates a new credential store
func NewCredentialStore(logger *logrus.Logger) *CredentialStore {
	return &CredentialStore{
		cache:  cache.New(cache.NoExpiration, 0),
		logger: logger,
	}
}

// Set stores a chat's token JSON
func (s *CredentialStore) Set(chatID int64, tokenJSON string) {
	s.cache.Set(credentialKey(chatID), tokenJSON, cache.NoExpiration)
	s.logger.Debugf("Stored Google credential for chat %d", chatID)
}

// Get returns a chat's token JSON
func (s *CredentialStore) Get(chatID int64) (string, bool) {
	if data, found := s.cache.Get(credentialKey(chatID)); found {
		if token, ok := data.(string); ok {
			return token, true
		}
	}
	return "", false
}

// Has reports whether a chat has a stored credential
func (s *CredentialStore) Has(chatID int64) bool {
	_, found := s.cache.Get(credentialKey(chatID))
	return found
}

func credentialKey(chatID int64) string {
	return fmt.Sprintf("google_credential_%d", chatID)
}
