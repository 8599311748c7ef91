package permissions

import (
	"github.com/sirupsen/logrus"
)

// AccessType represents the access level of a user
type AccessType int

const (
	// None represents no access
	None AccessType = iota
	// Member represents a team member allowed to use the bot
	Member
)

// PermissionController decides access from the configured allowlists.
// A sender is a member when either their user id or the chat id is
// allowlisted.
type PermissionController struct {
	userIDs map[int64]bool
	chatIDs map[int64]bool
	logger  *logrus.Logger
}

// NewController creates a new permission controller
func NewController(userIDs, chatIDs []int64, logger *logrus.Logger) *PermissionController {
	userIDMap := make(map[int64]bool, len(userIDs))
	for _, id := range userIDs {
		userIDMap[id] = true
	}
	chatIDMap := make(map[int64]bool, len(chatIDs))
	for _, id := range chatIDs {
		chatIDMap[id] = true
	}

	logger.Infof("Initialized permission controller with %d users and %d chats", len(userIDs), len(chatIDs))

	return &PermissionController{
		userIDs: userIDMap,
		chatIDs: chatIDMap,
		logger:  logger,
	}
}

// GetAccessType determines the access type of a sender
func (p *PermissionController) GetAccessType(userID, chatID int64) AccessType {
	if p.userIDs[userID] || p.chatIDs[chatID] {
		return Member
	}
	p.logger.Debugf("Denied access for user %d in chat %d", userID, chatID)
	return None
}
