package coordinator

import (
	"Connect4/logger"
	"Connect4/models"
	"context"
	"fmt"
	"strings"
	"time"
)

// FriendChat stores a chat line from one friend to another and pushes it to
// both of them.
func (c *Coordinator) FriendChat(ctx context.Context, from, to, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}
	friends, err := c.isFriend(ctx, from, to)
	if err != nil {
		return storageError(err)
	}
	if !friends {
		return fmt.Errorf("%w: %s and %s", ErrNotFriends, from, to)
	}

	chat := &models.FriendChat{Sender: from, Receiver: to, Text: text, Datetime: time.Now()}
	if err := c.store.SaveChat(ctx, chat); err != nil {
		logger.Errorf("[CHAT-ERROR] Could not save chat %s -> %s: %v", from, to, err)
		return storageError(err)
	}
	c.emitToUser(from, EventFriendChat, chat)
	c.emitToUser(to, EventFriendChat, chat)
	return nil
}
