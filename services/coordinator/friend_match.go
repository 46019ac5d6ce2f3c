package coordinator

import (
	"Connect4/logger"
	"Connect4/services/session"
	"Connect4/models"
	"context"
	"errors"
	"fmt"
)

// SendFriendMatchRequest records from->to, or starts a match right away when
// to had already asked from.
func (c *Coordinator) SendFriendMatchRequest(ctx context.Context, from, to string) error {
	if from == to {
		return session.ErrSelfRequest
	}
	if _, err := c.store.LoadPlayer(ctx, to); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrPlayerNotFound, to)
		}
		logger.Errorf("[FRIEND-MATCH-ERROR] Could not load player %s: %v", to, err)
		return storageError(err)
	}
	friends, err := c.isFriend(ctx, from, to)
	if err != nil {
		logger.Errorf("[FRIEND-MATCH-ERROR] Could not load friends of %s: %v", from, err)
		return storageError(err)
	}
	if !friends {
		return fmt.Errorf("%w: %s and %s", ErrNotFriends, from, to)
	}

	c.mutex.Lock()
	mutual, err := c.takeFriendRequest(from, to)
	c.mutex.Unlock()
	if err != nil {
		logger.Warnf("[FRIEND-MATCH] %s -> %s rejected: %v", from, to, err)
		return err
	}

	if !mutual {
		payload := RequestPayload{Sender: from, Receiver: to}
		c.emitToUser(from, EventFriendMatchRequest, payload)
		c.emitToUser(to, EventFriendMatchRequest, payload)
		logger.Infof("[FRIEND-MATCH] %s asked %s for a match", from, to)
		return nil
	}

	// to asked first, so to plays first
	return c.createMatch(ctx, to, from, originFriend)
}

// takeFriendRequest either records from->to or, if to->from exists, consumes
// both directions and reserves the two players. Callers must hold c.mutex.
func (c *Coordinator) takeFriendRequest(from, to string) (mutual bool, err error) {
	if c.isPending(from, to) {
		return false, session.ErrAlreadyInGame
	}
	if !c.friendRequests.Has(to, from) {
		return false, c.friendRequests.Add(from, to)
	}
	if err := c.registry.CheckAvailable(from, to); err != nil {
		return false, err
	}
	c.friendRequests.Delete(to, from)
	c.friendRequests.Delete(from, to)
	c.randomRequests.Delete(from)
	c.randomRequests.Delete(to)
	c.reserve(from, to)
	return true, nil
}

// CancelFriendMatchRequest drops the requests between from and to in both
// directions and tells both players if anything was dropped.
func (c *Coordinator) CancelFriendMatchRequest(ctx context.Context, from, to string) bool {
	c.mutex.Lock()
	var removed []RequestPayload
	if c.friendRequests.Delete(from, to) {
		removed = append(removed, RequestPayload{Sender: from, Receiver: to})
	}
	if c.friendRequests.Delete(to, from) {
		removed = append(removed, RequestPayload{Sender: to, Receiver: from})
	}
	c.mutex.Unlock()

	if len(removed) == 0 {
		return false
	}
	// One event per removed request, carrying its own direction
	for _, payload := range removed {
		c.emitToUser(from, EventDeleteFriendMatchRequest, payload)
		c.emitToUser(to, EventDeleteFriendMatchRequest, payload)
	}
	logger.Infof("[FRIEND-MATCH] %s cancelled the request with %s", from, to)
	return true
}
