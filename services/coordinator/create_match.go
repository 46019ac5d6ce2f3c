package coordinator

import (
	"Connect4/logger"
	"Connect4/models"
	"context"
)

type matchOrigin int

const (
	originFriend matchOrigin = iota
	originRandom
)

// createMatch persists a new match between two reserved players and commits
// them as in game. If persistence fails the reservation is rolled back and the
// players are told their request is gone.
func (c *Coordinator) createMatch(ctx context.Context, player1, player2 string, origin matchOrigin) error {
	match, err := c.store.CreateMatch(ctx, player1, player2)
	if err != nil {
		logger.Errorf("[NEW-MATCH-ERROR] Could not create match %s vs %s: %v", player1, player2, err)
		c.mutex.Lock()
		delete(c.pending, player1)
		delete(c.pending, player2)
		c.mutex.Unlock()

		switch origin {
		case originFriend:
			// player1 sent the consumed request first
			payload := RequestPayload{Sender: player1, Receiver: player2}
			c.emitToUser(player1, EventDeleteFriendMatchRequest, payload)
			c.emitToUser(player2, EventDeleteFriendMatchRequest, payload)
		case originRandom:
			c.emitToUser(player1, EventCancelRandomMatchRequest)
			c.emitToUser(player2, EventCancelRandomMatchRequest)
		}
		return storageError(err)
	}

	c.mutex.Lock()
	delete(c.pending, player1)
	delete(c.pending, player2)
	c.registry.MarkInGame(player1)
	c.registry.MarkInGame(player2)
	var offline []string
	for _, player := range []string{player1, player2} {
		if !c.registry.IsOnline(player) {
			offline = append(offline, player)
		}
	}
	stale := append(c.friendRequests.DeleteAllForUser(player1), c.friendRequests.DeleteAllForUser(player2)...)
	c.mutex.Unlock()

	logger.Infof("[NEW-MATCH] Match %s created: %s vs %s", match.ID, player1, player2)

	for _, req := range stale {
		payload := RequestPayload{Sender: req.From, Receiver: req.To}
		c.emitToUser(req.From, EventDeleteFriendMatchRequest, payload)
		c.emitToUser(req.To, EventDeleteFriendMatchRequest, payload)
	}
	for _, player := range []string{player1, player2} {
		c.emitToUser(player, EventNewMatch, match.ID)
		c.mirrorPresence(ctx, player, models.PresencePlaying)
		c.notifyFriends(ctx, player, EventFriendIngame)
	}

	// A player who disconnected while the match was being created forfeits it
	for _, player := range offline {
		logger.Warnf("[NEW-MATCH] %s went offline before match %s started", player, match.ID)
		if err := c.Forfeit(ctx, match.ID, player); err != nil {
			logger.Errorf("[NEW-MATCH-ERROR] Could not forfeit match %s for %s: %v", match.ID, player, err)
		}
	}
	return nil
}
