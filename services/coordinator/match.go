package coordinator

import (
	"Connect4/logger"
	"Connect4/models"
	"Connect4/services/game"
	"Connect4/services/rating"
	"Connect4/services/session"
	"context"
	"errors"
	"fmt"
)

// ApplyMove plays column for username in match matchID
func (c *Coordinator) ApplyMove(ctx context.Context, matchID, username string, column int) error {
	return c.transition(ctx, matchID, "MOVE", func(match *models.Match) error {
		return game.ApplyMove(match, username, column)
	})
}

// Forfeit makes username give up match matchID
func (c *Coordinator) Forfeit(ctx context.Context, matchID, username string) error {
	return c.transition(ctx, matchID, "FORFEIT", func(match *models.Match) error {
		return game.Forfeit(match, username)
	})
}

// transition runs one state-machine step: load, mutate, save, notify. Loads and
// saves of the same match never interleave within the process; across
// processes the store rejects saving over a terminated match.
func (c *Coordinator) transition(ctx context.Context, matchID, tag string, step func(*models.Match) error) error {
	unlock := c.matchLocks.Lock(matchID)
	defer unlock()

	match, err := c.loadMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if err := step(match); err != nil {
		logger.Warnf("[%s] Rejected on match %s: %v", tag, matchID, err)
		return err
	}
	if err := c.store.SaveMatch(ctx, match); err != nil {
		logger.Errorf("[%s-ERROR] Could not save match %s: %v", tag, matchID, err)
		return storageError(err)
	}

	c.emitToUser(match.Player1, EventMatch, match.ID)
	c.emitToUser(match.Player2, EventMatch, match.ID)
	c.notifier.EmitToGroup(observersRoom(match.ID), EventMatch, match.ID)

	if match.IsTerminated() {
		c.settle(ctx, match)
	}
	return nil
}

// settle applies the side effects of a match that just terminated: observers
// are released, both players go off game and both stats are refreshed once.
func (c *Coordinator) settle(ctx context.Context, match *models.Match) {
	logger.Infof("[SETTLE] Match %s ended: %s, winner %s", match.ID, match.Status, match.Winner)

	c.notifier.DisbandGroup(observersRoom(match.ID))

	for _, player := range []string{match.Player1, match.Player2} {
		c.registry.MarkOffGame(player)
		if c.registry.IsOnline(player) {
			c.mirrorPresence(ctx, player, models.PresenceOnline)
		}
		c.notifyFriends(ctx, player, EventFriendOffgame)
	}

	if err := c.refreshStats(ctx, match); err != nil {
		logger.Errorf("[SETTLE-ERROR] Stats of match %s not refreshed: %v", match.ID, err)
	}
}

// refreshStats holds both players' stats locks from load to save, so a player
// settling two matches at once has both results applied.
func (c *Coordinator) refreshStats(ctx context.Context, match *models.Match) error {
	unlock := c.statsLocks.LockAll(match.Player1, match.Player2)
	defer unlock()

	stats1, err := c.loadStats(ctx, match.Player1)
	if err != nil {
		return err
	}
	stats2, err := c.loadStats(ctx, match.Player2)
	if err != nil {
		return err
	}
	updated1, updated2, err := rating.RefreshBoth(match, *stats1, *stats2)
	if err != nil {
		return err
	}
	if err := c.store.SaveStatsPair(ctx, &updated1, &updated2); err != nil {
		return storageError(err)
	}
	return nil
}

// GetMatch returns a working copy of a match
func (c *Coordinator) GetMatch(ctx context.Context, matchID string) (*models.Match, error) {
	return c.loadMatch(ctx, matchID)
}

// JoinObservers adds every connection of username to the match's observer
// group. Players of the match receive its events directly and cannot observe.
func (c *Coordinator) JoinObservers(ctx context.Context, matchID, username string) error {
	match, err := c.loadMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if match.RoleOf(username) != models.EMPTY {
		return fmt.Errorf("%w: %s plays match %s", session.ErrAlreadyInGame, username, matchID)
	}
	connections := c.registry.GetConnections(username)
	if len(connections) == 0 {
		return session.ErrNotOnline
	}
	for _, connID := range connections {
		c.notifier.JoinGroup(connID, observersRoom(matchID))
	}
	logger.Infof("[OBSERVE] %s observes match %s", username, matchID)
	return nil
}

// LeaveObservers removes every connection of username from the observer group
func (c *Coordinator) LeaveObservers(ctx context.Context, matchID, username string) error {
	if _, err := c.loadMatch(ctx, matchID); err != nil {
		return err
	}
	for _, connID := range c.registry.GetConnections(username) {
		c.notifier.LeaveGroup(connID, observersRoom(matchID))
	}
	return nil
}

func (c *Coordinator) loadMatch(ctx context.Context, matchID string) (*models.Match, error) {
	match, err := c.store.LoadMatch(ctx, matchID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}
	if err != nil {
		logger.Errorf("[MATCH-ERROR] Could not load match %s: %v", matchID, err)
		return nil, storageError(err)
	}
	return match, nil
}

func (c *Coordinator) loadStats(ctx context.Context, username string) (*models.Stats, error) {
	stats, err := c.store.LoadStats(ctx, username)
	if errors.Is(err, models.ErrNotFound) {
		logger.Errorf("[STATS-ERROR] Player %s has no stats record", username)
		return nil, fmt.Errorf("%w: %s", ErrStatsMissing, username)
	}
	if err != nil {
		return nil, storageError(err)
	}
	return stats, nil
}
