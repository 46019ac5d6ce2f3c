package coordinator

import (
	"Connect4/logger"
	"Connect4/models"
	"Connect4/services/session"
	"context"
)

// SendRandomMatchRequest queues username with the rating currently stored
func (c *Coordinator) SendRandomMatchRequest(ctx context.Context, username string) error {
	c.mutex.Lock()
	err := c.checkRandomRequest(username)
	c.mutex.Unlock()
	if err != nil {
		logger.Warnf("[RANDOM-MATCH] %s rejected: %v", username, err)
		return err
	}

	stats, err := c.loadStats(ctx, username)
	if err != nil {
		return err
	}

	// Preconditions may have changed while loading the stats
	c.mutex.Lock()
	err = c.checkRandomRequest(username)
	if err == nil {
		err = c.randomRequests.Add(username, stats.Rating)
	}
	c.mutex.Unlock()
	if err != nil {
		logger.Warnf("[RANDOM-MATCH] %s rejected: %v", username, err)
		return err
	}

	c.emitToUser(username, EventRandomMatchRequest)
	logger.Infof("[RANDOM-MATCH] %s queued with rating %.1f", username, stats.Rating)
	return nil
}

// checkRandomRequest validates without queueing; callers must hold c.mutex
func (c *Coordinator) checkRandomRequest(username string) error {
	if c.isPending(username) {
		return session.ErrAlreadyInGame
	}
	if err := c.registry.CheckAvailable(username); err != nil {
		return err
	}
	if c.randomRequests.Has(username) {
		return session.ErrDuplicateRequest
	}
	return nil
}

// CancelRandomMatchRequest removes username from the queue
func (c *Coordinator) CancelRandomMatchRequest(ctx context.Context, username string) bool {
	c.mutex.Lock()
	deleted := c.randomRequests.Delete(username)
	c.mutex.Unlock()

	c.emitToUser(username, EventCancelRandomMatchRequest)
	return deleted
}

// ArrangeRandomMatches runs one arranging pass and creates the resulting
// matches. A pass triggered while another is running is skipped.
func (c *Coordinator) ArrangeRandomMatches(ctx context.Context) int {
	if !c.arranging.CompareAndSwap(false, true) {
		logger.Debugf("[ARRANGE] Previous pass still running, skipping")
		return 0
	}
	defer c.arranging.Store(false)

	if c.locker != nil {
		release, ok, err := c.locker.TryLock(ctx, arrangeLockKey, c.lockTTL)
		if err != nil {
			logger.Errorf("[ARRANGE-ERROR] Could not acquire arrange lock: %v", err)
			return 0
		}
		if !ok {
			logger.Debugf("[ARRANGE] Lock held elsewhere, skipping")
			return 0
		}
		defer release()
	}

	c.mutex.Lock()
	if c.randomRequests.Len() < 2 {
		c.mutex.Unlock()
		return 0
	}
	pairings := c.randomRequests.ArrangeAll(c.arranger)
	var arranged []models.Pairing
	var dropped []string
	for _, p := range pairings {
		if c.isPending(p.Player1, p.Player2) || c.registry.CheckAvailable(p.Player1, p.Player2) != nil {
			// Every path that makes a player unavailable purges their request,
			// so this only happens on a bookkeeping bug.
			logger.Errorf("[ARRANGE-ERROR] Pairing %s/%s is stale, dropping it", p.Player1, p.Player2)
			dropped = append(dropped, p.Player1, p.Player2)
			continue
		}
		c.reserve(p.Player1, p.Player2)
		arranged = append(arranged, p)
	}
	c.mutex.Unlock()

	for _, username := range dropped {
		c.emitToUser(username, EventCancelRandomMatchRequest)
	}

	created := 0
	for _, p := range arranged {
		if err := c.createMatch(ctx, p.Player1, p.Player2, originRandom); err == nil {
			created++
		}
	}
	if created > 0 {
		logger.Infof("[ARRANGE] Created %d random matches", created)
	}
	return created
}
