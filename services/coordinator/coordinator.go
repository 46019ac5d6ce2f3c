// Package coordinator wires client events (connect, disconnect, match requests,
// moves) to the session state, the match rules and persistence, and pushes the
// resulting notifications.
package coordinator

import (
	game_constants "Connect4/constants/game"
	"Connect4/logger"
	"Connect4/models"
	"Connect4/services/session"
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const arrangeLockKey = "arrange:lock"

// Coordinator owns the process-wide session state. Construct a single one at
// start-up and hand it to every transport handler.
type Coordinator struct {
	registry       *session.Registry
	friendRequests *session.FriendRequests
	randomRequests *session.RandomRequests
	arranger       *session.Arranger

	store    Store
	notifier Notifier
	presence Presence
	locker   Locker

	// mutex makes every check-then-act over registry and ledgers atomic. It is
	// never held across store or network I/O.
	mutex sync.Mutex
	// pending holds players whose match is being created. They count as in
	// game for new requests until the creation commits or fails.
	pending map[string]struct{}

	matchLocks *keyedMutex
	// statsLocks serializes the read-modify-write of each player's stats
	statsLocks *keyedMutex
	arranging  atomic.Bool
	lockTTL    time.Duration
}

type Option func(*Coordinator)

// WithPresence mirrors presence transitions to p
func WithPresence(p Presence) Option {
	return func(c *Coordinator) { c.presence = p }
}

// WithLocker guards arranging passes with l
func WithLocker(l Locker, ttl time.Duration) Option {
	return func(c *Coordinator) {
		c.locker = l
		c.lockTTL = ttl
	}
}

// WithArranger replaces the default matchmaking parameters
func WithArranger(a *session.Arranger) Option {
	return func(c *Coordinator) { c.arranger = a }
}

func New(store Store, notifier Notifier, opts ...Option) *Coordinator {
	registry := session.NewRegistry()
	c := &Coordinator{
		registry:       registry,
		friendRequests: session.NewFriendRequests(registry),
		randomRequests: session.NewRandomRequests(registry),
		arranger:       session.DefaultArranger(),
		store:          store,
		notifier:       notifier,
		pending:        make(map[string]struct{}),
		matchLocks:     newKeyedMutex(),
		statsLocks:     newKeyedMutex(),
		lockTTL:        5 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Coordinator) Registry() *session.Registry {
	return c.registry
}

// Connect registers connID for username. The first connection of a user
// announces them to their online friends.
func (c *Coordinator) Connect(ctx context.Context, username, connID string) {
	c.mutex.Lock()
	cameOnline := c.registry.AddConnection(username, connID)
	inGame := c.registry.IsInGame(username)
	requests := c.friendRequests.ForUser(username)
	queued := c.randomRequests.Has(username)
	c.mutex.Unlock()

	logger.Infof("[CONNECT] %s connected through %s (first connection: %v)", username, connID, cameOnline)

	// Bring the new connection up to date with the pending requests
	for _, req := range requests {
		c.notifier.Emit(connID, EventFriendMatchRequest, RequestPayload{Sender: req.From, Receiver: req.To})
	}
	if queued {
		c.notifier.Emit(connID, EventRandomMatchRequest)
	}

	if !cameOnline {
		return
	}
	status := models.PresenceOnline
	if inGame {
		status = models.PresencePlaying
	}
	c.mirrorPresence(ctx, username, status)
	c.notifyFriends(ctx, username, EventFriendOnline)
}

// Disconnect unregisters connID. When it was the user's last connection the
// user's requests are purged and any match in progress is forfeited. Every
// cleanup step is best effort.
func (c *Coordinator) Disconnect(ctx context.Context, connID string) {
	c.mutex.Lock()
	username, wentOffline, ok := c.registry.RemoveConnection(connID)
	var removed []models.FriendMatchRequest
	if ok && wentOffline {
		removed = c.friendRequests.DeleteAllForUser(username)
		c.randomRequests.Delete(username)
	}
	c.mutex.Unlock()

	if !ok {
		return
	}
	logger.Infof("[DISCONNECT] %s closed %s (offline: %v)", username, connID, wentOffline)
	if !wentOffline {
		return
	}

	c.clearPresence(ctx, username)
	c.notifyFriends(ctx, username, EventFriendOffline)

	for _, req := range removed {
		counterpart := req.To
		if counterpart == username {
			counterpart = req.From
		}
		c.emitToUser(counterpart, EventDeleteFriendMatchRequest, RequestPayload{Sender: req.From, Receiver: req.To})
	}

	matches, err := c.store.FindMatches(ctx, models.MatchFilter{Username: username, Status: models.IN_PROGRESS})
	if err != nil {
		logger.Errorf("[DISCONNECT-ERROR] Could not look up matches of %s: %v", username, err)
	}
	for _, match := range matches {
		if err := c.Forfeit(ctx, match.ID, username); err != nil {
			logger.Errorf("[DISCONNECT-ERROR] Could not forfeit match %s of %s: %v", match.ID, username, err)
		}
	}

	c.registry.MarkOffGame(username)
	logger.Infof("[DISCONNECT-DONE] %s is offline", username)
}

// emitToUser sends event to every connection of username
func (c *Coordinator) emitToUser(username, event string, payload ...interface{}) {
	for _, connID := range c.registry.GetConnections(username) {
		c.notifier.Emit(connID, event, payload...)
	}
}

// notifyFriends sends event(username) to every online friend of username
func (c *Coordinator) notifyFriends(ctx context.Context, username, event string) {
	friends, err := c.store.FriendsOf(ctx, username)
	if err != nil {
		logger.Errorf("[FRIENDS-ERROR] Could not load friends of %s for %s: %v", username, event, err)
		return
	}
	for _, friend := range friends {
		c.emitToUser(friend, event, username)
	}
}

func (c *Coordinator) isFriend(ctx context.Context, username, other string) (bool, error) {
	friends, err := c.store.FriendsOf(ctx, username)
	if err != nil {
		return false, err
	}
	for _, friend := range friends {
		if friend == other {
			return true, nil
		}
	}
	return false, nil
}

func (c *Coordinator) mirrorPresence(ctx context.Context, username string, status models.PresenceStatus) {
	if c.presence == nil {
		return
	}
	if err := c.presence.SetPresence(ctx, username, status); err != nil {
		logger.Warnf("[PRESENCE-ERROR] Could not mirror %s as %s: %v", username, status, err)
	}
}

func (c *Coordinator) clearPresence(ctx context.Context, username string) {
	if c.presence == nil {
		return
	}
	if err := c.presence.ClearPresence(ctx, username); err != nil {
		logger.Warnf("[PRESENCE-ERROR] Could not clear %s: %v", username, err)
	}
}

// reserve marks players as pending; callers must hold c.mutex
func (c *Coordinator) reserve(usernames ...string) {
	for _, username := range usernames {
		c.pending[username] = struct{}{}
	}
}

// isPending reports whether any player is pending; callers must hold c.mutex
func (c *Coordinator) isPending(usernames ...string) bool {
	for _, username := range usernames {
		if _, ok := c.pending[username]; ok {
			return true
		}
	}
	return false
}

func observersRoom(matchID string) string {
	return game_constants.OBSERVERS_ROOM_PREFIX + matchID
}
