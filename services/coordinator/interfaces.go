package coordinator

import (
	"Connect4/models"
	"context"
	"time"
)

// Store is the persistence the coordinator relies on. Every load returns a
// fresh working copy owned by the caller.
type Store interface {
	LoadPlayer(ctx context.Context, username string) (*models.Player, error)
	FriendsOf(ctx context.Context, username string) ([]string, error)
	LoadMatch(ctx context.Context, id string) (*models.Match, error)
	SaveMatch(ctx context.Context, match *models.Match) error
	FindMatches(ctx context.Context, filter models.MatchFilter) ([]*models.Match, error)
	CreateMatch(ctx context.Context, player1, player2 string) (*models.Match, error)
	LoadStats(ctx context.Context, username string) (*models.Stats, error)
	// SaveStatsPair persists both participants' stats atomically
	SaveStatsPair(ctx context.Context, a, b *models.Stats) error
	SaveChat(ctx context.Context, chat *models.FriendChat) error
}

// Notifier pushes events to client connections and observer groups
type Notifier interface {
	Emit(connID string, event string, payload ...interface{})
	JoinGroup(connID string, group string)
	LeaveGroup(connID string, group string)
	EmitToGroup(group string, event string, payload ...interface{})
	// DisbandGroup makes every member connection leave group
	DisbandGroup(group string)
}

// Presence mirrors presence transitions outside the process. Optional.
type Presence interface {
	SetPresence(ctx context.Context, username string, status models.PresenceStatus) error
	ClearPresence(ctx context.Context, username string) error
}

// Locker guards the arranging pass across processes. Optional.
type Locker interface {
	// TryLock returns ok=false without error when someone else holds key
	TryLock(ctx context.Context, key string, ttl time.Duration) (release func(), ok bool, err error)
}
