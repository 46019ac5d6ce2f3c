package controllers

import (
	"Connect4/models"
	"Connect4/services/store"
	"context"
)

// Accounts is the persistence the REST handlers read and write directly
type Accounts interface {
	CreatePlayer(ctx context.Context, username, email, passwordHash string) (*models.Player, error)
	LoadCredentials(ctx context.Context, login string) (*store.Credentials, error)
	LoadPlayer(ctx context.Context, username string) (*models.Player, error)
	FriendsOf(ctx context.Context, username string) ([]string, error)
	AddFriendship(ctx context.Context, a, b string) error
	LoadStats(ctx context.Context, username string) (*models.Stats, error)
	FindMatches(ctx context.Context, filter models.MatchFilter) ([]*models.Match, error)
	ChatHistory(ctx context.Context, a, b string) ([]models.FriendChat, error)
}

// Matches is the match lifecycle, owned by the coordinator
type Matches interface {
	GetMatch(ctx context.Context, matchID string) (*models.Match, error)
	ApplyMove(ctx context.Context, matchID, username string, column int) error
	Forfeit(ctx context.Context, matchID, username string) error
	JoinObservers(ctx context.Context, matchID, username string) error
	LeaveObservers(ctx context.Context, matchID, username string) error
}
