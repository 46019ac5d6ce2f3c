package session

import "errors"

var (
	ErrNotOnline        = errors.New("player is not online")
	ErrAlreadyInGame    = errors.New("player is already in game")
	ErrDuplicateRequest = errors.New("request already exists")
	ErrSelfRequest      = errors.New("cannot request a match against yourself")
)
