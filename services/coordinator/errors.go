package coordinator

import (
	"Connect4/models"
	"Connect4/services/game"
	"Connect4/services/rating"
	"Connect4/services/session"
	"errors"
)

var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrStatsMissing   = errors.New("stats record missing")
	ErrNotFriends     = errors.New("players are not friends")
	ErrEmptyMessage   = errors.New("empty message")
	ErrStorage        = errors.New("storage error")
)

// Kind classifies an error returned by the coordinator
type Kind string

const (
	KindValidation   Kind = "validation"
	KindPrecondition Kind = "precondition"
	KindNotFound     Kind = "not_found"
	KindStorage      Kind = "storage"
)

// KindOf maps err to its category. Unknown errors are storage errors.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, game.ErrInvalidColumn),
		errors.Is(err, session.ErrSelfRequest),
		errors.Is(err, ErrNotFriends),
		errors.Is(err, ErrEmptyMessage):
		return KindValidation
	case errors.Is(err, session.ErrNotOnline),
		errors.Is(err, session.ErrAlreadyInGame),
		errors.Is(err, session.ErrDuplicateRequest),
		errors.Is(err, game.ErrInvalidTurn),
		errors.Is(err, game.ErrIllegalState),
		errors.Is(err, game.ErrNotAParticipant),
		errors.Is(err, rating.ErrNotTerminated),
		errors.Is(err, models.ErrConflict):
		return KindPrecondition
	case errors.Is(err, ErrMatchNotFound),
		errors.Is(err, ErrPlayerNotFound),
		errors.Is(err, ErrStatsMissing),
		errors.Is(err, models.ErrNotFound):
		return KindNotFound
	default:
		return KindStorage
	}
}

func storageError(err error) error {
	if errors.Is(err, models.ErrConflict) {
		return err
	}
	return errors.Join(ErrStorage, err)
}
