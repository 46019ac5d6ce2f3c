package game

import "errors"

var (
	ErrIllegalState    = errors.New("match is already terminated")
	ErrInvalidTurn     = errors.New("not your turn")
	ErrInvalidColumn   = errors.New("invalid column")
	ErrNotAParticipant = errors.New("user is not a participant of the match")
)
