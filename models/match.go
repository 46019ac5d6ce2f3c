package models

import (
	game_constants "Connect4/constants/game"
	"time"
)

// Role identifies a match participant's side, and doubles as the state of a board cell
type Role int

const (
	EMPTY Role = iota
	PLAYER_1
	PLAYER_2
)

func (r Role) String() string {
	switch r {
	case PLAYER_1:
		return "PLAYER_1"
	case PLAYER_2:
		return "PLAYER_2"
	default:
		return "EMPTY"
	}
}

// Other returns the opposing role (EMPTY stays EMPTY)
func (r Role) Other() Role {
	switch r {
	case PLAYER_1:
		return PLAYER_2
	case PLAYER_2:
		return PLAYER_1
	default:
		return EMPTY
	}
}

type MatchStatus string

const (
	IN_PROGRESS         MatchStatus = "IN_PROGRESS"
	NORMALLY_TERMINATED MatchStatus = "NORMALLY_TERMINATED"
	FORFAIT             MatchStatus = "FORFAIT"
)

// Board is indexed [row][column], row 0 being the bottom of the grid. Being an
// array, every row is its own storage and copying a Board copies every cell.
type Board [game_constants.BOARD_ROWS][game_constants.BOARD_COLUMNS]Role

// Match is the in-memory working copy of a persisted match. It is only ever
// mutated by the state machine in services/game.
type Match struct {
	ID            string      `json:"id"`
	Player1       string      `json:"player1"`
	Player2       string      `json:"player2"`
	Board         Board       `json:"board"`
	Status        MatchStatus `json:"status"`
	Winner        Role        `json:"winner"`
	PlayerTurn    Role        `json:"playerTurn"`
	DatetimeBegin time.Time   `json:"datetimeBegin"`
	DatetimeEnd   *time.Time  `json:"datetimeEnd"`
}

// NewMatch returns a match ready to be played: empty board, PLAYER_1 to move.
func NewMatch(id, player1, player2 string, begin time.Time) *Match {
	return &Match{
		ID:            id,
		Player1:       player1,
		Player2:       player2,
		Status:        IN_PROGRESS,
		Winner:        EMPTY,
		PlayerTurn:    PLAYER_1,
		DatetimeBegin: begin,
	}
}

// RoleOf derives the role of username in the match, EMPTY if not a participant
func (m *Match) RoleOf(username string) Role {
	switch username {
	case m.Player1:
		return PLAYER_1
	case m.Player2:
		return PLAYER_2
	default:
		return EMPTY
	}
}

// PlayerOf is the inverse of RoleOf
func (m *Match) PlayerOf(role Role) string {
	switch role {
	case PLAYER_1:
		return m.Player1
	case PLAYER_2:
		return m.Player2
	default:
		return ""
	}
}

// Opponent returns the other participant, or "" if username does not play this match
func (m *Match) Opponent(username string) string {
	return m.PlayerOf(m.RoleOf(username).Other())
}

func (m *Match) IsTerminated() bool {
	return m.Status != IN_PROGRESS
}
