// Package game holds the Connect-Four rules: move application, win and draw
// detection, forfeit and turn alternation over a models.Match working copy.
package game

import (
	game_constants "Connect4/constants/game"
	"Connect4/models"
	"fmt"
	"time"
)

var now = time.Now

// ApplyMove drops a disc of the acting user's role into column and settles the
// match if the move wins or fills the board. On error the match is untouched.
func ApplyMove(match *models.Match, username string, column int) error {
	if match.IsTerminated() {
		return ErrIllegalState
	}
	role := match.RoleOf(username)
	if role == models.EMPTY || role != match.PlayerTurn {
		return ErrInvalidTurn
	}
	if column < 0 || column >= game_constants.BOARD_COLUMNS {
		return fmt.Errorf("%w: %d is outside [0,%d]", ErrInvalidColumn, column, game_constants.BOARD_COLUMNS-1)
	}
	if isColumnFull(&match.Board, column) {
		return fmt.Errorf("%w: column %d is full", ErrInvalidColumn, column)
	}

	for row := 0; row < game_constants.BOARD_ROWS; row++ {
		if match.Board[row][column] == models.EMPTY {
			match.Board[row][column] = role
			break
		}
	}

	if winner := findWinner(&match.Board); winner != models.EMPTY {
		terminate(match, models.NORMALLY_TERMINATED, winner)
	} else if isBoardFull(&match.Board) {
		terminate(match, models.NORMALLY_TERMINATED, models.EMPTY)
	} else {
		match.PlayerTurn = match.PlayerTurn.Other()
	}
	return nil
}

// Forfeit ends the match in favour of the opponent of username
func Forfeit(match *models.Match, username string) error {
	role := match.RoleOf(username)
	if role == models.EMPTY {
		return ErrNotAParticipant
	}
	if match.IsTerminated() {
		return ErrIllegalState
	}
	terminate(match, models.FORFAIT, role.Other())
	return nil
}

// CountMoves counts the cells occupied by username's discs
func CountMoves(match *models.Match, username string) (int, error) {
	role := match.RoleOf(username)
	if role == models.EMPTY {
		return 0, ErrNotAParticipant
	}
	count := 0
	for row := range match.Board {
		for col := range match.Board[row] {
			if match.Board[row][col] == role {
				count++
			}
		}
	}
	return count, nil
}

func terminate(match *models.Match, status models.MatchStatus, winner models.Role) {
	end := now()
	match.Status = status
	match.Winner = winner
	match.PlayerTurn = models.EMPTY
	match.DatetimeEnd = &end
}

// Columns fill bottom-up, so only the top row needs checking
func isColumnFull(board *models.Board, column int) bool {
	return board[game_constants.BOARD_ROWS-1][column] != models.EMPTY
}

func isBoardFull(board *models.Board) bool {
	for col := 0; col < game_constants.BOARD_COLUMNS; col++ {
		if !isColumnFull(board, col) {
			return false
		}
	}
	return true
}

// right, up, up-right, up-left
var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

func findWinner(board *models.Board) models.Role {
	for row := 0; row < game_constants.BOARD_ROWS; row++ {
		for col := 0; col < game_constants.BOARD_COLUMNS; col++ {
			role := board[row][col]
			if role == models.EMPTY {
				continue
			}
			for _, d := range directions {
				if aligned(board, row, col, d[0], d[1], role) {
					return role
				}
			}
		}
	}
	return models.EMPTY
}

func aligned(board *models.Board, row, col, dRow, dCol int, role models.Role) bool {
	for i := 1; i < game_constants.CONNECT; i++ {
		r, c := row+i*dRow, col+i*dCol
		if r < 0 || r >= game_constants.BOARD_ROWS || c < 0 || c >= game_constants.BOARD_COLUMNS {
			return false
		}
		if board[r][c] != role {
			return false
		}
	}
	return true
}
