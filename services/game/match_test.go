package game

import (
	"testing"
	"time"

	"Connect4/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatch() *models.Match {
	return models.NewMatch("m1", "alice", "bob", time.Now().Add(-time.Minute))
}

// play alternates alice/bob starting with whoever has the turn
func play(t *testing.T, m *models.Match, columns ...int) {
	t.Helper()
	for _, col := range columns {
		require.NoError(t, ApplyMove(m, m.PlayerOf(m.PlayerTurn), col))
	}
}

func TestNewMatchIsFresh(t *testing.T) {
	m := newTestMatch()

	assert.Equal(t, models.Board{}, m.Board)
	assert.Equal(t, models.IN_PROGRESS, m.Status)
	assert.Equal(t, models.PLAYER_1, m.PlayerTurn)
	assert.Equal(t, models.EMPTY, m.Winner)
	assert.Nil(t, m.DatetimeEnd)
}

func TestApplyMoveDropsToLowestRow(t *testing.T) {
	m := newTestMatch()

	require.NoError(t, ApplyMove(m, "alice", 2))
	require.NoError(t, ApplyMove(m, "bob", 2))

	assert.Equal(t, models.PLAYER_1, m.Board[0][2])
	assert.Equal(t, models.PLAYER_2, m.Board[1][2])
	assert.Equal(t, models.EMPTY, m.Board[2][2])
	// rows are independent
	assert.Equal(t, models.EMPTY, m.Board[0][3])
	assert.Equal(t, models.EMPTY, m.Board[1][0])
	assert.Equal(t, models.PLAYER_1, m.PlayerTurn)
}

func TestApplyMoveErrorsLeaveMatchUntouched(t *testing.T) {
	tests := []struct {
		name     string
		prepare  func(m *models.Match)
		username string
		column   int
		wantErr  error
	}{
		{"wrong turn", func(m *models.Match) {}, "bob", 0, ErrInvalidTurn},
		{"not a participant", func(m *models.Match) {}, "carol", 0, ErrInvalidTurn},
		{"negative column", func(m *models.Match) {}, "alice", -1, ErrInvalidColumn},
		{"column too big", func(m *models.Match) {}, "alice", 7, ErrInvalidColumn},
		{"terminated match", func(m *models.Match) { require.NoError(t, Forfeit(m, "bob")) }, "alice", 0, ErrIllegalState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMatch()
			tt.prepare(m)
			before := *m

			err := ApplyMove(m, tt.username, tt.column)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, *m)
		})
	}
}

func TestApplyMoveFullColumn(t *testing.T) {
	m := newTestMatch()
	// alternating discs in one column never align four
	play(t, m, 3, 3, 3, 3, 3, 3)
	require.Equal(t, models.IN_PROGRESS, m.Status)
	board := m.Board
	turn := m.PlayerTurn

	for i := 0; i < 2; i++ {
		err := ApplyMove(m, m.PlayerOf(m.PlayerTurn), 3)
		assert.ErrorIs(t, err, ErrInvalidColumn)
	}
	assert.Equal(t, board, m.Board)
	assert.Equal(t, turn, m.PlayerTurn)
}

func TestWinDetection(t *testing.T) {
	tests := []struct {
		name    string
		columns []int
		winner  models.Role
	}{
		// alice: 0,1,2,3 on the bottom row; bob stacks on top
		{"horizontal", []int{0, 0, 1, 1, 2, 2, 3}, models.PLAYER_1},
		{"vertical", []int{0, 1, 0, 1, 0, 1, 0}, models.PLAYER_1},
		{"diagonal up-right", []int{0, 1, 1, 2, 2, 3, 2, 3, 3, 6, 3}, models.PLAYER_1},
		{"diagonal up-left", []int{6, 5, 5, 4, 4, 3, 4, 3, 3, 0, 3}, models.PLAYER_1},
		{"player two wins", []int{6, 0, 6, 1, 5, 2, 6, 3}, models.PLAYER_2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMatch()
			play(t, m, tt.columns...)

			assert.Equal(t, models.NORMALLY_TERMINATED, m.Status)
			assert.Equal(t, tt.winner, m.Winner)
			assert.Equal(t, models.EMPTY, m.PlayerTurn)
			assert.NotNil(t, m.DatetimeEnd)
		})
	}
}

func TestDrawOnFullBoard(t *testing.T) {
	m := newTestMatch()
	m.Board = drawBoard()
	m.Board[5][6] = models.EMPTY
	m.PlayerTurn = models.PLAYER_2

	require.NoError(t, ApplyMove(m, "bob", 6))

	assert.Equal(t, models.NORMALLY_TERMINATED, m.Status)
	assert.Equal(t, models.EMPTY, m.Winner)
	assert.Equal(t, models.EMPTY, m.PlayerTurn)
	assert.NotNil(t, m.DatetimeEnd)
}

// drawBoard is a full grid without four aligned discs of the same role
func drawBoard() models.Board {
	pattern := [6]string{
		"1122112",
		"2211221",
		"1122112",
		"2211221",
		"1122112",
		"2211222",
	}
	var b models.Board
	for row, line := range pattern {
		for col, c := range line {
			if c == '1' {
				b[row][col] = models.PLAYER_1
			} else {
				b[row][col] = models.PLAYER_2
			}
		}
	}
	return b
}

func TestForfeit(t *testing.T) {
	m := newTestMatch()

	assert.ErrorIs(t, Forfeit(m, "carol"), ErrNotAParticipant)

	require.NoError(t, Forfeit(m, "alice"))
	assert.Equal(t, models.FORFAIT, m.Status)
	assert.Equal(t, models.PLAYER_2, m.Winner)
	assert.Equal(t, models.EMPTY, m.PlayerTurn)
	assert.NotNil(t, m.DatetimeEnd)

	assert.ErrorIs(t, Forfeit(m, "bob"), ErrIllegalState)
	assert.Equal(t, models.PLAYER_2, m.Winner)
}

func TestCountMoves(t *testing.T) {
	m := newTestMatch()
	play(t, m, 0, 1, 2)

	alice, err := CountMoves(m, "alice")
	require.NoError(t, err)
	bob, err := CountMoves(m, "bob")
	require.NoError(t, err)
	assert.Equal(t, 2, alice)
	assert.Equal(t, 1, bob)

	_, err = CountMoves(m, "carol")
	assert.ErrorIs(t, err, ErrNotAParticipant)
}
