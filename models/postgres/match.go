package postgres

import (
	"Connect4/models"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

/*
 * 'Match' is a persisted match. The board is kept as a JSONB grid of roles,
 * row 0 first.
 */
type Match struct {
	ID            string         `gorm:"primaryKey;size:36;not null"`
	Player1       string         `gorm:"size:50;not null;index:idx_matches_player1"`
	Player2       string         `gorm:"size:50;not null;index:idx_matches_player2"`
	Board         datatypes.JSON `gorm:"type:jsonb;not null"`
	Status        string         `gorm:"size:20;not null;index:idx_matches_status"`
	Winner        int            `gorm:"default:0"`
	PlayerTurn    int            `gorm:"default:1"`
	DatetimeBegin time.Time      `gorm:"default:CURRENT_TIMESTAMP"`
	DatetimeEnd   *time.Time

	// Relationships
	User1 User `gorm:"foreignKey:Player1;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	User2 User `gorm:"foreignKey:Player2;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (m *Match) ToModel() (*models.Match, error) {
	match := &models.Match{
		ID:            m.ID,
		Player1:       m.Player1,
		Player2:       m.Player2,
		Status:        models.MatchStatus(m.Status),
		Winner:        models.Role(m.Winner),
		PlayerTurn:    models.Role(m.PlayerTurn),
		DatetimeBegin: m.DatetimeBegin,
		DatetimeEnd:   m.DatetimeEnd,
	}
	if len(m.Board) > 0 {
		if err := json.Unmarshal(m.Board, &match.Board); err != nil {
			return nil, fmt.Errorf("decoding board of match %s: %w", m.ID, err)
		}
	}
	return match, nil
}

func MatchFromModel(m *models.Match) (Match, error) {
	board, err := json.Marshal(m.Board)
	if err != nil {
		return Match{}, fmt.Errorf("encoding board of match %s: %w", m.ID, err)
	}
	return Match{
		ID:            m.ID,
		Player1:       m.Player1,
		Player2:       m.Player2,
		Board:         datatypes.JSON(board),
		Status:        string(m.Status),
		Winner:        int(m.Winner),
		PlayerTurn:    int(m.PlayerTurn),
		DatetimeBegin: m.DatetimeBegin,
		DatetimeEnd:   m.DatetimeEnd,
	}, nil
}
