package postgres

import "Connect4/models"

/*
 * 'Stats' holds a player's rating and aggregated counters, one row per user.
 */
type Stats struct {
	Username         string  `gorm:"primaryKey;size:50;not null"`
	Rating           float64 `gorm:"default:0"`
	MatchCount       int     `gorm:"default:0"`
	WinCount         int     `gorm:"default:0"`
	ForfaitWinCount  int     `gorm:"default:0"`
	ForfaitLossCount int     `gorm:"default:0"`
	SecondsPlayed    int64   `gorm:"default:0"`
	MoveCount        int     `gorm:"default:0"`
}

func (s *Stats) ToModel() *models.Stats {
	return &models.Stats{
		Username:         s.Username,
		Rating:           s.Rating,
		MatchCount:       s.MatchCount,
		WinCount:         s.WinCount,
		ForfaitWinCount:  s.ForfaitWinCount,
		ForfaitLossCount: s.ForfaitLossCount,
		SecondsPlayed:    s.SecondsPlayed,
		MoveCount:        s.MoveCount,
	}
}

func StatsFromModel(s *models.Stats) Stats {
	return Stats{
		Username:         s.Username,
		Rating:           s.Rating,
		MatchCount:       s.MatchCount,
		WinCount:         s.WinCount,
		ForfaitWinCount:  s.ForfaitWinCount,
		ForfaitLossCount: s.ForfaitLossCount,
		SecondsPlayed:    s.SecondsPlayed,
		MoveCount:        s.MoveCount,
	}
}
