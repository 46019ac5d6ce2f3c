package models

// Stats aggregates a player's rating and counters. One record per player.
type Stats struct {
	Username         string  `json:"username"`
	Rating           float64 `json:"rating"`
	MatchCount       int     `json:"matchCount"`
	WinCount         int     `json:"winCount"`
	ForfaitWinCount  int     `json:"forfaitWinCount"`
	ForfaitLossCount int     `json:"forfaitLossCount"`
	SecondsPlayed    int64   `json:"secondsPlayed"`
	MoveCount        int     `json:"moveCount"`
}
