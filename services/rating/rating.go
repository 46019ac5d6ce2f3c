// Package rating settles a terminated match into the participants' Stats
// using a classic Elo update.
package rating

import (
	game_constants "Connect4/constants/game"
	"Connect4/models"
	"Connect4/services/game"
	"errors"
	"math"
	"time"
)

var (
	ErrNotTerminated  = errors.New("match is still in progress")
	ErrNotParticipant = errors.New("stats owner did not play the match")
)

var now = time.Now

// ExpectedScore is the probability of self beating opponent under Elo
func ExpectedScore(selfRating, opponentRating float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (opponentRating-selfRating)/game_constants.ELO_SCALE))
}

// Refresh returns self's stats updated with the outcome of match. Both inputs
// are left untouched; opponent only contributes its rating. Callers must apply
// it once per participant, with the pre-match records of both.
func Refresh(self models.Stats, match *models.Match, opponent models.Stats) (models.Stats, error) {
	if !match.IsTerminated() {
		return self, ErrNotTerminated
	}
	role := match.RoleOf(self.Username)
	if role == models.EMPTY {
		return self, ErrNotParticipant
	}

	var actual float64
	switch match.Winner {
	case role:
		actual = 1
	case models.EMPTY:
		actual = 0.5
	default:
		actual = 0
	}

	updated := self
	expected := ExpectedScore(self.Rating, opponent.Rating)
	updated.Rating += game_constants.ELO_K_FACTOR * (actual - expected)

	updated.MatchCount++
	if match.Winner == role {
		updated.WinCount++
		if match.Status == models.FORFAIT {
			updated.ForfaitWinCount++
		}
	} else if match.Winner != models.EMPTY && match.Status == models.FORFAIT {
		updated.ForfaitLossCount++
	}

	end := now()
	if match.DatetimeEnd != nil {
		end = *match.DatetimeEnd
	}
	updated.SecondsPlayed += int64(end.Sub(match.DatetimeBegin).Seconds())

	moves, err := game.CountMoves(match, self.Username)
	if err != nil {
		return self, err
	}
	updated.MoveCount += moves

	return updated, nil
}

// RefreshBoth settles a match for both participants from their pre-match records
func RefreshBoth(match *models.Match, stats1, stats2 models.Stats) (models.Stats, models.Stats, error) {
	updated1, err := Refresh(stats1, match, stats2)
	if err != nil {
		return stats1, stats2, err
	}
	updated2, err := Refresh(stats2, match, stats1)
	if err != nil {
		return stats1, stats2, err
	}
	return updated1, updated2, nil
}
