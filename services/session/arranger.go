package session

import (
	game_constants "Connect4/constants/game"
	"Connect4/models"
	"math"
	"math/rand/v2"
	"time"
)

// Arranger pairs random match requests by rating proximity, with a starvation
// override once a request has waited longer than MaxWaiting.
type Arranger struct {
	RatingTolerance float64
	MaxWaiting      time.Duration
	// coin decides whether the anchor of a pairing plays first
	coin func() bool
}

func NewArranger(ratingTolerance float64, maxWaiting time.Duration) *Arranger {
	return &Arranger{
		RatingTolerance: ratingTolerance,
		MaxWaiting:      maxWaiting,
		coin:            func() bool { return rand.IntN(2) == 0 },
	}
}

func DefaultArranger() *Arranger {
	return NewArranger(game_constants.RATING_TOLERANCE, game_constants.MAX_WAITING_MS*time.Millisecond)
}

// Arrange makes a single pass over queue (ordered by request time) and returns
// the pairings found plus the entries left unpaired, in their original order.
//
// Each unpaired entry i is an anchor and only looks forward, at unpaired j > i,
// for the closest rating (first one wins ties). Earlier entries already had
// their turn as anchors, so looking backward would not find new viable pairs.
// The pair is made if the gap is within RatingTolerance or the anchor has
// waited more than MaxWaiting.
func (a *Arranger) Arrange(queue []models.RandomMatchRequest, now time.Time) ([]models.Pairing, []models.RandomMatchRequest) {
	paired := make([]bool, len(queue))
	var pairings []models.Pairing

	for i := range queue {
		if paired[i] {
			continue
		}

		nearest := -1
		nearestDiff := math.Inf(1)
		for j := i + 1; j < len(queue); j++ {
			if paired[j] {
				continue
			}
			diff := math.Abs(queue[i].Rating - queue[j].Rating)
			if diff < nearestDiff {
				nearest, nearestDiff = j, diff
			}
		}
		if nearest < 0 {
			continue
		}

		starving := now.Sub(queue[i].RequestedAt) > a.MaxWaiting
		if nearestDiff > a.RatingTolerance && !starving {
			continue
		}

		paired[i], paired[nearest] = true, true
		first, second := queue[i].Username, queue[nearest].Username
		if !a.coin() {
			first, second = second, first
		}
		pairings = append(pairings, models.Pairing{Player1: first, Player2: second})
	}

	remaining := make([]models.RandomMatchRequest, 0, len(queue)-2*len(pairings))
	for i, req := range queue {
		if !paired[i] {
			remaining = append(remaining, req)
		}
	}
	return pairings, remaining
}
