package session

import (
	"Connect4/models"
	"sync"
	"time"
)

// RandomRequests is the queue of players waiting for a random opponent, kept
// in request order. At most one entry exists per username.
type RandomRequests struct {
	mutex    sync.Mutex
	registry *Registry
	queue    []models.RandomMatchRequest
	now      func() time.Time
}

func NewRandomRequests(registry *Registry) *RandomRequests {
	return &RandomRequests{registry: registry, now: time.Now}
}

// Add enqueues username with the rating it has right now
func (q *RandomRequests) Add(username string, rating float64) error {
	if err := q.registry.CheckAvailable(username); err != nil {
		return err
	}

	q.mutex.Lock()
	defer q.mutex.Unlock()
	if q.indexOf(username) >= 0 {
		return ErrDuplicateRequest
	}
	q.queue = append(q.queue, models.RandomMatchRequest{
		Username:    username,
		RequestedAt: q.now(),
		Rating:      rating,
	})
	return nil
}

func (q *RandomRequests) Delete(username string) bool {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	i := q.indexOf(username)
	if i < 0 {
		return false
	}
	q.queue = append(q.queue[:i], q.queue[i+1:]...)
	return true
}

func (q *RandomRequests) Has(username string) bool {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return q.indexOf(username) >= 0
}

func (q *RandomRequests) Len() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return len(q.queue)
}

// Snapshot returns a copy of the queue, oldest first
func (q *RandomRequests) Snapshot() []models.RandomMatchRequest {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return append([]models.RandomMatchRequest(nil), q.queue...)
}

// ArrangeAll runs one arranging pass over the queue and removes the paired
// entries from it. Entries left unpaired keep their place for the next pass.
func (q *RandomRequests) ArrangeAll(arranger *Arranger) []models.Pairing {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	pairings, remaining := arranger.Arrange(q.queue, q.now())
	q.queue = remaining
	return pairings
}

func (q *RandomRequests) indexOf(username string) int {
	for i, req := range q.queue {
		if req.Username == username {
			return i
		}
	}
	return -1
}
