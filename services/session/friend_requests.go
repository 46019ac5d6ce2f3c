package session

import (
	"Connect4/models"
	"sync"
	"time"
)

// FriendRequests is the ledger of directed friend match requests. At most one
// request exists per ordered (from, to) pair.
type FriendRequests struct {
	mutex    sync.Mutex
	registry *Registry
	requests []models.FriendMatchRequest
	now      func() time.Time
}

func NewFriendRequests(registry *Registry) *FriendRequests {
	return &FriendRequests{registry: registry, now: time.Now}
}

// Add records from->to after checking that both players are online, neither is
// in game and the same request is not already pending.
func (f *FriendRequests) Add(from, to string) error {
	if from == to {
		return ErrSelfRequest
	}
	if err := f.registry.CheckAvailable(from, to); err != nil {
		return err
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.indexOf(from, to) >= 0 {
		return ErrDuplicateRequest
	}
	f.requests = append(f.requests, models.FriendMatchRequest{From: from, To: to, RequestedAt: f.now()})
	return nil
}

// Delete removes from->to and reports whether it existed
func (f *FriendRequests) Delete(from, to string) bool {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	i := f.indexOf(from, to)
	if i < 0 {
		return false
	}
	f.requests = append(f.requests[:i], f.requests[i+1:]...)
	return true
}

// DeleteAllForUser drops every request sent or received by username and
// returns the removed requests.
func (f *FriendRequests) DeleteAllForUser(username string) []models.FriendMatchRequest {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	var removed []models.FriendMatchRequest
	kept := f.requests[:0]
	for _, req := range f.requests {
		if req.From == username || req.To == username {
			removed = append(removed, req)
		} else {
			kept = append(kept, req)
		}
	}
	f.requests = kept
	return removed
}

func (f *FriendRequests) Has(from, to string) bool {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.indexOf(from, to) >= 0
}

// OpponentsOf lists the counterpart of every request involving username, in
// either direction, without duplicates.
func (f *FriendRequests) OpponentsOf(username string) []string {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	seen := make(map[string]struct{})
	var opponents []string
	for _, req := range f.requests {
		var other string
		switch username {
		case req.From:
			other = req.To
		case req.To:
			other = req.From
		default:
			continue
		}
		if _, dup := seen[other]; !dup {
			seen[other] = struct{}{}
			opponents = append(opponents, other)
		}
	}
	return opponents
}

// ForUser returns a copy of the requests sent or received by username
func (f *FriendRequests) ForUser(username string) []models.FriendMatchRequest {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	var requests []models.FriendMatchRequest
	for _, req := range f.requests {
		if req.From == username || req.To == username {
			requests = append(requests, req)
		}
	}
	return requests
}

func (f *FriendRequests) indexOf(from, to string) int {
	for i, req := range f.requests {
		if req.From == from && req.To == to {
			return i
		}
	}
	return -1
}
