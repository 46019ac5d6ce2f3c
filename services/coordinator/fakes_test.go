package coordinator

import (
	"Connect4/models"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// memoryStore is an in-memory Store. Loads hand out copies like a real store.
type memoryStore struct {
	mutex      sync.Mutex
	friends    map[string][]string
	matches    map[string]*models.Match
	stats      map[string]models.Stats
	chats      []models.FriendChat
	nextID     int
	createErr  error
	statsSaves int
	// beforeCreate runs at the start of CreateMatch, outside the store lock
	beforeCreate func()
	// afterLoadStats runs after a stats record is read, outside the store lock
	afterLoadStats func(username string)
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		friends: make(map[string][]string),
		matches: make(map[string]*models.Match),
		stats:   make(map[string]models.Stats),
	}
}

func (s *memoryStore) addPlayer(username string, rating float64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.stats[username] = models.Stats{Username: username, Rating: rating}
}

func (s *memoryStore) befriend(a, b string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.friends[a] = append(s.friends[a], b)
	s.friends[b] = append(s.friends[b], a)
}

func (s *memoryStore) LoadPlayer(ctx context.Context, username string) (*models.Player, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.stats[username]; !ok {
		return nil, models.ErrNotFound
	}
	return &models.Player{Username: username}, nil
}

func (s *memoryStore) FriendsOf(ctx context.Context, username string) ([]string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return append([]string(nil), s.friends[username]...), nil
}

func (s *memoryStore) LoadMatch(ctx context.Context, id string) (*models.Match, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	match, ok := s.matches[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *match
	return &copied, nil
}

func (s *memoryStore) SaveMatch(ctx context.Context, match *models.Match) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	stored, ok := s.matches[match.ID]
	if !ok {
		return models.ErrNotFound
	}
	if stored.IsTerminated() {
		return models.ErrConflict
	}
	copied := *match
	s.matches[match.ID] = &copied
	return nil
}

func (s *memoryStore) FindMatches(ctx context.Context, filter models.MatchFilter) ([]*models.Match, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	var found []*models.Match
	for _, match := range s.matches {
		if filter.Username != "" && match.RoleOf(filter.Username) == models.EMPTY {
			continue
		}
		if filter.Status != "" && match.Status != filter.Status {
			continue
		}
		copied := *match
		found = append(found, &copied)
	}
	return found, nil
}

func (s *memoryStore) CreateMatch(ctx context.Context, player1, player2 string) (*models.Match, error) {
	if s.beforeCreate != nil {
		s.beforeCreate()
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.nextID++
	match := models.NewMatch(fmt.Sprintf("m%d", s.nextID), player1, player2, time.Now())
	s.matches[match.ID] = match
	copied := *match
	return &copied, nil
}

func (s *memoryStore) LoadStats(ctx context.Context, username string) (*models.Stats, error) {
	s.mutex.Lock()
	stats, ok := s.stats[username]
	s.mutex.Unlock()
	if !ok {
		return nil, models.ErrNotFound
	}
	if s.afterLoadStats != nil {
		s.afterLoadStats(username)
	}
	return &stats, nil
}

func (s *memoryStore) SaveStatsPair(ctx context.Context, a, b *models.Stats) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.stats[a.Username] = *a
	s.stats[b.Username] = *b
	s.statsSaves++
	return nil
}

func (s *memoryStore) SaveChat(ctx context.Context, chat *models.FriendChat) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.chats = append(s.chats, *chat)
	return nil
}

func (s *memoryStore) matchList() []*models.Match {
	found, _ := s.FindMatches(context.Background(), models.MatchFilter{})
	return found
}

func (s *memoryStore) statsOf(username string) models.Stats {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.stats[username]
}

type emitted struct {
	target  string
	event   string
	payload []interface{}
}

// recordingNotifier records every emit, keyed by connection or group
type recordingNotifier struct {
	mutex  sync.Mutex
	events []emitted
	groups map[string]map[string]struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{groups: make(map[string]map[string]struct{})}
}

func (n *recordingNotifier) Emit(connID string, event string, payload ...interface{}) {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	n.events = append(n.events, emitted{target: connID, event: event, payload: payload})
}

func (n *recordingNotifier) JoinGroup(connID string, group string) {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	if n.groups[group] == nil {
		n.groups[group] = make(map[string]struct{})
	}
	n.groups[group][connID] = struct{}{}
}

func (n *recordingNotifier) LeaveGroup(connID string, group string) {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	delete(n.groups[group], connID)
}

func (n *recordingNotifier) EmitToGroup(group string, event string, payload ...interface{}) {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	n.events = append(n.events, emitted{target: group, event: event, payload: payload})
	for connID := range n.groups[group] {
		n.events = append(n.events, emitted{target: connID, event: event, payload: payload})
	}
}

func (n *recordingNotifier) DisbandGroup(group string) {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	delete(n.groups, group)
}

func (n *recordingNotifier) members(group string) int {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	return len(n.groups[group])
}

// count returns how many times event reached target
func (n *recordingNotifier) count(target, event string) int {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	total := 0
	for _, e := range n.events {
		if e.target == target && e.event == event {
			total++
		}
	}
	return total
}

// payloads returns the first payload of every event sent to target
func (n *recordingNotifier) payloads(target, event string) []interface{} {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	var found []interface{}
	for _, e := range n.events {
		if e.target == target && e.event == event && len(e.payload) > 0 {
			found = append(found, e.payload[0])
		}
	}
	return found
}

func (n *recordingNotifier) reset() {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	n.events = nil
}

type memoryPresence struct {
	mutex  sync.Mutex
	status map[string]models.PresenceStatus
}

func (p *memoryPresence) SetPresence(ctx context.Context, username string, status models.PresenceStatus) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.status[username] = status
	return nil
}

func (p *memoryPresence) ClearPresence(ctx context.Context, username string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	delete(p.status, username)
	return nil
}

func (p *memoryPresence) get(username string) models.PresenceStatus {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.status[username]
}

// busyLocker never grants the lock
type busyLocker struct{}

func (busyLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	return nil, false, nil
}

var errDown = errors.New("database is down")
