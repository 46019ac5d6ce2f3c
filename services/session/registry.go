// Package session keeps the transient, process-wide session state: who is
// connected and through which connections, who is in game, and the pending
// friend and random match requests.
package session

import (
	"sync"
)

// Registry maps usernames to their live connections and back, and tracks the
// players currently bound to an in-progress match. A username is online iff it
// owns at least one connection; empty connection sets are never kept.
type Registry struct {
	mutex             sync.RWMutex
	connectionsByUser map[string]map[string]struct{}
	userByConnection  map[string]string
	inGameUsers       map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		connectionsByUser: make(map[string]map[string]struct{}),
		userByConnection:  make(map[string]string),
		inGameUsers:       make(map[string]struct{}),
	}
}

// AddConnection registers connID under username. It reports whether this was
// the user's first connection, i.e. the user just came online. Registering a
// connection that is already known is a no-op.
func (r *Registry) AddConnection(username, connID string) (cameOnline bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, known := r.userByConnection[connID]; known {
		return false
	}
	connections, exists := r.connectionsByUser[username]
	if !exists {
		connections = make(map[string]struct{})
		r.connectionsByUser[username] = connections
	}
	connections[connID] = struct{}{}
	r.userByConnection[connID] = username
	return !exists
}

// RemoveConnection unregisters connID. It returns the owner of the connection
// (ok=false if unknown) and whether the owner has no connections left.
func (r *Registry) RemoveConnection(connID string) (username string, wentOffline bool, ok bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	username, ok = r.userByConnection[connID]
	if !ok {
		return "", false, false
	}
	delete(r.userByConnection, connID)

	connections := r.connectionsByUser[username]
	delete(connections, connID)
	if len(connections) == 0 {
		delete(r.connectionsByUser, username)
		wentOffline = true
	}
	return username, wentOffline, true
}

// GetConnections returns a copy of the user's connection IDs (possibly empty)
func (r *Registry) GetConnections(username string) []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	connections := make([]string, 0, len(r.connectionsByUser[username]))
	for connID := range r.connectionsByUser[username] {
		connections = append(connections, connID)
	}
	return connections
}

func (r *Registry) GetOwner(connID string) (string, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	username, ok := r.userByConnection[connID]
	return username, ok
}

func (r *Registry) IsOnline(username string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.connectionsByUser[username]) > 0
}

// OnlineUsers lists every user with at least one connection
func (r *Registry) OnlineUsers() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	users := make([]string, 0, len(r.connectionsByUser))
	for username := range r.connectionsByUser {
		users = append(users, username)
	}
	return users
}

func (r *Registry) MarkInGame(username string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.inGameUsers[username] = struct{}{}
}

func (r *Registry) MarkOffGame(username string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	delete(r.inGameUsers, username)
}

func (r *Registry) IsInGame(username string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	_, inGame := r.inGameUsers[username]
	return inGame
}

// CheckAvailable fails with ErrNotOnline or ErrAlreadyInGame unless every user
// is online and free to start a match
func (r *Registry) CheckAvailable(usernames ...string) error {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, username := range usernames {
		if len(r.connectionsByUser[username]) == 0 {
			return ErrNotOnline
		}
	}
	for _, username := range usernames {
		if _, inGame := r.inGameUsers[username]; inGame {
			return ErrAlreadyInGame
		}
	}
	return nil
}
