package session

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// assertConsistent checks both indexes agree and no empty set is kept
func assertConsistent(t *testing.T, r *Registry) {
	t.Helper()
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for username, connections := range r.connectionsByUser {
		assert.NotEmpty(t, connections, "empty connection set kept for %s", username)
		for connID := range connections {
			assert.Equal(t, username, r.userByConnection[connID])
		}
	}
	for connID, username := range r.userByConnection {
		_, ok := r.connectionsByUser[username][connID]
		assert.True(t, ok, "reverse entry %s -> %s missing from forward map", connID, username)
	}
}

func TestRegistryConnections(t *testing.T) {
	r := NewRegistry()

	assert.True(t, r.AddConnection("alice", "c1"))
	assert.False(t, r.AddConnection("alice", "c2"))
	assert.False(t, r.AddConnection("alice", "c2"), "re-adding a connection is a no-op")
	assert.True(t, r.AddConnection("bob", "c3"))

	assert.True(t, r.IsOnline("alice"))
	assert.ElementsMatch(t, []string{"c1", "c2"}, r.GetConnections("alice"))
	owner, ok := r.GetOwner("c3")
	assert.True(t, ok)
	assert.Equal(t, "bob", owner)

	username, wentOffline, ok := r.RemoveConnection("c1")
	assert.True(t, ok)
	assert.Equal(t, "alice", username)
	assert.False(t, wentOffline)
	assert.True(t, r.IsOnline("alice"))

	_, wentOffline, _ = r.RemoveConnection("c2")
	assert.True(t, wentOffline)
	assert.False(t, r.IsOnline("alice"))
	assert.Empty(t, r.GetConnections("alice"))

	_, _, ok = r.RemoveConnection("c2")
	assert.False(t, ok, "removing an unknown connection is a no-op")
	assertConsistent(t, r)
}

func TestRegistryAddKnownConnectionUnderOtherUser(t *testing.T) {
	r := NewRegistry()
	r.AddConnection("alice", "c1")

	assert.False(t, r.AddConnection("bob", "c1"))
	assert.False(t, r.IsOnline("bob"))
	owner, _ := r.GetOwner("c1")
	assert.Equal(t, "alice", owner)
}

func TestRegistryRandomSequencesStayConsistent(t *testing.T) {
	r := NewRegistry()
	rng := rand.New(rand.NewPCG(1, 2))
	users := []string{"alice", "bob", "carol"}

	for i := 0; i < 500; i++ {
		connID := fmt.Sprintf("c%d", rng.IntN(10))
		if rng.IntN(2) == 0 {
			r.AddConnection(users[rng.IntN(len(users))], connID)
		} else {
			r.RemoveConnection(connID)
		}
		for _, u := range users {
			assert.Equal(t, len(r.GetConnections(u)) > 0, r.IsOnline(u))
		}
	}
	assertConsistent(t, r)
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			connID := fmt.Sprintf("c%d", i)
			r.AddConnection(fmt.Sprintf("user%d", i%5), connID)
			if i%2 == 0 {
				r.RemoveConnection(connID)
			}
		}(i)
	}
	wg.Wait()

	assertConsistent(t, r)
	assert.Len(t, r.OnlineUsers(), 5)
}

func TestRegistryInGameIsIdempotent(t *testing.T) {
	r := NewRegistry()

	r.MarkInGame("alice")
	r.MarkInGame("alice")
	assert.True(t, r.IsInGame("alice"))
	assert.Len(t, r.inGameUsers, 1)

	r.MarkOffGame("alice")
	assert.False(t, r.IsInGame("alice"))
	r.MarkOffGame("alice")
	assert.False(t, r.IsInGame("alice"))
}
