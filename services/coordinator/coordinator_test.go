package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"Connect4/models"
	"Connect4/services/game"
	"Connect4/services/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	c        *Coordinator
	store    *memoryStore
	notifier *recordingNotifier
	presence *memoryPresence
}

var ctx = context.Background()

// newFixture registers alice (1500), bob (1550) and carol (1000). alice and bob
// are friends.
func newFixture(opts ...Option) *fixture {
	store := newMemoryStore()
	store.addPlayer("alice", 1500)
	store.addPlayer("bob", 1550)
	store.addPlayer("carol", 1000)
	store.befriend("alice", "bob")

	notifier := newRecordingNotifier()
	presence := &memoryPresence{status: make(map[string]models.PresenceStatus)}
	opts = append([]Option{WithPresence(presence)}, opts...)
	return &fixture{
		c:        New(store, notifier, opts...),
		store:    store,
		notifier: notifier,
		presence: presence,
	}
}

// startMatch connects alice and bob and has them agree on a friend match
func (f *fixture) startMatch(t *testing.T) *models.Match {
	t.Helper()
	f.c.Connect(ctx, "alice", "a1")
	f.c.Connect(ctx, "bob", "b1")
	require.NoError(t, f.c.SendFriendMatchRequest(ctx, "alice", "bob"))
	require.NoError(t, f.c.SendFriendMatchRequest(ctx, "bob", "alice"))

	matches := f.store.matchList()
	require.Len(t, matches, 1)
	return matches[0]
}

func TestConnectNotifiesOnlineFriendsOnce(t *testing.T) {
	f := newFixture()
	f.c.Connect(ctx, "bob", "b1")
	f.c.Connect(ctx, "alice", "a1")
	f.c.Connect(ctx, "alice", "a2")

	assert.Equal(t, 1, f.notifier.count("b1", EventFriendOnline))
	assert.Equal(t, models.PresenceOnline, f.presence.get("alice"))

	f.c.Disconnect(ctx, "a1")
	assert.Equal(t, 0, f.notifier.count("b1", EventFriendOffline))
	assert.True(t, f.c.Registry().IsOnline("alice"))

	f.c.Disconnect(ctx, "a2")
	assert.Equal(t, 1, f.notifier.count("b1", EventFriendOffline))
	assert.False(t, f.c.Registry().IsOnline("alice"))
	assert.Empty(t, f.presence.get("alice"))
}

func TestConnectReplaysPendingRequests(t *testing.T) {
	f := newFixture()
	f.c.Connect(ctx, "alice", "a1")
	f.c.Connect(ctx, "bob", "b1")
	require.NoError(t, f.c.SendFriendMatchRequest(ctx, "alice", "bob"))

	f.c.Connect(ctx, "bob", "b2")
	assert.Equal(t, 1, f.notifier.count("b2", EventFriendMatchRequest))
}

func TestDisconnectUnknownConnection(t *testing.T) {
	f := newFixture()
	f.c.Disconnect(ctx, "nope")
	assert.Empty(t, f.notifier.events)
}

func TestFriendMatchRequestNotifiesBoth(t *testing.T) {
	f := newFixture()
	f.c.Connect(ctx, "alice", "a1")
	f.c.Connect(ctx, "bob", "b1")

	require.NoError(t, f.c.SendFriendMatchRequest(ctx, "alice", "bob"))

	assert.Equal(t, 1, f.notifier.count("a1", EventFriendMatchRequest))
	assert.Equal(t, 1, f.notifier.count("b1", EventFriendMatchRequest))
	assert.Empty(t, f.store.matchList())

	err := f.c.SendFriendMatchRequest(ctx, "alice", "bob")
	assert.ErrorIs(t, err, session.ErrDuplicateRequest)
	assert.Equal(t, KindPrecondition, KindOf(err))
}

func TestFriendMatchRequestRejections(t *testing.T) {
	f := newFixture()
	f.c.Connect(ctx, "alice", "a1")
	f.c.Connect(ctx, "carol", "c1")

	err := f.c.SendFriendMatchRequest(ctx, "alice", "alice")
	assert.ErrorIs(t, err, session.ErrSelfRequest)
	assert.Equal(t, KindValidation, KindOf(err))

	err = f.c.SendFriendMatchRequest(ctx, "alice", "dave")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
	assert.Equal(t, KindNotFound, KindOf(err))

	err = f.c.SendFriendMatchRequest(ctx, "alice", "carol")
	assert.ErrorIs(t, err, ErrNotFriends)
	assert.Equal(t, KindValidation, KindOf(err))

	// bob is a friend but offline
	err = f.c.SendFriendMatchRequest(ctx, "alice", "bob")
	assert.ErrorIs(t, err, session.ErrNotOnline)
	assert.Equal(t, KindPrecondition, KindOf(err))
}

func TestMutualFriendRequestsCreateOneMatch(t *testing.T) {
	f := newFixture()
	match := f.startMatch(t)

	assert.Equal(t, "alice", match.Player1)
	assert.Equal(t, "bob", match.Player2)
	assert.Equal(t, models.IN_PROGRESS, match.Status)
	assert.Equal(t, models.PLAYER_1, match.PlayerTurn)

	assert.False(t, f.c.friendRequests.Has("alice", "bob"))
	assert.False(t, f.c.friendRequests.Has("bob", "alice"))
	assert.True(t, f.c.Registry().IsInGame("alice"))
	assert.True(t, f.c.Registry().IsInGame("bob"))

	assert.Equal(t, 1, f.notifier.count("a1", EventNewMatch))
	assert.Equal(t, 1, f.notifier.count("b1", EventNewMatch))
	assert.Equal(t, 1, f.notifier.count("a1", EventFriendIngame))
	assert.Equal(t, 1, f.notifier.count("b1", EventFriendIngame))
	assert.Equal(t, models.PresencePlaying, f.presence.get("alice"))

	err := f.c.SendFriendMatchRequest(ctx, "alice", "bob")
	assert.ErrorIs(t, err, session.ErrAlreadyInGame)
}

func TestConcurrentMutualRequestsCreateOneMatch(t *testing.T) {
	for i := 0; i < 50; i++ {
		f := newFixture()
		f.c.Connect(ctx, "alice", "a1")
		f.c.Connect(ctx, "bob", "b1")

		var wg sync.WaitGroup
		errs := make([]error, 2)
		wg.Add(2)
		go func() {
			defer wg.Done()
			errs[0] = f.c.SendFriendMatchRequest(ctx, "alice", "bob")
		}()
		go func() {
			defer wg.Done()
			errs[1] = f.c.SendFriendMatchRequest(ctx, "bob", "alice")
		}()
		wg.Wait()

		require.NoError(t, errs[0])
		require.NoError(t, errs[1])
		require.Len(t, f.store.matchList(), 1, "iteration %d", i)
	}
}

func TestCancelFriendMatchRequest(t *testing.T) {
	f := newFixture()
	f.c.Connect(ctx, "alice", "a1")
	f.c.Connect(ctx, "bob", "b1")
	require.NoError(t, f.c.SendFriendMatchRequest(ctx, "alice", "bob"))

	// Either side may cancel
	assert.True(t, f.c.CancelFriendMatchRequest(ctx, "bob", "alice"))
	assert.False(t, f.c.friendRequests.Has("alice", "bob"))
	assert.Equal(t, 1, f.notifier.count("a1", EventDeleteFriendMatchRequest))
	assert.Equal(t, 1, f.notifier.count("b1", EventDeleteFriendMatchRequest))
	// The event names the request that was removed, not the canceller
	assert.Equal(t, []interface{}{RequestPayload{Sender: "alice", Receiver: "bob"}},
		f.notifier.payloads("b1", EventDeleteFriendMatchRequest))

	assert.False(t, f.c.CancelFriendMatchRequest(ctx, "bob", "alice"))
	assert.Equal(t, 1, f.notifier.count("a1", EventDeleteFriendMatchRequest))
}

func TestOverlappingSettlementsKeepBothResults(t *testing.T) {
	f := newFixture()
	f.store.befriend("bob", "carol")
	match := f.startMatch(t)
	f.c.Connect(ctx, "carol", "c1")

	var fired atomic.Bool
	var wg sync.WaitGroup
	created := make(chan struct{})

	// While the first match's stats are being settled, bob starts and
	// forfeits a second match against carol.
	f.store.afterLoadStats = func(username string) {
		if username != "bob" || !fired.CompareAndSwap(false, true) {
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, f.c.SendFriendMatchRequest(ctx, "bob", "carol"))
			assert.NoError(t, f.c.SendFriendMatchRequest(ctx, "carol", "bob"))
			found, err := f.store.FindMatches(ctx, models.MatchFilter{Username: "carol", Status: models.IN_PROGRESS})
			close(created)
			if assert.NoError(t, err) && assert.Len(t, found, 1) {
				assert.NoError(t, f.c.Forfeit(ctx, found[0].ID, "bob"))
			}
		}()
		<-created
		time.Sleep(50 * time.Millisecond)
	}

	require.NoError(t, f.c.Forfeit(ctx, match.ID, "alice"))
	wg.Wait()

	bob := f.store.statsOf("bob")
	assert.Equal(t, 2, bob.MatchCount)
	assert.Equal(t, 1, bob.WinCount)
	assert.Equal(t, 1, bob.ForfaitWinCount)
	assert.Equal(t, 1, bob.ForfaitLossCount)
	assert.Equal(t, 1, f.store.statsOf("alice").MatchCount)
	assert.Equal(t, 1, f.store.statsOf("carol").MatchCount)
	assert.Equal(t, 2, f.store.statsSaves)
}

func TestDisconnectPurgesFriendRequests(t *testing.T) {
	f := newFixture()
	f.c.Connect(ctx, "alice", "a1")
	f.c.Connect(ctx, "bob", "b1")
	require.NoError(t, f.c.SendFriendMatchRequest(ctx, "alice", "bob"))

	f.c.Disconnect(ctx, "a1")

	assert.False(t, f.c.friendRequests.Has("alice", "bob"))
	assert.Equal(t, 1, f.notifier.count("b1", EventDeleteFriendMatchRequest))
}

func TestDisconnectForfeitsMatch(t *testing.T) {
	f := newFixture()
	match := f.startMatch(t)
	f.notifier.reset()

	f.c.Disconnect(ctx, "a1")

	stored, err := f.store.LoadMatch(ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FORFAIT, stored.Status)
	assert.Equal(t, models.PLAYER_2, stored.Winner)
	assert.Equal(t, models.EMPTY, stored.PlayerTurn)
	assert.NotNil(t, stored.DatetimeEnd)

	assert.Equal(t, 1, f.notifier.count("b1", EventMatch))
	assert.Equal(t, 1, f.notifier.count("b1", EventFriendOffline))
	assert.Equal(t, 1, f.notifier.count("b1", EventFriendOffgame))
	assert.False(t, f.c.Registry().IsInGame("alice"))
	assert.False(t, f.c.Registry().IsInGame("bob"))
	assert.Equal(t, models.PresenceOnline, f.presence.get("bob"))
	assert.Empty(t, f.presence.get("alice"))

	assert.Equal(t, 1, f.store.statsSaves)
	alice, bob := f.store.statsOf("alice"), f.store.statsOf("bob")
	assert.Equal(t, 1, alice.MatchCount)
	assert.Equal(t, 1, alice.ForfaitLossCount)
	assert.Equal(t, 1, bob.WinCount)
	assert.Equal(t, 1, bob.ForfaitWinCount)
	assert.Greater(t, bob.Rating, 1550.0)
	assert.Less(t, alice.Rating, 1500.0)
}

func TestDisconnectDuringMatchCreationForfeits(t *testing.T) {
	f := newFixture()
	f.c.Connect(ctx, "alice", "a1")
	f.c.Connect(ctx, "bob", "b1")
	require.NoError(t, f.c.SendFriendMatchRequest(ctx, "alice", "bob"))

	f.store.beforeCreate = func() { f.c.Disconnect(ctx, "a1") }
	require.NoError(t, f.c.SendFriendMatchRequest(ctx, "bob", "alice"))

	matches := f.store.matchList()
	require.Len(t, matches, 1)
	assert.Equal(t, models.FORFAIT, matches[0].Status)
	assert.Equal(t, models.PLAYER_2, matches[0].Winner)
	assert.False(t, f.c.Registry().IsInGame("alice"))
	assert.False(t, f.c.Registry().IsInGame("bob"))
	assert.Equal(t, 1, f.store.statsSaves)
}

func TestMatchCreationFailureRollsBack(t *testing.T) {
	f := newFixture()
	f.c.Connect(ctx, "alice", "a1")
	f.c.Connect(ctx, "bob", "b1")
	require.NoError(t, f.c.SendFriendMatchRequest(ctx, "alice", "bob"))

	f.store.createErr = errDown
	err := f.c.SendFriendMatchRequest(ctx, "bob", "alice")
	assert.ErrorIs(t, err, ErrStorage)
	assert.Equal(t, KindStorage, KindOf(err))

	assert.False(t, f.c.Registry().IsInGame("alice"))
	assert.False(t, f.c.Registry().IsInGame("bob"))
	assert.Equal(t, 1, f.notifier.count("a1", EventDeleteFriendMatchRequest))

	// Players are free again once the store recovers
	f.store.createErr = nil
	require.NoError(t, f.c.SendFriendMatchRequest(ctx, "alice", "bob"))
	require.NoError(t, f.c.SendFriendMatchRequest(ctx, "bob", "alice"))
	assert.Len(t, f.store.matchList(), 1)
}

func TestApplyMoveErrors(t *testing.T) {
	f := newFixture()
	match := f.startMatch(t)

	err := f.c.ApplyMove(ctx, match.ID, "bob", 0)
	assert.ErrorIs(t, err, game.ErrInvalidTurn)
	assert.Equal(t, KindPrecondition, KindOf(err))

	err = f.c.ApplyMove(ctx, match.ID, "alice", 9)
	assert.ErrorIs(t, err, game.ErrInvalidColumn)
	assert.Equal(t, KindValidation, KindOf(err))

	err = f.c.ApplyMove(ctx, "missing", "alice", 0)
	assert.ErrorIs(t, err, ErrMatchNotFound)
	assert.Equal(t, KindNotFound, KindOf(err))

	stored, err := f.store.LoadMatch(ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Board{}, stored.Board)
}

func TestApplyMoveUntilWin(t *testing.T) {
	f := newFixture()
	match := f.startMatch(t)
	f.notifier.reset()

	moves := []struct {
		player string
		column int
	}{
		{"alice", 0}, {"bob", 1}, {"alice", 0}, {"bob", 1}, {"alice", 0}, {"bob", 1}, {"alice", 0},
	}
	for _, m := range moves {
		require.NoError(t, f.c.ApplyMove(ctx, match.ID, m.player, m.column))
	}

	stored, err := f.store.LoadMatch(ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, models.NORMALLY_TERMINATED, stored.Status)
	assert.Equal(t, models.PLAYER_1, stored.Winner)

	assert.Equal(t, len(moves), f.notifier.count("a1", EventMatch))
	assert.Equal(t, len(moves), f.notifier.count("b1", EventMatch))
	assert.False(t, f.c.Registry().IsInGame("alice"))
	assert.False(t, f.c.Registry().IsInGame("bob"))
	assert.Equal(t, 1, f.store.statsSaves)
	assert.Equal(t, 4, f.store.statsOf("alice").MoveCount)
	assert.Equal(t, 3, f.store.statsOf("bob").MoveCount)

	err = f.c.Forfeit(ctx, match.ID, "bob")
	assert.ErrorIs(t, err, game.ErrIllegalState)
	assert.Equal(t, 1, f.store.statsSaves)
}

func TestForfeitByOutsider(t *testing.T) {
	f := newFixture()
	match := f.startMatch(t)

	err := f.c.Forfeit(ctx, match.ID, "carol")
	assert.ErrorIs(t, err, game.ErrNotAParticipant)
	assert.Equal(t, KindPrecondition, KindOf(err))
}

func TestObservers(t *testing.T) {
	f := newFixture()
	match := f.startMatch(t)
	f.c.Connect(ctx, "carol", "c1")
	group := observersRoom(match.ID)

	require.NoError(t, f.c.JoinObservers(ctx, match.ID, "carol"))
	assert.Equal(t, 1, f.notifier.members(group))

	assert.ErrorIs(t, f.c.JoinObservers(ctx, match.ID, "alice"), session.ErrAlreadyInGame)
	assert.ErrorIs(t, f.c.JoinObservers(ctx, "missing", "carol"), ErrMatchNotFound)

	require.NoError(t, f.c.ApplyMove(ctx, match.ID, "alice", 3))
	assert.Equal(t, 1, f.notifier.count("c1", EventMatch))

	require.NoError(t, f.c.Forfeit(ctx, match.ID, "bob"))
	assert.Equal(t, 2, f.notifier.count("c1", EventMatch))
	assert.Equal(t, 0, f.notifier.members(group))
}

func TestLeaveObservers(t *testing.T) {
	f := newFixture()
	match := f.startMatch(t)
	f.c.Connect(ctx, "carol", "c1")
	group := observersRoom(match.ID)

	require.NoError(t, f.c.JoinObservers(ctx, match.ID, "carol"))
	require.NoError(t, f.c.LeaveObservers(ctx, match.ID, "carol"))
	assert.Equal(t, 0, f.notifier.members(group))
}

func TestRandomMatchWithinTolerance(t *testing.T) {
	f := newFixture()
	f.c.Connect(ctx, "alice", "a1")
	f.c.Connect(ctx, "bob", "b1")

	require.NoError(t, f.c.SendRandomMatchRequest(ctx, "alice"))
	require.NoError(t, f.c.SendRandomMatchRequest(ctx, "bob"))
	assert.Equal(t, 1, f.notifier.count("a1", EventRandomMatchRequest))

	err := f.c.SendRandomMatchRequest(ctx, "alice")
	assert.ErrorIs(t, err, session.ErrDuplicateRequest)

	assert.Equal(t, 1, f.c.ArrangeRandomMatches(ctx))

	matches := f.store.matchList()
	require.Len(t, matches, 1)
	assert.ElementsMatch(t, []string{"alice", "bob"}, []string{matches[0].Player1, matches[0].Player2})
	assert.Equal(t, 0, f.c.randomRequests.Len())
	assert.True(t, f.c.Registry().IsInGame("alice"))
	assert.True(t, f.c.Registry().IsInGame("bob"))
	assert.Equal(t, 1, f.notifier.count("b1", EventNewMatch))

	err = f.c.SendRandomMatchRequest(ctx, "alice")
	assert.ErrorIs(t, err, session.ErrAlreadyInGame)
}

func TestRandomMatchOutsideTolerance(t *testing.T) {
	f := newFixture()
	f.c.Connect(ctx, "alice", "a1")
	f.c.Connect(ctx, "carol", "c1")
	require.NoError(t, f.c.SendRandomMatchRequest(ctx, "alice"))
	require.NoError(t, f.c.SendRandomMatchRequest(ctx, "carol"))

	assert.Equal(t, 0, f.c.ArrangeRandomMatches(ctx))
	assert.Equal(t, 2, f.c.randomRequests.Len())
	assert.Empty(t, f.store.matchList())
}

func TestRandomMatchStarvationOverride(t *testing.T) {
	f := newFixture(WithArranger(session.NewArranger(100, -time.Millisecond)))
	f.c.Connect(ctx, "alice", "a1")
	f.c.Connect(ctx, "carol", "c1")
	require.NoError(t, f.c.SendRandomMatchRequest(ctx, "alice"))
	require.NoError(t, f.c.SendRandomMatchRequest(ctx, "carol"))

	assert.Equal(t, 1, f.c.ArrangeRandomMatches(ctx))
	assert.Len(t, f.store.matchList(), 1)
}

func TestRandomMatchRequestRejections(t *testing.T) {
	f := newFixture()
	f.c.Connect(ctx, "dave", "d1")

	err := f.c.SendRandomMatchRequest(ctx, "dave")
	assert.ErrorIs(t, err, ErrStatsMissing)
	assert.Equal(t, KindNotFound, KindOf(err))

	err = f.c.SendRandomMatchRequest(ctx, "alice")
	assert.ErrorIs(t, err, session.ErrNotOnline)
}

func TestCancelRandomMatchRequest(t *testing.T) {
	f := newFixture()
	f.c.Connect(ctx, "alice", "a1")
	require.NoError(t, f.c.SendRandomMatchRequest(ctx, "alice"))

	assert.True(t, f.c.CancelRandomMatchRequest(ctx, "alice"))
	assert.False(t, f.c.CancelRandomMatchRequest(ctx, "alice"))
	assert.Equal(t, 2, f.notifier.count("a1", EventCancelRandomMatchRequest))
	assert.Equal(t, 0, f.c.randomRequests.Len())
}

func TestDisconnectPurgesRandomRequest(t *testing.T) {
	f := newFixture()
	f.c.Connect(ctx, "alice", "a1")
	require.NoError(t, f.c.SendRandomMatchRequest(ctx, "alice"))

	f.c.Disconnect(ctx, "a1")
	assert.False(t, f.c.randomRequests.Has("alice"))
}

func TestArrangeSkipsWhenLockHeldElsewhere(t *testing.T) {
	f := newFixture(WithLocker(busyLocker{}, time.Second))
	f.c.Connect(ctx, "alice", "a1")
	f.c.Connect(ctx, "bob", "b1")
	require.NoError(t, f.c.SendRandomMatchRequest(ctx, "alice"))
	require.NoError(t, f.c.SendRandomMatchRequest(ctx, "bob"))

	assert.Equal(t, 0, f.c.ArrangeRandomMatches(ctx))
	assert.Equal(t, 2, f.c.randomRequests.Len())
}

func TestFriendMatchPurgesRandomRequests(t *testing.T) {
	f := newFixture()
	f.c.Connect(ctx, "alice", "a1")
	f.c.Connect(ctx, "bob", "b1")
	require.NoError(t, f.c.SendRandomMatchRequest(ctx, "alice"))

	require.NoError(t, f.c.SendFriendMatchRequest(ctx, "alice", "bob"))
	require.NoError(t, f.c.SendFriendMatchRequest(ctx, "bob", "alice"))

	assert.False(t, f.c.randomRequests.Has("alice"))
}

func TestFriendChat(t *testing.T) {
	f := newFixture()
	f.c.Connect(ctx, "alice", "a1")
	f.c.Connect(ctx, "bob", "b1")

	require.NoError(t, f.c.FriendChat(ctx, "alice", "bob", "good game"))
	assert.Len(t, f.store.chats, 1)
	assert.Equal(t, 1, f.notifier.count("a1", EventFriendChat))
	assert.Equal(t, 1, f.notifier.count("b1", EventFriendChat))

	assert.ErrorIs(t, f.c.FriendChat(ctx, "alice", "bob", "  "), ErrEmptyMessage)
	assert.ErrorIs(t, f.c.FriendChat(ctx, "alice", "carol", "hi"), ErrNotFriends)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		kind Kind
	}{
		{fmt.Errorf("%w: column 9", game.ErrInvalidColumn), KindValidation},
		{session.ErrSelfRequest, KindValidation},
		{session.ErrNotOnline, KindPrecondition},
		{game.ErrIllegalState, KindPrecondition},
		{models.ErrConflict, KindPrecondition},
		{fmt.Errorf("%w: m1", ErrMatchNotFound), KindNotFound},
		{ErrStatsMissing, KindNotFound},
		{storageError(errDown), KindStorage},
		{errors.New("anything else"), KindStorage},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
		})
	}
}
