// Package sync keeps the Redis presence mirror in step with the in-process
// session registry.
package sync

import (
	"Connect4/logger"
	"Connect4/models"
	"Connect4/services/session"
	"context"
	"errors"
	"fmt"
)

// PresenceStore is where presence is mirrored
type PresenceStore interface {
	SetPresence(ctx context.Context, username string, status models.PresenceStatus) error
	ClearPresence(ctx context.Context, username string) error
}

type SyncManager struct {
	presence PresenceStore
	registry *session.Registry
}

// NewSyncManager creates a new instance of the synchronization manager
func NewSyncManager(presence PresenceStore, registry *session.Registry) *SyncManager {
	return &SyncManager{
		presence: presence,
		registry: registry,
	}
}

// SyncPresence rewrites the presence entry of every online user, which also
// refreshes its TTL. It returns how many users were written.
func (sm *SyncManager) SyncPresence(ctx context.Context) (int, error) {
	var errs []error
	written := 0
	for _, username := range sm.registry.OnlineUsers() {
		status := models.PresenceOnline
		if sm.registry.IsInGame(username) {
			status = models.PresencePlaying
		}
		if err := sm.presence.SetPresence(ctx, username, status); err != nil {
			errs = append(errs, fmt.Errorf("error syncing presence of %s: %w", username, err))
			continue
		}
		// The user may have gone offline since the list was taken
		if !sm.registry.IsOnline(username) {
			if err := sm.presence.ClearPresence(ctx, username); err != nil {
				errs = append(errs, fmt.Errorf("error clearing presence of %s: %w", username, err))
			}
			continue
		}
		written++
	}
	if len(errs) > 0 {
		logger.Warnf("[SYNC] %d presence entries failed to sync", len(errs))
	}
	return written, errors.Join(errs...)
}
