package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/session"
)

type memorySession struct {
	mu        sync.RWMutex
	snapshots map[string]session.Snapshot
}

// NewMemorySessionRepository keeps snapshots in process memory.
func NewMemorySessionRepository() SessionRepository {
	return &memorySession{
		snapshots: make(map[string]session.Snapshot),
	}
}

func (that *memorySession) CreateOrUpdate(_ context.Context, snapshot session.Snapshot) error {
	snapshot.AvailableIndices = append([]int(nil), snapshot.AvailableIndices...)

	that.mu.Lock()
	defer that.mu.Unlock()

	that.snapshots[snapshot.ID] = snapshot

	return nil
}

func (that *memorySession) GetByID(_ context.Context, id string) (session.Snapshot, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	snapshot, ok := that.snapshots[id]
	if !ok {
		return session.Snapshot{}, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	snapshot.AvailableIndices = append([]int(nil), snapshot.AvailableIndices...)

	return snapshot, nil
}

func (that *memorySession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.snapshots[id]; !ok {
		return fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	delete(that.snapshots, id)

	return nil
}
