package services

import (
	"sync"

	"github.com/ayushgpt/facalloc/internal/app/models"
	"github.com/ayushgpt/facalloc/internal/pkg/apperrors"
)

// RunStore is the in-process registry of completed allocation runs. Runs are
// immutable once stored; the mutex only guards the map itself. Nothing here
// survives a restart.
type RunStore struct {
	mu   sync.RWMutex
	runs map[string]*models.Run
}

// NewRunStore creates an empty run registry.
func NewRunStore() *RunStore {
	return &RunStore{runs: make(map[string]*models.Run)}
}

// Put stores a completed run.
func (rs *RunStore) Put(run *models.Run) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.runs[run.ID] = run
}

// Get returns the run with the given ID or apperrors.ErrRunNotFound.
func (rs *RunStore) Get(id string) (*models.Run, error) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	run, ok := rs.runs[id]
	if !ok {
		return nil, apperrors.ErrRunNotFound
	}
	return run, nil
}

// Delete removes a run from the registry. Deleting an unknown ID returns
// apperrors.ErrRunNotFound.
func (rs *RunStore) Delete(id string) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if _, ok := rs.runs[id]; !ok {
		return apperrors.ErrRunNotFound
	}
	delete(rs.runs, id)
	return nil
}
