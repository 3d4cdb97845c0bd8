package authflowrepo

import (
	"sync"
	"time"

	"github.com/JTonyC/servicenow-entraid-approvals/internal/errors"
)

// InMemoryRepo is a thread-safe in-memory implementation of the Repo interface
type InMemoryRepo struct {
	mu      sync.RWMutex
	states  map[string]*FlowState
	timeout time.Duration
	now     func() time.Time
}

// NewInMemoryRepo creates a new in-memory auth flow state repository. States
// older than timeout are treated as absent; a zero timeout disables expiry.
func NewInMemoryRepo(timeout time.Duration) *InMemoryRepo {
	return &InMemoryRepo{
		states:  make(map[string]*FlowState),
		timeout: timeout,
		now:     time.Now,
	}
}

// Upsert stores or updates an auth flow state
func (r *InMemoryRepo) Upsert(state string, flowState *FlowState) error {
	if state == "" {
		return errors.Wrapf(errors.ErrInvalidState, "upsert with empty state")
	}
	if flowState == nil {
		return errors.Wrapf(errors.ErrInvalidState, "upsert with nil flow state")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Store a copy to prevent external modification
	copied := *flowState
	r.states[state] = &copied
	return nil
}

// Get retrieves an auth flow state by state parameter
func (r *InMemoryRepo) Get(state string) (*FlowState, error) {
	if state == "" {
		return nil, errors.ErrStateNotFound
	}

	r.mu.RLock()
	flowState, exists := r.states[state]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.ErrStateNotFound
	}

	if r.timeout > 0 && r.now().Sub(flowState.CreatedAt) > r.timeout {
		r.mu.Lock()
		delete(r.states, state)
		r.mu.Unlock()
		return nil, errors.ErrStateExpired
	}

	copied := *flowState
	return &copied, nil
}

// Delete removes an auth flow state
func (r *InMemoryRepo) Delete(state string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.states, state)
	return nil
}
