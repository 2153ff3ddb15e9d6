package repository

import (
	"sync"
	"time"

	"inventory-admin/draft"
)

// DraftRepository keeps in-progress drafts in memory. Drafts are never persisted.
type DraftRepository struct {
	mu     sync.RWMutex
	drafts map[string]*draft.Draft
}

// NewDraftRepository creates an empty DraftRepository
func NewDraftRepository() *DraftRepository {
	return &DraftRepository{drafts: make(map[string]*draft.Draft)}
}

// Ensure DraftRepository implements DraftRepositoryInterface
var _ DraftRepositoryInterface = (*DraftRepository)(nil)

// Save registers a draft
func (r *DraftRepository) Save(d *draft.Draft) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drafts[d.ID] = d
}

// Get returns the draft if it exists and belongs to sessionID
func (r *DraftRepository) Get(id, sessionID string) (*draft.Draft, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.drafts[id]
	if !ok || d.SessionID != sessionID {
		return nil, ErrDraftNotFound
	}
	return d, nil
}

// Delete discards a draft
func (r *DraftRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, id)
}

// DeleteBySession discards every draft owned by sessionID and returns how many were removed
func (r *DraftRepository) DeleteBySession(sessionID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, d := range r.drafts {
		if d.SessionID == sessionID {
			delete(r.drafts, id)
			n++
		}
	}
	return n
}

// PurgeCreatedBefore discards drafts created before cutoff and returns how many were removed
func (r *DraftRepository) PurgeCreatedBefore(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, d := range r.drafts {
		if d.CreatedAt.Before(cutoff) {
			delete(r.drafts, id)
			n++
		}
	}
	return n
}
