package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/principals/domain"
	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/principals/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory principal persistence adapter.
type Repository struct {
	mu         sync.RWMutex
	principals map[uuid.UUID]*domain.Principal
}

func NewRepository() *Repository {
	return &Repository{principals: map[uuid.UUID]*domain.Principal{}}
}

func (r *Repository) Save(_ context.Context, principal *domain.Principal) (*domain.Principal, error) {
	if principal == nil {
		return nil, errors.New("principal is nil")
	}
	if err := principal.Validate(); err != nil {
		return nil, err
	}
	clone := *principal
	r.mu.Lock()
	defer r.mu.Unlock()
	r.principals[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*domain.Principal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	principal, ok := r.principals[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *principal
	return &clone, nil
}

func (r *Repository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.principals[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.principals, id)
	return nil
}
