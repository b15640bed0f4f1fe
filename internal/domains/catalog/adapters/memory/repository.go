package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/catalog/domain"
	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory catalog persistence adapter.
type Repository struct {
	mu       sync.RWMutex
	services map[uuid.UUID]*domain.Service
}

func NewRepository() *Repository {
	return &Repository{services: map[uuid.UUID]*domain.Service{}}
}

func (r *Repository) Save(_ context.Context, service *domain.Service) (*domain.Service, error) {
	if service == nil {
		return nil, errors.New("service is nil")
	}
	if err := service.Validate(); err != nil {
		return nil, err
	}
	clone := cloneService(service)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[clone.ID] = clone
	return cloneService(clone), nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*domain.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	service, ok := r.services[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneService(service), nil
}

func (r *Repository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.services, id)
	return nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Service, 0, len(r.services))
	for _, service := range r.services {
		list = append(list, cloneService(service))
	}
	return list, nil
}

func cloneService(service *domain.Service) *domain.Service {
	clone := *service
	clone.Options = append([]domain.Option(nil), service.Options...)
	clone.TimeSlots = append([]string(nil), service.TimeSlots...)
	return &clone
}
