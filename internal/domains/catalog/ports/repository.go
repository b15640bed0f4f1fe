package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/catalog/domain"
)

var ErrNotFound = errors.New("catalog service not found")

// Repository persists catalog services.
type Repository interface {
	Save(ctx context.Context, service *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*domain.Service, error)
}
