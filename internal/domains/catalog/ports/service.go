package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/catalog/domain"
)

// Selection is one requested option with its quantity, as received from
// transport. The option identifier stays raw for the two-phase lookup.
type Selection struct {
	OptionID string
	Quantity int
}

// ResolvedSelection is a validated, priced selection ready to be frozen
// into an order.
type ResolvedSelection struct {
	OptionID  uuid.UUID
	Name      string
	UnitPrice float64
	Quantity  int
}

// Service exposes catalog use cases to adapters.
type Service interface {
	CreateService(ctx context.Context, service *domain.Service) (*domain.Service, error)
	GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	ListServices(ctx context.Context) ([]*domain.Service, error)
	UpdateService(ctx context.Context, id uuid.UUID, updated *domain.Service) (*domain.Service, error)
	DeleteService(ctx context.Context, id uuid.UUID) error
	Resolve(ctx context.Context, serviceID uuid.UUID, selections []Selection) ([]ResolvedSelection, error)
}
