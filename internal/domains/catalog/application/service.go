package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/catalog/domain"
	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/catalog/ports"
)

var (
	// ErrEmptySelection signals a resolve request without any selections.
	ErrEmptySelection = errors.New("at least one option selection is required")
	// ErrUnknownOption signals a selection referencing an option the
	// service does not define. The unmatched identifier is attached.
	ErrUnknownOption = errors.New("unknown option")
)

// Service orchestrates catalog use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateService(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	if service == nil {
		return nil, errors.New("service is nil")
	}
	if err := service.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Save(ctx, service)
}

func (s *Service) GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListServices(ctx context.Context) ([]*domain.Service, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdateService(ctx context.Context, id uuid.UUID, updated *domain.Service) (*domain.Service, error) {
	if updated == nil {
		return nil, errors.New("service is nil")
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Save(ctx, updated)
}

func (s *Service) DeleteService(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Resolve validates the requested selections against the service's current
// option set and prices them. Read-only: the catalog is never mutated, and
// the returned items carry copies of name and unit price.
func (s *Service) Resolve(ctx context.Context, serviceID uuid.UUID, selections []ports.Selection) ([]ports.ResolvedSelection, error) {
	if len(selections) == 0 {
		return nil, ErrEmptySelection
	}
	service, err := s.repo.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	resolved := make([]ports.ResolvedSelection, 0, len(selections))
	for _, selection := range selections {
		option, ok := service.FindOption(selection.OptionID)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownOption, selection.OptionID)
		}
		quantity := selection.Quantity
		if quantity < 1 {
			quantity = 1
		}
		resolved = append(resolved, ports.ResolvedSelection{
			OptionID:  option.ID,
			Name:      option.Name,
			UnitPrice: option.Price,
			Quantity:  quantity,
		})
	}
	return resolved, nil
}

var _ ports.Service = (*Service)(nil)
