package application

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/principals/domain"
	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/principals/ports"
)

// ErrInactive signals a principal that exists but has been deactivated.
var ErrInactive = errors.New("principal is inactive")

// Service exposes principal use cases. There is deliberately no caching
// layer here: callers rely on Resolve reflecting the current record.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Register(ctx context.Context, principal *domain.Principal) (*domain.Principal, error) {
	if principal == nil {
		return nil, errors.New("principal is nil")
	}
	if err := principal.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Save(ctx, principal)
}

// Resolve loads the persisted principal record. Inactive principals
// resolve to ErrInactive so callers can refuse them uniformly.
func (s *Service) Resolve(ctx context.Context, id uuid.UUID) (*domain.Principal, error) {
	principal, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !principal.Active {
		return nil, ErrInactive
	}
	return principal, nil
}

var _ ports.Service = (*Service)(nil)
