package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/principals/domain"
)

var ErrNotFound = errors.New("principal not found")

// Repository persists principal records.
type Repository interface {
	Save(ctx context.Context, principal *domain.Principal) (*domain.Principal, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Principal, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
