package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/domain"
)

var (
	ErrNotFound = errors.New("order not found")
	// ErrConflict signals a lost optimistic-concurrency race: the order was
	// updated by someone else between read and write.
	ErrConflict = errors.New("order was modified concurrently")
)

// ListFilter narrows and pages order listings. Nil fields match everything.
type ListFilter struct {
	Status  *domain.FulfillmentStatus
	OwnerID *uuid.UUID
	Offset  int
	Limit   int
}

// Repository persists order aggregates. Update performs a compare-and-swap
// on Order.Version and returns ErrConflict when the stored version differs.
type Repository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter) ([]*domain.Order, int64, error)
}
