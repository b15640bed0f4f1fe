package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/principals/domain"
)

// Service exposes identity resolution to adapters. Resolve must re-read
// the persisted record on every call so that privilege changes take
// effect immediately.
type Service interface {
	Register(ctx context.Context, principal *domain.Principal) (*domain.Principal, error)
	Resolve(ctx context.Context, id uuid.UUID) (*domain.Principal, error)
}
