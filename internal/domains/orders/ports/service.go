package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/domain"
	"github.com/mariusel9911/Proiect-IC-sub001/internal/shared/pagination"
)

var (
	// ErrServiceNotFound is returned when the referenced catalog service
	// does not exist.
	ErrServiceNotFound = errors.New("catalog service not found")
	// ErrInvalidSelection is returned when the requested option selections
	// are empty or reference options the service does not define.
	ErrInvalidSelection = errors.New("invalid option selection")
)

// Actor is the freshly resolved principal performing an operation. The
// Admin flag is re-read from the persisted principal record per request,
// never cached on a token.
type Actor struct {
	ID    uuid.UUID
	Admin bool
}

// Selection is one requested catalog option. OptionID is kept as the raw
// transport string so the resolver can apply its two-phase match.
type Selection struct {
	OptionID string
	Quantity int
}

// SnapshotResolver validates selections against the live catalog and
// returns priced line items frozen for the new order. Read-only.
type SnapshotResolver interface {
	Resolve(ctx context.Context, serviceID uuid.UUID, selections []Selection) ([]domain.LineItem, error)
}

// CreateOrderInput carries everything needed to place an order. The owner
// is always the acting principal.
type CreateOrderInput struct {
	ServiceID uuid.UUID
	Selection []Selection
	Pricing   domain.Pricing
	Schedule  domain.Schedule
	Method    domain.PaymentMethod
}

// ListOrdersInput filters and pages a listing. Non-admin actors only ever
// see their own orders regardless of the filter.
type ListOrdersInput struct {
	Status string
	Page   int
	Limit  int
}

// OrderPage is one page of a listing plus pagination metadata.
type OrderPage struct {
	Orders     []*domain.Order
	Pagination pagination.Page
}

// PaymentUpdateInput carries an explicit payment-status change with an
// optional details patch.
type PaymentUpdateInput struct {
	Status  string
	Details *domain.PaymentDetails
}

// Service exposes the order lifecycle use cases to adapters.
type Service interface {
	CreateOrder(ctx context.Context, actor Actor, input CreateOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, actor Actor, id uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context, actor Actor, input ListOrdersInput) (*OrderPage, error)
	SetStatus(ctx context.Context, actor Actor, id uuid.UUID, status string) (*domain.Order, error)
	Cancel(ctx context.Context, actor Actor, id uuid.UUID) (*domain.Order, error)
	UpdatePayment(ctx context.Context, actor Actor, id uuid.UUID, input PaymentUpdateInput) (*domain.Order, error)
	ApplyGatewayCallback(ctx context.Context, actor Actor, id uuid.UUID, callback domain.GatewayCallback) (*domain.Order, error)
	DeleteOrder(ctx context.Context, actor Actor, id uuid.UUID) error
}
