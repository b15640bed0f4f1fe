package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/domain"
	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/ports"
	"github.com/mariusel9911/Proiect-IC-sub001/internal/shared/pagination"
)

// Service orchestrates the order lifecycle use cases. Every write path that
// changes payment status goes through the aggregate's transition logic; the
// repository's version check decides races between concurrent writers.
type Service struct {
	repo     ports.Repository
	snapshot ports.SnapshotResolver
	now      func() time.Time
}

// NewService wires the orders service with its dependencies.
func NewService(repo ports.Repository, snapshot ports.SnapshotResolver) *Service {
	return &Service{repo: repo, snapshot: snapshot, now: time.Now}
}

// CreateOrder resolves the catalog selections into a frozen snapshot and
// persists a new order owned by the acting principal.
func (s *Service) CreateOrder(ctx context.Context, actor ports.Actor, input ports.CreateOrderInput) (*domain.Order, error) {
	items, err := s.snapshot.Resolve(ctx, input.ServiceID, input.Selection)
	if err != nil {
		return nil, err
	}
	order, err := domain.NewOrder(actor.ID, input.ServiceID, items, input.Pricing, input.Schedule, input.Method)
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.Create(ctx, order)
}

// GetOrder loads a single order for the owner or an admin.
func (s *Service) GetOrder(ctx context.Context, actor ports.Actor, id uuid.UUID) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actor, order, OpRead); err != nil {
		return nil, err
	}
	return order, nil
}

// ListOrders pages orders. Admins see every order and may filter by status;
// everyone else is scoped to their own orders.
func (s *Service) ListOrders(ctx context.Context, actor ports.Actor, input ports.ListOrdersInput) (*ports.OrderPage, error) {
	page, limit := pagination.Normalize(input.Page, input.Limit)
	filter := ports.ListFilter{Offset: pagination.Offset(page, limit), Limit: limit}
	if input.Status != "" {
		status, err := domain.ParseFulfillmentStatus(input.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
	}
	if err := Authorize(actor, nil, OpListAll); err != nil {
		owner := actor.ID
		filter.OwnerID = &owner
	}
	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.OrderPage{Orders: orders, Pagination: pagination.New(total, page, limit)}, nil
}

// SetStatus applies an explicit, actor-issued fulfillment transition.
func (s *Service) SetStatus(ctx context.Context, actor ports.Actor, id uuid.UUID, status string) (*domain.Order, error) {
	next, err := domain.ParseFulfillmentStatus(status)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, actor, id, func(order *domain.Order) error {
		return order.SetFulfillmentStatus(next)
	})
}

// Cancel moves the order to cancelled when the guard allows it.
func (s *Service) Cancel(ctx context.Context, actor ports.Actor, id uuid.UUID) (*domain.Order, error) {
	return s.mutate(ctx, actor, id, func(order *domain.Order) error {
		return order.Cancel()
	})
}

// UpdatePayment records an explicit payment-status change, merging any
// supplied details, and lets the aggregate derive the fulfillment change.
func (s *Service) UpdatePayment(ctx context.Context, actor ports.Actor, id uuid.UUID, input ports.PaymentUpdateInput) (*domain.Order, error) {
	next, err := domain.ParsePaymentStatus(input.Status)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, actor, id, func(order *domain.Order) error {
		if input.Details != nil {
			order.MergePaymentDetails(*input.Details)
		}
		return order.ApplyPaymentStatus(next)
	})
}

// ApplyGatewayCallback feeds a relayed payment-gateway report through the
// aggregate: normalize, merge details, derive statuses, persist.
func (s *Service) ApplyGatewayCallback(ctx context.Context, actor ports.Actor, id uuid.UUID, callback domain.GatewayCallback) (*domain.Order, error) {
	return s.mutate(ctx, actor, id, func(order *domain.Order) error {
		return order.ApplyGatewayCallback(callback, s.now())
	})
}

// DeleteOrder removes an order. Admin only; owners cancel instead.
func (s *Service) DeleteOrder(ctx context.Context, actor ports.Actor, id uuid.UUID) error {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := Authorize(actor, order, OpDelete); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// mutate runs the load-authorize-transition-persist sequence shared by all
// single-order write paths. Either the whole sequence lands or the stored
// state is untouched.
func (s *Service) mutate(ctx context.Context, actor ports.Actor, id uuid.UUID, fn func(*domain.Order) error) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actor, order, OpMutate); err != nil {
		return nil, err
	}
	if err := fn(order); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Update(ctx, order)
}

var _ ports.Service = (*Service)(nil)
