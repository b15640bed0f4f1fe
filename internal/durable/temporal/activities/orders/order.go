package orders

import (
	"context"

	"go.temporal.io/sdk/activity"

	ordersdomain "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/domain"
	ordersports "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/ports"
)

// PlaceOrderActivityName is the registered name of the order placement activity.
const PlaceOrderActivityName = "orders.activities.PlaceOrder"

// PlaceOrderRequest is the serializable activity payload.
type PlaceOrderRequest struct {
	Actor   ordersports.Actor
	Command ordersports.CreateOrderInput
}

// Activities bundles order activities around the application service.
type Activities struct {
	service ordersports.Service
}

// NewActivities wires the orders application service into the activity set.
func NewActivities(service ordersports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder resolves the catalog snapshot and persists the order aggregate.
func (a *Activities) PlaceOrder(ctx context.Context, request PlaceOrderRequest) (*ordersdomain.Order, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("place order activity started", "serviceId", request.Command.ServiceID.String())
	order, err := a.service.CreateOrder(ctx, request.Actor, request.Command)
	if err != nil {
		logger.Error("place order activity failed", "serviceId", request.Command.ServiceID.String(), "error", err)
		return nil, err
	}
	logger.Info("place order activity completed", "orderId", order.ID.String())
	return order, nil
}
