package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	ordersdomain "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/domain"
	ordersports "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/ports"
	orderactivities "github.com/mariusel9911/Proiect-IC-sub001/internal/durable/temporal/activities/orders"
)

// RunOrderPlacementSequence executes the ordered set of activities needed
// to resolve the catalog snapshot and persist an order aggregate.
func RunOrderPlacementSequence(ctx workflow.Context, actor ordersports.Actor, input ordersports.CreateOrderInput) (*ordersdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order placement sequence started", "serviceId", input.ServiceID.String())
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var order ordersdomain.Order
	request := orderactivities.PlaceOrderRequest{Actor: actor, Command: input}
	if err := workflow.ExecuteActivity(ctx, orderactivities.PlaceOrderActivityName, request).Get(ctx, &order); err != nil {
		logger.Error("order placement sequence failed", "serviceId", input.ServiceID.String(), "error", err)
		return nil, err
	}
	logger.Info("order placement sequence completed", "orderId", order.ID.String())
	return &order, nil
}
