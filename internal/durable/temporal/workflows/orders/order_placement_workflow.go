package orders

import (
	"go.temporal.io/sdk/workflow"

	ordersdomain "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/domain"
	ordersports "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/ports"
	"github.com/mariusel9911/Proiect-IC-sub001/internal/durable/temporal/sequences"
)

const (
	// OrderPlacementWorkflowName is the public identifier for registering the workflow.
	OrderPlacementWorkflowName = "orders.workflows.Placement"
	// OrderPlacementTaskQueue is the queue consumed by the worker processing order workflows.
	OrderPlacementTaskQueue = "ORDER_PLACEMENT"
)

// OrderPlacementWorkflowInput captures the payload required to place an order.
type OrderPlacementWorkflowInput struct {
	Actor   ordersports.Actor
	Command ordersports.CreateOrderInput
	TraceID string
}

// OrderPlacementWorkflow orchestrates the activities needed to resolve the
// catalog snapshot and persist an order aggregate.
func OrderPlacementWorkflow(ctx workflow.Context, input OrderPlacementWorkflowInput) (*ordersdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrderPlacementWorkflow started", withTraceID(input.TraceID, "serviceId", input.Command.ServiceID.String())...)
	order, err := sequences.RunOrderPlacementSequence(ctx, input.Actor, input.Command)
	if err != nil {
		logger.Error("OrderPlacementWorkflow failed", withTraceID(input.TraceID, "serviceId", input.Command.ServiceID.String(), "error", err)...)
		return nil, err
	}
	logger.Info("OrderPlacementWorkflow completed", withTraceID(input.TraceID, "orderId", order.ID.String())...)
	return order, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
