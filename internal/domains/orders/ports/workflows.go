package ports

import (
	"context"

	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/domain"
)

// WorkflowOrchestrator exposes durable workflow operations required by the
// orders bounded context.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, actor Actor, input CreateOrderInput) (*domain.Order, error)
}
