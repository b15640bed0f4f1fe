package application

import (
	"errors"

	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/domain"
	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/ports"
)

// ErrForbidden signals the acting principal may not perform the operation.
var ErrForbidden = errors.New("actor is not allowed to perform this operation")

// Operation classifies order operations for authorization purposes.
type Operation int

const (
	// OpRead covers fetching a single order.
	OpRead Operation = iota
	// OpMutate covers status changes, cancellation, and payment updates.
	OpMutate
	// OpDelete covers removing an order outright. Owners cancel, only
	// admins delete.
	OpDelete
	// OpListAll covers the admin-scoped listing across all owners.
	OpListAll
)

// Authorize decides whether the actor may perform op on the order.
// Ownership is an identity comparison against the immutable OwnerID; the
// admin flag must come from a freshly resolved principal record.
func Authorize(actor ports.Actor, order *domain.Order, op Operation) error {
	switch op {
	case OpRead, OpMutate:
		if actor.Admin || (order != nil && actor.ID == order.OwnerID) {
			return nil
		}
	case OpDelete, OpListAll:
		if actor.Admin {
			return nil
		}
	}
	return ErrForbidden
}
