package application

import (
	"errors"
	"fmt"

	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid order input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyLineItems) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrNegativeAmount) ||
		errors.Is(err, domain.ErrPricingMismatch) ||
		errors.Is(err, domain.ErrInvalidPaymentMethod) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
