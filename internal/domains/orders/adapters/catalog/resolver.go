// Package catalog adapts the catalog bounded context to the orders
// SnapshotResolver port, translating types and errors at the boundary.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	catalogapp "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/catalog/application"
	catalogports "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/catalog/ports"
	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/domain"
	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/ports"
)

var _ ports.SnapshotResolver = (*Resolver)(nil)

// Resolver resolves order selections through the catalog service.
type Resolver struct {
	catalog catalogports.Service
}

func NewResolver(catalog catalogports.Service) *Resolver {
	return &Resolver{catalog: catalog}
}

// Resolve validates and prices the selections, returning frozen line items.
func (r *Resolver) Resolve(ctx context.Context, serviceID uuid.UUID, selections []ports.Selection) ([]domain.LineItem, error) {
	request := make([]catalogports.Selection, 0, len(selections))
	for _, selection := range selections {
		request = append(request, catalogports.Selection{OptionID: selection.OptionID, Quantity: selection.Quantity})
	}
	resolved, err := r.catalog.Resolve(ctx, serviceID, request)
	if err != nil {
		return nil, mapCatalogError(err)
	}
	items := make([]domain.LineItem, 0, len(resolved))
	for _, selection := range resolved {
		items = append(items, domain.LineItem{
			OptionID:  selection.OptionID,
			Name:      selection.Name,
			UnitPrice: selection.UnitPrice,
			Quantity:  selection.Quantity,
		})
	}
	return items, nil
}

func mapCatalogError(err error) error {
	switch {
	case errors.Is(err, catalogports.ErrNotFound):
		return ports.ErrServiceNotFound
	case errors.Is(err, catalogapp.ErrEmptySelection), errors.Is(err, catalogapp.ErrUnknownOption):
		return fmt.Errorf("%w: %w", ports.ErrInvalidSelection, err)
	default:
		return err
	}
}
