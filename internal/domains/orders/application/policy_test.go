package application

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/domain"
	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/ports"
)

func TestAuthorize(t *testing.T) {
	ownerID := uuid.New()
	order := &domain.Order{ID: uuid.New(), OwnerID: ownerID}
	owner := ports.Actor{ID: ownerID}
	admin := ports.Actor{ID: uuid.New(), Admin: true}
	stranger := ports.Actor{ID: uuid.New()}

	for _, op := range []Operation{OpRead, OpMutate} {
		require.NoError(t, Authorize(owner, order, op))
		require.NoError(t, Authorize(admin, order, op))
		require.ErrorIs(t, Authorize(stranger, order, op), ErrForbidden)
	}

	for _, op := range []Operation{OpDelete, OpListAll} {
		require.NoError(t, Authorize(admin, order, op))
		require.ErrorIs(t, Authorize(owner, order, op), ErrForbidden)
		require.ErrorIs(t, Authorize(stranger, order, op), ErrForbidden)
	}

	// Nil order never panics and never grants non-admins access.
	require.ErrorIs(t, Authorize(owner, nil, OpRead), ErrForbidden)
	require.NoError(t, Authorize(admin, nil, OpRead))
}
