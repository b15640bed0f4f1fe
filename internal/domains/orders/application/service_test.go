package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/domain"
	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/ports"
)

type fakeOrderRepo struct {
	orders map[uuid.UUID]*domain.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[uuid.UUID]*domain.Order{}}
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	clone := *order
	clone.Version = 1
	f.orders[order.ID] = &clone
	out := clone
	return &out, nil
}

func (f *fakeOrderRepo) Update(_ context.Context, order *domain.Order) (*domain.Order, error) {
	stored, ok := f.orders[order.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if stored.Version != order.Version {
		return nil, ports.ErrConflict
	}
	clone := *order
	clone.Version++
	f.orders[order.ID] = &clone
	out := clone
	return &out, nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	if o, ok := f.orders[id]; ok {
		clone := *o
		return &clone, nil
	}
	return nil, ports.ErrNotFound
}

func (f *fakeOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.orders[id]; !ok {
		return ports.ErrNotFound
	}
	delete(f.orders, id)
	return nil
}

func (f *fakeOrderRepo) List(_ context.Context, filter ports.ListFilter) ([]*domain.Order, int64, error) {
	var list []*domain.Order
	for _, o := range f.orders {
		if filter.OwnerID != nil && o.OwnerID != *filter.OwnerID {
			continue
		}
		if filter.Status != nil && o.Fulfillment != *filter.Status {
			continue
		}
		clone := *o
		list = append(list, &clone)
	}
	return list, int64(len(list)), nil
}

type fakeResolver struct {
	serviceID uuid.UUID
	options   map[uuid.UUID]domain.LineItem
}

func (f *fakeResolver) Resolve(_ context.Context, serviceID uuid.UUID, selections []ports.Selection) ([]domain.LineItem, error) {
	if serviceID != f.serviceID {
		return nil, ports.ErrServiceNotFound
	}
	if len(selections) == 0 {
		return nil, ports.ErrInvalidSelection
	}
	var items []domain.LineItem
	for _, sel := range selections {
		id, err := uuid.Parse(sel.OptionID)
		if err != nil {
			return nil, ports.ErrInvalidSelection
		}
		option, ok := f.options[id]
		if !ok {
			return nil, ports.ErrInvalidSelection
		}
		option.Quantity = sel.Quantity
		if option.Quantity < 1 {
			option.Quantity = 1
		}
		items = append(items, option)
	}
	return items, nil
}

type fixture struct {
	svc      *Service
	repo     *fakeOrderRepo
	owner    ports.Actor
	admin    ports.Actor
	stranger ports.Actor
	service  uuid.UUID
	optionA  uuid.UUID
	optionB  uuid.UUID
}

func newFixture() *fixture {
	serviceID := uuid.New()
	optionA, optionB := uuid.New(), uuid.New()
	resolver := &fakeResolver{
		serviceID: serviceID,
		options: map[uuid.UUID]domain.LineItem{
			optionA: {OptionID: optionA, Name: "Standard clean", UnitPrice: 30},
			optionB: {OptionID: optionB, Name: "Ironing", UnitPrice: 10},
		},
	}
	repo := newFakeOrderRepo()
	return &fixture{
		svc:      NewService(repo, resolver),
		repo:     repo,
		owner:    ports.Actor{ID: uuid.New()},
		admin:    ports.Actor{ID: uuid.New(), Admin: true},
		stranger: ports.Actor{ID: uuid.New()},
		service:  serviceID,
		optionA:  optionA,
		optionB:  optionB,
	}
}

func (f *fixture) createOrder(t *testing.T, method domain.PaymentMethod) *domain.Order {
	t.Helper()
	order, err := f.svc.CreateOrder(context.Background(), f.owner, ports.CreateOrderInput{
		ServiceID: f.service,
		Selection: []ports.Selection{
			{OptionID: f.optionA.String(), Quantity: 1},
			{OptionID: f.optionB.String(), Quantity: 2},
		},
		Pricing:  domain.Pricing{TotalAmount: 50, Tax: 5, GrandTotal: 55},
		Schedule: domain.Schedule{ScheduledDate: time.Now().Add(24 * time.Hour), TimeSlot: "14:00-17:00", Address: "1 Main St"},
		Method:   method,
	})
	require.NoError(t, err)
	return order
}

func TestCreateOrder_SnapshotsSelections(t *testing.T) {
	f := newFixture()
	order := f.createOrder(t, domain.MethodCard)

	require.Len(t, order.LineItems, 2)
	assert.Equal(t, "Standard clean", order.LineItems[0].Name)
	assert.Equal(t, 30.0, order.LineItems[0].UnitPrice)
	assert.Equal(t, 1, order.LineItems[0].Quantity)
	assert.Equal(t, 2, order.LineItems[1].Quantity)
	assert.Equal(t, f.owner.ID, order.OwnerID)
	assert.Equal(t, domain.FulfillmentPending, order.Fulfillment)
	assert.Equal(t, domain.PaymentPending, order.Payment)
}

func TestCreateOrder_UnknownOption(t *testing.T) {
	f := newFixture()
	_, err := f.svc.CreateOrder(context.Background(), f.owner, ports.CreateOrderInput{
		ServiceID: f.service,
		Selection: []ports.Selection{{OptionID: uuid.New().String(), Quantity: 1}},
		Pricing:   domain.Pricing{TotalAmount: 30, GrandTotal: 30},
		Method:    domain.MethodCard,
	})
	require.ErrorIs(t, err, ports.ErrInvalidSelection)
}

func TestCreateOrder_UnknownService(t *testing.T) {
	f := newFixture()
	_, err := f.svc.CreateOrder(context.Background(), f.owner, ports.CreateOrderInput{
		ServiceID: uuid.New(),
		Selection: []ports.Selection{{OptionID: f.optionA.String(), Quantity: 1}},
		Method:    domain.MethodCard,
	})
	require.ErrorIs(t, err, ports.ErrServiceNotFound)
}

func TestGetOrder_AuthorizationSymmetry(t *testing.T) {
	f := newFixture()
	order := f.createOrder(t, domain.MethodCard)
	ctx := context.Background()

	for _, actor := range []ports.Actor{f.owner, f.admin} {
		got, err := f.svc.GetOrder(ctx, actor, order.ID)
		require.NoError(t, err)
		assert.Equal(t, order.ID, got.ID)
	}

	_, err := f.svc.GetOrder(ctx, f.stranger, order.ID)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestGetOrder_NotFound(t *testing.T) {
	f := newFixture()
	_, err := f.svc.GetOrder(context.Background(), f.admin, uuid.New())
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestListOrders_ScopesNonAdminsToOwnOrders(t *testing.T) {
	f := newFixture()
	f.createOrder(t, domain.MethodCard)
	f.createOrder(t, domain.MethodCash)
	ctx := context.Background()

	ownPage, err := f.svc.ListOrders(ctx, f.owner, ports.ListOrdersInput{})
	require.NoError(t, err)
	assert.Len(t, ownPage.Orders, 2)
	assert.EqualValues(t, 2, ownPage.Pagination.Total)

	emptyPage, err := f.svc.ListOrders(ctx, f.stranger, ports.ListOrdersInput{})
	require.NoError(t, err)
	assert.Empty(t, emptyPage.Orders)

	adminPage, err := f.svc.ListOrders(ctx, f.admin, ports.ListOrdersInput{})
	require.NoError(t, err)
	assert.Len(t, adminPage.Orders, 2)
}

func TestListOrders_StatusFilter(t *testing.T) {
	f := newFixture()
	order := f.createOrder(t, domain.MethodCard)
	f.createOrder(t, domain.MethodCard)
	ctx := context.Background()

	_, err := f.svc.Cancel(ctx, f.owner, order.ID)
	require.NoError(t, err)

	page, err := f.svc.ListOrders(ctx, f.admin, ports.ListOrdersInput{Status: "cancelled"})
	require.NoError(t, err)
	require.Len(t, page.Orders, 1)
	assert.Equal(t, order.ID, page.Orders[0].ID)

	_, err = f.svc.ListOrders(ctx, f.admin, ports.ListOrdersInput{Status: "bogus"})
	require.ErrorIs(t, err, domain.ErrInvalidFulfillmentStatus)
}

func TestSetStatus_OwnerAndAdminAllowed(t *testing.T) {
	f := newFixture()
	order := f.createOrder(t, domain.MethodCard)
	ctx := context.Background()

	updated, err := f.svc.SetStatus(ctx, f.admin, order.ID, "in-progress")
	require.NoError(t, err)
	assert.Equal(t, domain.FulfillmentInProgress, updated.Fulfillment)

	_, err = f.svc.SetStatus(ctx, f.stranger, order.ID, "completed")
	require.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.SetStatus(ctx, f.owner, order.ID, "shipped")
	require.ErrorIs(t, err, domain.ErrInvalidFulfillmentStatus)
}

func TestCancel_GuardAndPersistence(t *testing.T) {
	f := newFixture()
	order := f.createOrder(t, domain.MethodCard)
	ctx := context.Background()

	cancelled, err := f.svc.Cancel(ctx, f.owner, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FulfillmentCancelled, cancelled.Fulfillment)
}

func TestCancel_RejectedInProgress(t *testing.T) {
	f := newFixture()
	order := f.createOrder(t, domain.MethodCard)
	ctx := context.Background()

	_, err := f.svc.SetStatus(ctx, f.owner, order.ID, "in-progress")
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, f.owner, order.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	stored, err := f.svc.GetOrder(ctx, f.owner, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FulfillmentInProgress, stored.Fulfillment)
}

func TestUpdatePayment_DrivesFulfillment(t *testing.T) {
	f := newFixture()
	order := f.createOrder(t, domain.MethodCard)
	ctx := context.Background()

	updated, err := f.svc.UpdatePayment(ctx, f.owner, order.ID, ports.PaymentUpdateInput{
		Status:  "completed",
		Details: &domain.PaymentDetails{TransactionID: "T-100"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCompleted, updated.Payment)
	assert.Equal(t, domain.FulfillmentConfirmed, updated.Fulfillment)
	require.NotNil(t, updated.Details)
	assert.Equal(t, "T-100", updated.Details.TransactionID)

	_, err = f.svc.UpdatePayment(ctx, f.owner, order.ID, ports.PaymentUpdateInput{Status: "settled"})
	require.ErrorIs(t, err, domain.ErrInvalidPaymentStatus)
}

func TestApplyGatewayCallback_EndToEnd(t *testing.T) {
	f := newFixture()
	order := f.createOrder(t, domain.MethodPayPal)
	ctx := context.Background()

	_, err := f.svc.UpdatePayment(ctx, f.owner, order.ID, ports.PaymentUpdateInput{Status: "processing"})
	require.NoError(t, err)

	updated, err := f.svc.ApplyGatewayCallback(ctx, f.owner, order.ID, domain.GatewayCallback{
		GatewayOrderID: "G1",
		CaptureID:      "C1",
		CaptureStatus:  "COMPLETED",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCompleted, updated.Payment)
	assert.Equal(t, domain.FulfillmentConfirmed, updated.Fulfillment)
	require.NotNil(t, updated.Details.Capture)
	assert.Equal(t, "C1", updated.Details.Capture.ID)
}

func TestApplyGatewayCallback_MethodMismatchLeavesOrderUnchanged(t *testing.T) {
	f := newFixture()
	order := f.createOrder(t, domain.MethodCash)
	ctx := context.Background()

	_, err := f.svc.ApplyGatewayCallback(ctx, f.owner, order.ID, domain.GatewayCallback{
		GatewayOrderID: "G1",
		CaptureID:      "C1",
	})
	require.ErrorIs(t, err, domain.ErrMethodMismatch)

	stored, err := f.svc.GetOrder(ctx, f.owner, order.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Details)
	assert.Equal(t, domain.PaymentPending, stored.Payment)
}

func TestDeleteOrder_AdminOnly(t *testing.T) {
	f := newFixture()
	order := f.createOrder(t, domain.MethodCard)
	ctx := context.Background()

	err := f.svc.DeleteOrder(ctx, f.owner, order.ID)
	require.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, f.svc.DeleteOrder(ctx, f.admin, order.ID))
	_, err = f.svc.GetOrder(ctx, f.admin, order.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestMutate_SurfacesVersionConflict(t *testing.T) {
	f := newFixture()
	order := f.createOrder(t, domain.MethodCard)
	ctx := context.Background()

	// A concurrent writer bumps the stored version between our read and write.
	stale, err := f.repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	_, err = f.repo.Update(ctx, stale)
	require.NoError(t, err)
	stale.Version-- // simulate the losing writer
	_, err = f.repo.Update(ctx, stale)
	require.ErrorIs(t, err, ports.ErrConflict)
}
