package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []LineItem {
	return []LineItem{
		{OptionID: uuid.New(), Name: "Deep clean", UnitPrice: 40, Quantity: 1},
		{OptionID: uuid.New(), Name: "Window wash", UnitPrice: 15, Quantity: 2},
	}
}

func testOrder(t *testing.T) *Order {
	t.Helper()
	order, err := NewOrder(uuid.New(), uuid.New(), testItems(),
		Pricing{TotalAmount: 70, Tax: 7, GrandTotal: 77},
		Schedule{ScheduledDate: time.Now().Add(48 * time.Hour), TimeSlot: "09:00-12:00", Address: "12 Elm St"},
		MethodPayPal,
	)
	require.NoError(t, err)
	return order
}

func TestNewOrder_FreezesSnapshotAndDefaults(t *testing.T) {
	items := testItems()
	order, err := NewOrder(uuid.New(), uuid.New(), items,
		Pricing{TotalAmount: 70, Tax: 7, GrandTotal: 77}, Schedule{}, MethodCard)
	require.NoError(t, err)

	assert.Equal(t, FulfillmentPending, order.Fulfillment)
	assert.Equal(t, PaymentPending, order.Payment)
	require.Len(t, order.LineItems, 2)
	assert.Equal(t, "Deep clean", order.LineItems[0].Name)
	assert.Equal(t, 40.0, order.LineItems[0].UnitPrice)

	// Mutating the caller's slice must not reach the frozen snapshot.
	items[0].UnitPrice = 9999
	assert.Equal(t, 40.0, order.LineItems[0].UnitPrice)
}

func TestNewOrder_RejectsEmptyLineItems(t *testing.T) {
	_, err := NewOrder(uuid.New(), uuid.New(), nil, Pricing{}, Schedule{}, MethodCard)
	require.ErrorIs(t, err, ErrEmptyLineItems)
}

func TestNewOrder_RejectsZeroQuantity(t *testing.T) {
	items := testItems()
	items[1].Quantity = 0
	_, err := NewOrder(uuid.New(), uuid.New(), items,
		Pricing{TotalAmount: 40, Tax: 0, GrandTotal: 40}, Schedule{}, MethodCard)
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestNewOrder_RejectsInconsistentPricing(t *testing.T) {
	_, err := NewOrder(uuid.New(), uuid.New(), testItems(),
		Pricing{TotalAmount: 50, Tax: 5, GrandTotal: 55}, Schedule{}, MethodCard)
	require.ErrorIs(t, err, ErrPricingMismatch)

	_, err = NewOrder(uuid.New(), uuid.New(), testItems(),
		Pricing{TotalAmount: 70, Tax: 7, GrandTotal: 99}, Schedule{}, MethodCard)
	require.ErrorIs(t, err, ErrPricingMismatch)
}

func TestNewOrder_RejectsUnknownPaymentMethod(t *testing.T) {
	_, err := NewOrder(uuid.New(), uuid.New(), testItems(),
		Pricing{TotalAmount: 70, Tax: 7, GrandTotal: 77}, Schedule{}, PaymentMethod("wire"))
	require.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

func TestApplyPaymentStatus_TransitionTable(t *testing.T) {
	cases := []struct {
		name            string
		fulfillment     FulfillmentStatus
		payment         PaymentStatus
		wantFulfillment FulfillmentStatus
	}{
		{"completed advances pending", FulfillmentPending, PaymentCompleted, FulfillmentConfirmed},
		{"completed leaves confirmed alone", FulfillmentConfirmed, PaymentCompleted, FulfillmentConfirmed},
		{"completed leaves in-progress alone", FulfillmentInProgress, PaymentCompleted, FulfillmentInProgress},
		{"completed leaves completed alone", FulfillmentCompleted, PaymentCompleted, FulfillmentCompleted},
		{"failed forces pending", FulfillmentConfirmed, PaymentFailed, FulfillmentPending},
		{"failed keeps pending pending", FulfillmentPending, PaymentFailed, FulfillmentPending},
		{"refunded forces cancelled", FulfillmentConfirmed, PaymentRefunded, FulfillmentCancelled},
		{"refunded cancels completed work", FulfillmentCompleted, PaymentRefunded, FulfillmentCancelled},
		{"pending is a no-op", FulfillmentInProgress, PaymentPending, FulfillmentInProgress},
		{"processing is a no-op", FulfillmentConfirmed, PaymentProcessing, FulfillmentConfirmed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := testOrder(t)
			order.Fulfillment = tc.fulfillment
			require.NoError(t, order.ApplyPaymentStatus(tc.payment))
			assert.Equal(t, tc.payment, order.Payment)
			assert.Equal(t, tc.wantFulfillment, order.Fulfillment)
		})
	}
}

func TestApplyPaymentStatus_RejectsUnknownValue(t *testing.T) {
	order := testOrder(t)
	err := order.ApplyPaymentStatus(PaymentStatus("settled"))
	require.ErrorIs(t, err, ErrInvalidPaymentStatus)
}

func TestCancel_GuardsTerminalAndActiveStates(t *testing.T) {
	for _, status := range []FulfillmentStatus{FulfillmentPending, FulfillmentConfirmed} {
		order := testOrder(t)
		order.Fulfillment = status
		require.NoError(t, order.Cancel())
		assert.Equal(t, FulfillmentCancelled, order.Fulfillment)
	}
	for _, status := range []FulfillmentStatus{FulfillmentInProgress, FulfillmentCompleted, FulfillmentCancelled} {
		order := testOrder(t)
		order.Fulfillment = status
		err := order.Cancel()
		require.ErrorIs(t, err, ErrInvalidTransition)
		assert.Contains(t, err.Error(), string(status))
		assert.Equal(t, status, order.Fulfillment)
	}
}

func TestSetFulfillmentStatus_PermissiveButValidated(t *testing.T) {
	order := testOrder(t)
	require.NoError(t, order.SetFulfillmentStatus(FulfillmentCompleted))
	assert.Equal(t, FulfillmentCompleted, order.Fulfillment)

	err := order.SetFulfillmentStatus(FulfillmentStatus("archived"))
	require.ErrorIs(t, err, ErrInvalidFulfillmentStatus)
	assert.Equal(t, FulfillmentCompleted, order.Fulfillment)
}

func TestApplyGatewayCallback_CompletedCapture(t *testing.T) {
	order := testOrder(t)
	require.NoError(t, order.ApplyPaymentStatus(PaymentProcessing))

	now := time.Now()
	err := order.ApplyGatewayCallback(GatewayCallback{
		GatewayOrderID: "G1",
		GatewayPayerID: "P1",
		CaptureID:      "C1",
		CaptureStatus:  "COMPLETED",
	}, now)
	require.NoError(t, err)

	assert.Equal(t, PaymentCompleted, order.Payment)
	assert.Equal(t, FulfillmentConfirmed, order.Fulfillment)
	require.NotNil(t, order.Details)
	assert.Equal(t, "G1", order.Details.GatewayOrderID)
	assert.Equal(t, "P1", order.Details.GatewayPayerID)
	require.NotNil(t, order.Details.Capture)
	assert.Equal(t, "C1", order.Details.Capture.ID)
	assert.Equal(t, "COMPLETED", order.Details.Capture.Status)
	assert.Equal(t, now, order.Details.Timestamp)
}

func TestApplyGatewayCallback_Idempotent(t *testing.T) {
	order := testOrder(t)
	cb := GatewayCallback{GatewayOrderID: "G1", CaptureID: "C1", CaptureStatus: "COMPLETED"}
	now := time.Now()

	require.NoError(t, order.ApplyGatewayCallback(cb, now))
	first := *order.Details
	firstPayment, firstFulfillment := order.Payment, order.Fulfillment

	require.NoError(t, order.ApplyGatewayCallback(cb, now))
	assert.Equal(t, first, *order.Details)
	assert.Equal(t, firstPayment, order.Payment)
	assert.Equal(t, firstFulfillment, order.Fulfillment)
}

func TestApplyGatewayCallback_DeclinedAndUnknownStatuses(t *testing.T) {
	order := testOrder(t)
	require.NoError(t, order.ApplyGatewayCallback(GatewayCallback{
		GatewayOrderID: "G1", CaptureID: "C1", CaptureStatus: "DECLINED",
	}, time.Now()))
	assert.Equal(t, PaymentFailed, order.Payment)
	assert.Equal(t, FulfillmentPending, order.Fulfillment)

	require.NoError(t, order.ApplyGatewayCallback(GatewayCallback{
		GatewayOrderID: "G1", CaptureID: "C2", CaptureStatus: "PENDING_REVIEW",
	}, time.Now()))
	assert.Equal(t, PaymentProcessing, order.Payment)
}

func TestApplyGatewayCallback_MethodMismatch(t *testing.T) {
	order, err := NewOrder(uuid.New(), uuid.New(), testItems(),
		Pricing{TotalAmount: 70, Tax: 7, GrandTotal: 77}, Schedule{}, MethodCash)
	require.NoError(t, err)

	err = order.ApplyGatewayCallback(GatewayCallback{GatewayOrderID: "G1", CaptureID: "C1"}, time.Now())
	require.ErrorIs(t, err, ErrMethodMismatch)
	assert.Nil(t, order.Details)
}

func TestApplyGatewayCallback_MissingFields(t *testing.T) {
	order := testOrder(t)
	err := order.ApplyGatewayCallback(GatewayCallback{CaptureID: "C1"}, time.Now())
	require.ErrorIs(t, err, ErrMissingCallbackFields)

	err = order.ApplyGatewayCallback(GatewayCallback{GatewayOrderID: "G1"}, time.Now())
	require.ErrorIs(t, err, ErrMissingCallbackFields)
	assert.Nil(t, order.Details)
}

func TestMergePaymentDetails_MergesNotReplaces(t *testing.T) {
	order := testOrder(t)
	order.MergePaymentDetails(PaymentDetails{TransactionID: "T1", GatewayOrderID: "G1"})
	order.MergePaymentDetails(PaymentDetails{GatewayPayerID: "P1"})

	require.NotNil(t, order.Details)
	assert.Equal(t, "T1", order.Details.TransactionID)
	assert.Equal(t, "G1", order.Details.GatewayOrderID)
	assert.Equal(t, "P1", order.Details.GatewayPayerID)
}
