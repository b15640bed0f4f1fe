package domain

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// FulfillmentStatus enumerates the operational progress of an order.
type FulfillmentStatus string

const (
	FulfillmentPending    FulfillmentStatus = "pending"
	FulfillmentConfirmed  FulfillmentStatus = "confirmed"
	FulfillmentInProgress FulfillmentStatus = "in-progress"
	FulfillmentCompleted  FulfillmentStatus = "completed"
	FulfillmentCancelled  FulfillmentStatus = "cancelled"
)

// PaymentStatus enumerates the state of funds capture.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
	PaymentRefunded   PaymentStatus = "refunded"
)

// PaymentMethod is fixed at creation and never changes.
type PaymentMethod string

const (
	MethodCard   PaymentMethod = "card"
	MethodPayPal PaymentMethod = "paypal"
	MethodCash   PaymentMethod = "cash"
)

var (
	ErrEmptyLineItems           = errors.New("order requires at least one line item")
	ErrInvalidQuantity          = errors.New("line item quantity must be at least 1")
	ErrNegativeAmount           = errors.New("order amounts must not be negative")
	ErrPricingMismatch          = errors.New("order pricing is inconsistent")
	ErrInvalidFulfillmentStatus = errors.New("fulfillment status is invalid")
	ErrInvalidPaymentStatus     = errors.New("payment status is invalid")
	ErrInvalidPaymentMethod     = errors.New("payment method is invalid")
	ErrInvalidTransition        = errors.New("order cannot be cancelled in its current state")
	ErrMethodMismatch           = errors.New("order is not paid through the payment gateway")
	ErrMissingCallbackFields    = errors.New("gateway callback is missing required fields")
)

// amountTolerance absorbs float rounding when checking pricing consistency.
const amountTolerance = 0.01

// LineItem is a priced, quantified snapshot of one catalog option, frozen
// into the order at creation time. Later catalog edits never touch it.
type LineItem struct {
	OptionID  uuid.UUID
	Name      string
	UnitPrice float64
	Quantity  int
}

// Pricing carries the caller-supplied totals for an order.
type Pricing struct {
	TotalAmount float64
	Tax         float64
	GrandTotal  float64
}

// Schedule holds the delivery metadata. Opaque to lifecycle logic.
type Schedule struct {
	ScheduledDate time.Time
	TimeSlot      string
	Address       string
}

// GatewayCapture records the capture reported by the payment authority.
type GatewayCapture struct {
	ID     string
	Status string
}

// PaymentDetails is the optional sub-record tracking gateway state.
type PaymentDetails struct {
	TransactionID  string
	Timestamp      time.Time
	GatewayOrderID string
	GatewayPayerID string
	Capture        *GatewayCapture
}

// GatewayCallback is a normalized inbound report from the payment gateway.
type GatewayCallback struct {
	GatewayOrderID string
	GatewayPayerID string
	CaptureID      string
	CaptureStatus  string
}

// Order is the aggregate root for a booking. Line items and totals are
// immutable after creation; only the status fields and payment details
// mutate afterwards.
type Order struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	ServiceID   uuid.UUID
	LineItems   []LineItem
	Pricing     Pricing
	Fulfillment FulfillmentStatus
	Payment     PaymentStatus
	Method      PaymentMethod
	Details     *PaymentDetails
	Schedule    Schedule
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewOrder validates and constructs a new Order aggregate. Line items are
// copied by value so callers cannot alias the frozen snapshot.
func NewOrder(ownerID, serviceID uuid.UUID, items []LineItem, pricing Pricing, schedule Schedule, method PaymentMethod) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyLineItems
	}
	snapshot := make([]LineItem, len(items))
	copy(snapshot, items)
	order := &Order{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		ServiceID:   serviceID,
		LineItems:   snapshot,
		Pricing:     pricing,
		Fulfillment: FulfillmentPending,
		Payment:     PaymentPending,
		Method:      method,
		Schedule:    schedule,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces creation invariants on the aggregate.
func (o *Order) Validate() error {
	if len(o.LineItems) == 0 {
		return ErrEmptyLineItems
	}
	var sum float64
	for _, item := range o.LineItems {
		if item.Quantity < 1 {
			return fmt.Errorf("%w: option %s", ErrInvalidQuantity, item.OptionID)
		}
		if item.UnitPrice < 0 {
			return ErrNegativeAmount
		}
		sum += item.UnitPrice * float64(item.Quantity)
	}
	if o.Pricing.TotalAmount < 0 || o.Pricing.Tax < 0 || o.Pricing.GrandTotal < 0 {
		return ErrNegativeAmount
	}
	if math.Abs(o.Pricing.TotalAmount-sum) > amountTolerance {
		return fmt.Errorf("%w: total %.2f does not match line items %.2f", ErrPricingMismatch, o.Pricing.TotalAmount, sum)
	}
	if math.Abs(o.Pricing.GrandTotal-(o.Pricing.TotalAmount+o.Pricing.Tax)) > amountTolerance {
		return fmt.Errorf("%w: grand total %.2f does not match total plus tax", ErrPricingMismatch, o.Pricing.GrandTotal)
	}
	if !isValidFulfillment(o.Fulfillment) {
		return ErrInvalidFulfillmentStatus
	}
	if !isValidPayment(o.Payment) {
		return ErrInvalidPaymentStatus
	}
	if !isValidMethod(o.Method) {
		return ErrInvalidPaymentMethod
	}
	return nil
}

// ApplyPaymentStatus records a payment-status change and derives the
// required fulfillment-status change. This is the only path by which
// payment state drives fulfillment state.
func (o *Order) ApplyPaymentStatus(next PaymentStatus) error {
	if !isValidPayment(next) {
		return fmt.Errorf("%w: %q", ErrInvalidPaymentStatus, next)
	}
	o.Payment = next
	switch next {
	case PaymentCompleted:
		if o.Fulfillment == FulfillmentPending {
			o.Fulfillment = FulfillmentConfirmed
		}
	case PaymentFailed:
		o.Fulfillment = FulfillmentPending
	case PaymentRefunded:
		o.Fulfillment = FulfillmentCancelled
	case PaymentPending, PaymentProcessing:
		// funds not settled yet, fulfillment unchanged
	}
	return nil
}

// SetFulfillmentStatus applies an explicit, actor-issued transition. Any
// valid status is accepted: direct transitions carry no predecessor graph,
// authorization is enforced by the caller.
func (o *Order) SetFulfillmentStatus(next FulfillmentStatus) error {
	if !isValidFulfillment(next) {
		return fmt.Errorf("%w: %q", ErrInvalidFulfillmentStatus, next)
	}
	o.Fulfillment = next
	return nil
}

// Cancel moves the order to cancelled. Only reachable while the work has
// not started: pending or confirmed.
func (o *Order) Cancel() error {
	switch o.Fulfillment {
	case FulfillmentPending, FulfillmentConfirmed:
		o.Fulfillment = FulfillmentCancelled
		return nil
	default:
		return fmt.Errorf("%w: current status %q", ErrInvalidTransition, o.Fulfillment)
	}
}

// MergePaymentDetails overlays non-zero fields of the patch onto the
// existing payment details, creating the sub-record if absent.
func (o *Order) MergePaymentDetails(patch PaymentDetails) {
	if o.Details == nil {
		o.Details = &PaymentDetails{}
	}
	if patch.TransactionID != "" {
		o.Details.TransactionID = patch.TransactionID
	}
	if !patch.Timestamp.IsZero() {
		o.Details.Timestamp = patch.Timestamp
	}
	if patch.GatewayOrderID != "" {
		o.Details.GatewayOrderID = patch.GatewayOrderID
	}
	if patch.GatewayPayerID != "" {
		o.Details.GatewayPayerID = patch.GatewayPayerID
	}
	if patch.Capture != nil {
		capture := *patch.Capture
		o.Details.Capture = &capture
	}
}

// ApplyGatewayCallback normalizes an inbound gateway report, merges it into
// the payment details, and runs the payment-driven transition. Applying the
// same callback twice converges on the same state.
func (o *Order) ApplyGatewayCallback(cb GatewayCallback, now time.Time) error {
	if o.Method != MethodPayPal {
		return fmt.Errorf("%w: method %q", ErrMethodMismatch, o.Method)
	}
	if cb.GatewayOrderID == "" || cb.CaptureID == "" {
		return ErrMissingCallbackFields
	}
	o.MergePaymentDetails(PaymentDetails{
		Timestamp:      now,
		GatewayOrderID: cb.GatewayOrderID,
		GatewayPayerID: cb.GatewayPayerID,
		Capture:        &GatewayCapture{ID: cb.CaptureID, Status: cb.CaptureStatus},
	})
	return o.ApplyPaymentStatus(NormalizeCaptureStatus(cb.CaptureStatus))
}

// NormalizeCaptureStatus maps the gateway's capture vocabulary onto the
// internal payment-status space. Unknown values are treated as in-flight.
func NormalizeCaptureStatus(captureStatus string) PaymentStatus {
	switch captureStatus {
	case "COMPLETED":
		return PaymentCompleted
	case "DECLINED":
		return PaymentFailed
	default:
		return PaymentProcessing
	}
}

func isValidFulfillment(status FulfillmentStatus) bool {
	switch status {
	case FulfillmentPending, FulfillmentConfirmed, FulfillmentInProgress, FulfillmentCompleted, FulfillmentCancelled:
		return true
	default:
		return false
	}
}

func isValidPayment(status PaymentStatus) bool {
	switch status {
	case PaymentPending, PaymentProcessing, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	default:
		return false
	}
}

func isValidMethod(method PaymentMethod) bool {
	switch method {
	case MethodCard, MethodPayPal, MethodCash:
		return true
	default:
		return false
	}
}

// ParseFulfillmentStatus validates a transport-supplied status value.
func ParseFulfillmentStatus(raw string) (FulfillmentStatus, error) {
	status := FulfillmentStatus(raw)
	if !isValidFulfillment(status) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFulfillmentStatus, raw)
	}
	return status, nil
}

// ParsePaymentStatus validates a transport-supplied payment status value.
func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	status := PaymentStatus(raw)
	if !isValidPayment(status) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPaymentStatus, raw)
	}
	return status, nil
}

// ParsePaymentMethod validates a transport-supplied payment method value.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	method := PaymentMethod(raw)
	if !isValidMethod(method) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, raw)
	}
	return method, nil
}
