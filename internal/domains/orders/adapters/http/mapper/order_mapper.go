package mapper

import (
	"time"

	ordersdomain "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/domain"
	ordersports "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/ports"
	"github.com/mariusel9911/Proiect-IC-sub001/internal/shared/pagination"
)

// LineItem is the transport-layer shape of one frozen line item.
type LineItem struct {
	OptionID  string  `json:"optionId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

// GatewayCapture mirrors the gateway's capture report.
type GatewayCapture struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// PaymentDetails is the transport-layer payment sub-record.
type PaymentDetails struct {
	TransactionID  string          `json:"transactionId,omitempty"`
	Timestamp      *time.Time      `json:"timestamp,omitempty"`
	GatewayOrderID string          `json:"gatewayOrderId,omitempty"`
	GatewayPayerID string          `json:"gatewayPayerId,omitempty"`
	GatewayCapture *GatewayCapture `json:"gatewayCapture,omitempty"`
}

// Order is the transport-layer representation of an order aggregate.
type Order struct {
	ID                string          `json:"id"`
	OwnerID           string          `json:"ownerId"`
	ServiceID         string          `json:"serviceId"`
	LineItems         []LineItem      `json:"lineItems"`
	TotalAmount       float64         `json:"totalAmount"`
	Tax               float64         `json:"tax"`
	GrandTotal        float64         `json:"grandTotal"`
	FulfillmentStatus string          `json:"fulfillmentStatus"`
	PaymentStatus     string          `json:"paymentStatus"`
	PaymentMethod     string          `json:"paymentMethod"`
	PaymentDetails    *PaymentDetails `json:"paymentDetails,omitempty"`
	ScheduledDate     time.Time       `json:"scheduledDate"`
	TimeSlot          string          `json:"timeSlot,omitempty"`
	Address           string          `json:"address,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// OrderPage is a page of orders plus pagination metadata.
type OrderPage struct {
	Orders     []Order         `json:"orders"`
	Pagination pagination.Page `json:"pagination"`
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *ordersdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	items := make([]LineItem, 0, len(order.LineItems))
	for _, item := range order.LineItems {
		items = append(items, LineItem{
			OptionID:  item.OptionID.String(),
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	out := Order{
		ID:                order.ID.String(),
		OwnerID:           order.OwnerID.String(),
		ServiceID:         order.ServiceID.String(),
		LineItems:         items,
		TotalAmount:       order.Pricing.TotalAmount,
		Tax:               order.Pricing.Tax,
		GrandTotal:        order.Pricing.GrandTotal,
		FulfillmentStatus: string(order.Fulfillment),
		PaymentStatus:     string(order.Payment),
		PaymentMethod:     string(order.Method),
		ScheduledDate:     order.Schedule.ScheduledDate,
		TimeSlot:          order.Schedule.TimeSlot,
		Address:           order.Schedule.Address,
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
	}
	if order.Details != nil {
		details := &PaymentDetails{
			TransactionID:  order.Details.TransactionID,
			GatewayOrderID: order.Details.GatewayOrderID,
			GatewayPayerID: order.Details.GatewayPayerID,
		}
		if !order.Details.Timestamp.IsZero() {
			ts := order.Details.Timestamp
			details.Timestamp = &ts
		}
		if order.Details.Capture != nil {
			details.GatewayCapture = &GatewayCapture{ID: order.Details.Capture.ID, Status: order.Details.Capture.Status}
		}
		out.PaymentDetails = details
	}
	return out
}

// FromDomainOrders converts a listing result page.
func FromDomainOrders(page *ordersports.OrderPage) OrderPage {
	if page == nil {
		return OrderPage{Orders: []Order{}}
	}
	orders := make([]Order, 0, len(page.Orders))
	for _, order := range page.Orders {
		orders = append(orders, FromDomainOrder(order))
	}
	return OrderPage{Orders: orders, Pagination: page.Pagination}
}

// ToPaymentDetails converts a transport details patch to the domain shape.
func ToPaymentDetails(details *PaymentDetails) *ordersdomain.PaymentDetails {
	if details == nil {
		return nil
	}
	out := &ordersdomain.PaymentDetails{
		TransactionID:  details.TransactionID,
		GatewayOrderID: details.GatewayOrderID,
		GatewayPayerID: details.GatewayPayerID,
	}
	if details.Timestamp != nil {
		out.Timestamp = *details.Timestamp
	}
	if details.GatewayCapture != nil {
		out.Capture = &ordersdomain.GatewayCapture{ID: details.GatewayCapture.ID, Status: details.GatewayCapture.Status}
	}
	return out
}
