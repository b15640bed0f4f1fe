package bookingserver

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderhttpmapper "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/adapters/http/mapper"
	ordersdomain "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/domain"
	ordersports "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/ports"
)

// OrdersAPI wires HTTP transport with the orders bounded context service and workflows.
type OrdersAPI struct {
	service   ordersports.Service
	workflows ordersports.WorkflowOrchestrator
}

// NewOrdersAPI creates an OrdersAPI backed by the provided service.
func NewOrdersAPI(service ordersports.Service, workflows ordersports.WorkflowOrchestrator) OrdersAPI {
	return OrdersAPI{service: service, workflows: workflows}
}

// CreateOrderRequest is the payload accepted on order creation.
type CreateOrderRequest struct {
	ServiceID     string             `json:"serviceId" binding:"required"`
	Selections    []SelectionPayload `json:"selections" binding:"required"`
	TotalAmount   float64            `json:"totalAmount"`
	Tax           float64            `json:"tax"`
	GrandTotal    float64            `json:"grandTotal"`
	ScheduledDate time.Time          `json:"scheduledDate"`
	TimeSlot      string             `json:"timeSlot"`
	Address       string             `json:"address"`
	PaymentMethod string             `json:"paymentMethod" binding:"required"`
}

// SelectionPayload is one requested catalog option.
type SelectionPayload struct {
	OptionID string `json:"optionId" binding:"required"`
	Quantity int    `json:"quantity"`
}

// StatusUpdateRequest carries an explicit fulfillment-status change.
type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// PaymentUpdateRequest carries an explicit payment-status change with an
// optional details patch.
type PaymentUpdateRequest struct {
	Status  string                         `json:"status" binding:"required"`
	Details *orderhttpmapper.PaymentDetails `json:"details,omitempty"`
}

// PaymentCallbackRequest is the inbound gateway capture report.
type PaymentCallbackRequest struct {
	GatewayOrderID string `json:"gatewayOrderId"`
	GatewayPayerID string `json:"gatewayPayerId"`
	CaptureID      string `json:"captureId"`
	CaptureStatus  string `json:"captureStatus"`
}

// Post /v1/orders
// Place a new order with a frozen catalog snapshot
func (api *OrdersAPI) CreateOrder(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var payload CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	serviceID, err := uuid.Parse(payload.ServiceID)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	method, err := ordersdomain.ParsePaymentMethod(payload.PaymentMethod)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	selections := make([]ordersports.Selection, 0, len(payload.Selections))
	for _, selection := range payload.Selections {
		selections = append(selections, ordersports.Selection{OptionID: selection.OptionID, Quantity: selection.Quantity})
	}
	input := ordersports.CreateOrderInput{
		ServiceID: serviceID,
		Selection: selections,
		Pricing:   ordersdomain.Pricing{TotalAmount: payload.TotalAmount, Tax: payload.Tax, GrandTotal: payload.GrandTotal},
		Schedule:  ordersdomain.Schedule{ScheduledDate: payload.ScheduledDate, TimeSlot: payload.TimeSlot, Address: payload.Address},
		Method:    method,
	}
	order, err := api.placeOrder(c.Request.Context(), actor, input)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderhttpmapper.FromDomainOrder(order))
}

func (api *OrdersAPI) placeOrder(ctx context.Context, actor ordersports.Actor, input ordersports.CreateOrderInput) (*ordersdomain.Order, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(ctx, actor, input)
	}
	return api.service.CreateOrder(ctx, actor, input)
}

// Get /v1/orders/:orderId
// Fetch a single order
func (api *OrdersAPI) GetOrderById(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseOrderIDParam(c)
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), actor, id)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}

// Get /v1/orders
// List orders, paged; admins see every owner, others only their own
func (api *OrdersAPI) ListOrders(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	input := ordersports.ListOrdersInput{
		Status: c.Query("status"),
		Page:   parseIntQuery(c, "page"),
		Limit:  parseIntQuery(c, "limit"),
	}
	page, err := api.service.ListOrders(c.Request.Context(), actor, input)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrders(page))
}

// Patch /v1/orders/:orderId/status
// Apply an explicit fulfillment-status change
func (api *OrdersAPI) UpdateOrderStatus(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseOrderIDParam(c)
	if !ok {
		return
	}
	var payload StatusUpdateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := api.service.SetStatus(c.Request.Context(), actor, id, payload.Status)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}

// Post /v1/orders/:orderId/cancel
// Cancel an order that has not started fulfillment
func (api *OrdersAPI) CancelOrder(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseOrderIDParam(c)
	if !ok {
		return
	}
	order, err := api.service.Cancel(c.Request.Context(), actor, id)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}

// Patch /v1/orders/:orderId/payment
// Apply an explicit payment-status change with an optional details patch
func (api *OrdersAPI) UpdateOrderPayment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseOrderIDParam(c)
	if !ok {
		return
	}
	var payload PaymentUpdateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input := ordersports.PaymentUpdateInput{
		Status:  payload.Status,
		Details: orderhttpmapper.ToPaymentDetails(payload.Details),
	}
	order, err := api.service.UpdatePayment(c.Request.Context(), actor, id, input)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}

// Post /v1/orders/:orderId/payment/callback
// Reconcile a gateway capture report into the order
func (api *OrdersAPI) OrderPaymentCallback(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseOrderIDParam(c)
	if !ok {
		return
	}
	var payload PaymentCallbackRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	callback := ordersdomain.GatewayCallback{
		GatewayOrderID: payload.GatewayOrderID,
		GatewayPayerID: payload.GatewayPayerID,
		CaptureID:      payload.CaptureID,
		CaptureStatus:  payload.CaptureStatus,
	}
	order, err := api.service.ApplyGatewayCallback(c.Request.Context(), actor, id, callback)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}

// Delete /v1/orders/:orderId
// Remove an order outright (admin only)
func (api *OrdersAPI) DeleteOrder(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseOrderIDParam(c)
	if !ok {
		return
	}
	if err := api.service.DeleteOrder(c.Request.Context(), actor, id); err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseOrderIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return uuid.Nil, false
	}
	return id, true
}

func parseIntQuery(c *gin.Context, name string) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return value
}
