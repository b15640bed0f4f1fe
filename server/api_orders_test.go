package bookingserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	cataloghttpmapper "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/catalog/adapters/http/mapper"
	catalogmemory "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/catalog/application"
	catalogdomain "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/catalog/domain"
	orderhttpmapper "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/adapters/http/mapper"
	orderscatalog "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/adapters/catalog"
	ordersmemory "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/adapters/memory"
	ordersapp "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/application"
	principalsmemory "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/principals/adapters/memory"
	principalsapp "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/principals/application"
	principalsdomain "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/principals/domain"
	apierrors "github.com/mariusel9911/Proiect-IC-sub001/internal/shared/errors"
)

type serverFixture struct {
	router   *gin.Engine
	owner    *principalsdomain.Principal
	admin    *principalsdomain.Principal
	stranger *principalsdomain.Principal
	service  *catalogdomain.Service
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	principalRepo := principalsmemory.NewRepository()
	principalService := principalsapp.NewService(principalRepo)
	owner := registerPrincipal(t, principalService, "owner@example.com", false)
	admin := registerPrincipal(t, principalService, "admin@example.com", true)
	stranger := registerPrincipal(t, principalService, "stranger@example.com", false)

	catalogService := catalogapp.NewService(catalogmemory.NewRepository())
	service, err := catalogdomain.NewService(
		"Deep Clean",
		"Full apartment cleaning",
		50,
		[]catalogdomain.Option{
			{ID: uuid.New(), Name: "Windows", Price: 20},
			{ID: uuid.New(), Name: "Oven", Price: 15},
		},
		[]string{"09:00-11:00", "14:00-16:00"},
	)
	require.NoError(t, err)
	_, err = catalogService.CreateService(ctx, service)
	require.NoError(t, err)

	orderService := ordersapp.NewService(ordersmemory.NewRepository(), orderscatalog.NewResolver(catalogService))
	handlers := ApiHandleFunctions{
		OrdersAPI:  NewOrdersAPI(orderService, nil),
		CatalogAPI: NewCatalogAPI(catalogService),
	}
	router := NewRouter(handlers, MaintenanceGate(nil, false), PrincipalAuth(principalService))
	return &serverFixture{router: router, owner: owner, admin: admin, stranger: stranger, service: service}
}

func registerPrincipal(t *testing.T, service *principalsapp.Service, email string, admin bool) *principalsdomain.Principal {
	t.Helper()
	principal, err := principalsdomain.NewPrincipal(email, email, admin)
	require.NoError(t, err)
	saved, err := service.Register(context.Background(), principal)
	require.NoError(t, err)
	return saved
}

func (f *serverFixture) do(t *testing.T, method, path string, principal *principalsdomain.Principal, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if principal != nil {
		req.Header.Set(PrincipalHeader, principal.ID.String())
	}
	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, req)
	return recorder
}

func (f *serverFixture) createOrderPayload() CreateOrderRequest {
	windows := f.service.Options[0]
	return CreateOrderRequest{
		ServiceID: f.service.ID.String(),
		Selections: []SelectionPayload{
			{OptionID: windows.ID.String(), Quantity: 2},
		},
		TotalAmount:   windows.Price * 2,
		Tax:           4,
		GrandTotal:    windows.Price*2 + 4,
		ScheduledDate: time.Now().Add(48 * time.Hour).UTC(),
		TimeSlot:      "09:00-11:00",
		Address:       "12 Main St",
		PaymentMethod: "paypal",
	}
}

func (f *serverFixture) placeOrder(t *testing.T) orderhttpmapper.Order {
	t.Helper()
	recorder := f.do(t, http.MethodPost, "/v1/orders", f.owner, f.createOrderPayload())
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	var order orderhttpmapper.Order
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &order))
	return order
}

func TestCreateOrderFreezesSnapshot(t *testing.T) {
	fixture := newServerFixture(t)
	order := fixture.placeOrder(t)

	require.Equal(t, fixture.owner.ID.String(), order.OwnerID)
	require.Equal(t, "pending", order.FulfillmentStatus)
	require.Equal(t, "pending", order.PaymentStatus)
	require.Len(t, order.LineItems, 1)
	require.Equal(t, "Windows", order.LineItems[0].Name)
	require.Equal(t, 2, order.LineItems[0].Quantity)
	require.InDelta(t, 20.0, order.LineItems[0].UnitPrice, 0.001)
}

func TestCreateOrderUnknownOption(t *testing.T) {
	fixture := newServerFixture(t)
	payload := fixture.createOrderPayload()
	payload.Selections[0].OptionID = uuid.New().String()

	recorder := fixture.do(t, http.MethodPost, "/v1/orders", fixture.owner, payload)
	require.Equal(t, http.StatusBadRequest, recorder.Code, recorder.Body.String())
}

func TestMissingPrincipalHeader(t *testing.T) {
	fixture := newServerFixture(t)
	recorder := fixture.do(t, http.MethodGet, "/v1/orders", nil, nil)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	require.Equal(t, apierrors.ContentTypeProblemJSON, recorder.Header().Get("Content-Type"))
}

func TestStrangerCannotReadOrCancel(t *testing.T) {
	fixture := newServerFixture(t)
	order := fixture.placeOrder(t)

	recorder := fixture.do(t, http.MethodGet, "/v1/orders/"+order.ID, fixture.stranger, nil)
	require.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = fixture.do(t, http.MethodPost, "/v1/orders/"+order.ID+"/cancel", fixture.stranger, nil)
	require.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = fixture.do(t, http.MethodGet, "/v1/orders/"+order.ID, fixture.admin, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestDeleteOrderIsAdminOnly(t *testing.T) {
	fixture := newServerFixture(t)
	order := fixture.placeOrder(t)

	recorder := fixture.do(t, http.MethodDelete, "/v1/orders/"+order.ID, fixture.owner, nil)
	require.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = fixture.do(t, http.MethodDelete, "/v1/orders/"+order.ID, fixture.admin, nil)
	require.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestPaymentCallbackConfirmsOrder(t *testing.T) {
	fixture := newServerFixture(t)
	order := fixture.placeOrder(t)

	callback := PaymentCallbackRequest{
		GatewayOrderID: "GW-1001",
		GatewayPayerID: "PAYER-7",
		CaptureID:      "CAP-42",
		CaptureStatus:  "COMPLETED",
	}
	recorder := fixture.do(t, http.MethodPost, "/v1/orders/"+order.ID+"/payment/callback", fixture.owner, callback)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var updated orderhttpmapper.Order
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &updated))
	require.Equal(t, "completed", updated.PaymentStatus)
	require.Equal(t, "confirmed", updated.FulfillmentStatus)
	require.NotNil(t, updated.PaymentDetails)
	require.Equal(t, "GW-1001", updated.PaymentDetails.GatewayOrderID)
	require.Equal(t, "CAP-42", updated.PaymentDetails.GatewayCapture.ID)

	// same capture again converges on the same state
	recorder = fixture.do(t, http.MethodPost, "/v1/orders/"+order.ID+"/payment/callback", fixture.owner, callback)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &updated))
	require.Equal(t, "completed", updated.PaymentStatus)
	require.Equal(t, "confirmed", updated.FulfillmentStatus)
}

func TestCancelAfterCompletionConflicts(t *testing.T) {
	fixture := newServerFixture(t)
	order := fixture.placeOrder(t)

	recorder := fixture.do(t, http.MethodPatch, "/v1/orders/"+order.ID+"/status", fixture.owner, StatusUpdateRequest{Status: "completed"})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	recorder = fixture.do(t, http.MethodPost, "/v1/orders/"+order.ID+"/cancel", fixture.owner, nil)
	require.Equal(t, http.StatusConflict, recorder.Code)
}

func TestCatalogWritesAreAdminGated(t *testing.T) {
	fixture := newServerFixture(t)
	payload := cataloghttpmapper.MutationService{
		Name:      "Carpet Wash",
		BasePrice: 30,
		Options:   []cataloghttpmapper.MutationOption{{Name: "Stairs", Price: 10}},
	}

	recorder := fixture.do(t, http.MethodPost, "/v1/services", fixture.owner, payload)
	require.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = fixture.do(t, http.MethodPost, "/v1/services", fixture.admin, payload)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
}

func TestListOrdersScopedToOwner(t *testing.T) {
	fixture := newServerFixture(t)
	fixture.placeOrder(t)
	fixture.placeOrder(t)

	recorder := fixture.do(t, http.MethodGet, "/v1/orders", fixture.stranger, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var page orderhttpmapper.OrderPage
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &page))
	require.Empty(t, page.Orders)

	recorder = fixture.do(t, http.MethodGet, "/v1/orders", fixture.admin, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &page))
	require.Len(t, page.Orders, 2)
	require.EqualValues(t, 2, page.Pagination.Total)
}

func TestMaintenanceGateBlocksMutations(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fixture := newServerFixture(t)

	principalService := principalsapp.NewService(principalsmemory.NewRepository())
	catalogService := catalogapp.NewService(catalogmemory.NewRepository())
	orderService := ordersapp.NewService(ordersmemory.NewRepository(), orderscatalog.NewResolver(catalogService))
	handlers := ApiHandleFunctions{
		OrdersAPI:  NewOrdersAPI(orderService, nil),
		CatalogAPI: NewCatalogAPI(catalogService),
	}
	gated := NewRouter(handlers, MaintenanceGate(nil, true), PrincipalAuth(principalService))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	recorder := httptest.NewRecorder()
	gated.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)

	req = httptest.NewRequest(http.MethodPost, "/v1/orders", bytes.NewReader([]byte("{}")))
	req.Header.Set(PrincipalHeader, fixture.owner.ID.String())
	recorder = httptest.NewRecorder()
	gated.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	require.Equal(t, apierrors.ContentTypeProblemJSON, recorder.Header().Get("Content-Type"))
}

func TestMalformedOrderIDRejected(t *testing.T) {
	fixture := newServerFixture(t)
	recorder := fixture.do(t, http.MethodGet, fmt.Sprintf("/v1/orders/%s", "not-a-uuid"), fixture.owner, nil)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}
