package bookingserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route binds an HTTP method and pattern to a handler.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// Routes is the list of the generated routes.
type Routes []Route

// ApiHandleFunctions groups the API controllers wired into the router.
type ApiHandleFunctions struct {
	OrdersAPI  OrdersAPI
	CatalogAPI CatalogAPI
}

// NewRouter returns a gin engine with all API routes attached. The given
// middleware runs before every route handler.
func NewRouter(handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.Default()
	router.Use(middleware...)
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc responds for routes without an implementation.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) Routes {
	return Routes{
		{
			Name:        "Health",
			Method:      http.MethodGet,
			Pattern:     "/health",
			HandlerFunc: Health,
		},
		{
			Name:        "CreateOrder",
			Method:      http.MethodPost,
			Pattern:     "/v1/orders",
			HandlerFunc: handleFunctions.OrdersAPI.CreateOrder,
		},
		{
			Name:        "ListOrders",
			Method:      http.MethodGet,
			Pattern:     "/v1/orders",
			HandlerFunc: handleFunctions.OrdersAPI.ListOrders,
		},
		{
			Name:        "GetOrderById",
			Method:      http.MethodGet,
			Pattern:     "/v1/orders/:orderId",
			HandlerFunc: handleFunctions.OrdersAPI.GetOrderById,
		},
		{
			Name:        "UpdateOrderStatus",
			Method:      http.MethodPatch,
			Pattern:     "/v1/orders/:orderId/status",
			HandlerFunc: handleFunctions.OrdersAPI.UpdateOrderStatus,
		},
		{
			Name:        "CancelOrder",
			Method:      http.MethodPost,
			Pattern:     "/v1/orders/:orderId/cancel",
			HandlerFunc: handleFunctions.OrdersAPI.CancelOrder,
		},
		{
			Name:        "UpdateOrderPayment",
			Method:      http.MethodPatch,
			Pattern:     "/v1/orders/:orderId/payment",
			HandlerFunc: handleFunctions.OrdersAPI.UpdateOrderPayment,
		},
		{
			Name:        "OrderPaymentCallback",
			Method:      http.MethodPost,
			Pattern:     "/v1/orders/:orderId/payment/callback",
			HandlerFunc: handleFunctions.OrdersAPI.OrderPaymentCallback,
		},
		{
			Name:        "DeleteOrder",
			Method:      http.MethodDelete,
			Pattern:     "/v1/orders/:orderId",
			HandlerFunc: handleFunctions.OrdersAPI.DeleteOrder,
		},
		{
			Name:        "CreateService",
			Method:      http.MethodPost,
			Pattern:     "/v1/services",
			HandlerFunc: handleFunctions.CatalogAPI.CreateService,
		},
		{
			Name:        "ListServices",
			Method:      http.MethodGet,
			Pattern:     "/v1/services",
			HandlerFunc: handleFunctions.CatalogAPI.ListServices,
		},
		{
			Name:        "GetServiceById",
			Method:      http.MethodGet,
			Pattern:     "/v1/services/:serviceId",
			HandlerFunc: handleFunctions.CatalogAPI.GetServiceById,
		},
		{
			Name:        "UpdateService",
			Method:      http.MethodPut,
			Pattern:     "/v1/services/:serviceId",
			HandlerFunc: handleFunctions.CatalogAPI.UpdateService,
		},
		{
			Name:        "DeleteService",
			Method:      http.MethodDelete,
			Pattern:     "/v1/services/:serviceId",
			HandlerFunc: handleFunctions.CatalogAPI.DeleteService,
		},
	}
}

// Health reports process liveness. Always available, even in maintenance.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
