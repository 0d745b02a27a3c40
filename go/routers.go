// Package storefrontserver is the Fresh Harvest HTTP API: route table,
// handlers, and RFC 7807 error rendering.
package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freshharvest/harvest-api/internal/platform/metrics"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
	// Admin routes sit behind ApiHandleFunctions.AdminGate.
	Admin bool
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine add routes to existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	if handleFunctions.Metrics != nil {
		router.Use(handleFunctions.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(handleFunctions.Metrics.Handler()))
	}
	router.GET("/healthz", Healthz)
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		handlers := []gin.HandlerFunc{route.HandlerFunc}
		if route.Admin && handleFunctions.AdminGate != nil {
			handlers = append([]gin.HandlerFunc{handleFunctions.AdminGate}, handlers...)
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, handlers...)
		case http.MethodPost:
			router.POST(route.Pattern, handlers...)
		case http.MethodPut:
			router.PUT(route.Pattern, handlers...)
		case http.MethodPatch:
			router.PATCH(route.Pattern, handlers...)
		case http.MethodDelete:
			router.DELETE(route.Pattern, handlers...)
		}
	}
	return router
}

// Default handler for not yet implemented routes
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// Healthz reports liveness.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type ApiHandleFunctions struct {
	// Routes for the catalog part of the API
	CatalogAPI CatalogAPI
	// Routes for the order intake and tracking part of the API
	OrderAPI OrderAPI
	// Routes for the admin order screens
	AdminAPI AdminAPI
	// AdminGate guards every /api/admin route; nil leaves them open.
	AdminGate gin.HandlerFunc
	// Metrics, when set, instruments requests and serves /metrics.
	Metrics *metrics.ServerMetrics
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"ListProducts",
			http.MethodGet,
			"/api/products",
			handleFunctions.CatalogAPI.ListProducts,
			false,
		},
		{
			"GetProduct",
			http.MethodGet,
			"/api/products/:productId",
			handleFunctions.CatalogAPI.GetProduct,
			false,
		},
		{
			"PlaceOrder",
			http.MethodPost,
			"/api/orders",
			handleFunctions.OrderAPI.PlaceOrder,
			false,
		},
		{
			"TrackOrder",
			http.MethodGet,
			"/api/orders/:orderId",
			handleFunctions.OrderAPI.TrackOrder,
			false,
		},
		{
			"AdminListOrders",
			http.MethodGet,
			"/api/admin/orders",
			handleFunctions.AdminAPI.ListOrders,
			true,
		},
		{
			"AdminGetOrder",
			http.MethodGet,
			"/api/admin/orders/:orderId",
			handleFunctions.AdminAPI.GetOrder,
			true,
		},
		{
			"AdminUpdateOrderStatus",
			http.MethodPut,
			"/api/admin/orders/:orderId",
			handleFunctions.AdminAPI.UpdateOrderStatus,
			true,
		},
		{
			"AdminNotifyCustomer",
			http.MethodPost,
			"/api/admin/orders/:orderId/notify",
			handleFunctions.AdminAPI.NotifyCustomer,
			true,
		},
		{
			"AdminDashboard",
			http.MethodGet,
			"/api/admin/dashboard",
			handleFunctions.AdminAPI.Dashboard,
			true,
		},
		{
			"AdminListProducts",
			http.MethodGet,
			"/api/admin/products",
			handleFunctions.CatalogAPI.ListProducts,
			true,
		},
		{
			"AdminAddProduct",
			http.MethodPost,
			"/api/admin/products",
			handleFunctions.CatalogAPI.AddProduct,
			true,
		},
		{
			"AdminGetProduct",
			http.MethodGet,
			"/api/admin/products/:productId",
			handleFunctions.CatalogAPI.GetProduct,
			true,
		},
		{
			"AdminUpdateProduct",
			http.MethodPut,
			"/api/admin/products/:productId",
			handleFunctions.CatalogAPI.UpdateProduct,
			true,
		},
		{
			"AdminDeleteProduct",
			http.MethodDelete,
			"/api/admin/products/:productId",
			handleFunctions.CatalogAPI.DeleteProduct,
			true,
		},
	}
}
