package storefrontserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cataloghttpmapper "github.com/freshharvest/harvest-api/internal/domains/catalog/adapters/http/mapper"
	catalogmemory "github.com/freshharvest/harvest-api/internal/domains/catalog/adapters/memory"
	"github.com/freshharvest/harvest-api/internal/domains/catalog/adapters/seed"
	catalogapp "github.com/freshharvest/harvest-api/internal/domains/catalog/application"
	orderscatalog "github.com/freshharvest/harvest-api/internal/domains/orders/adapters/catalog"
	ordershttpmapper "github.com/freshharvest/harvest-api/internal/domains/orders/adapters/http/mapper"
	ordersmemory "github.com/freshharvest/harvest-api/internal/domains/orders/adapters/memory"
	ordersnotify "github.com/freshharvest/harvest-api/internal/domains/orders/adapters/notify"
	ordersworkflows "github.com/freshharvest/harvest-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/freshharvest/harvest-api/internal/domains/orders/application"
	ordersdomain "github.com/freshharvest/harvest-api/internal/domains/orders/domain"
	ordersports "github.com/freshharvest/harvest-api/internal/domains/orders/ports"
	apierrors "github.com/freshharvest/harvest-api/internal/shared/errors"
	"github.com/freshharvest/harvest-api/internal/platform/metrics"
)

func newTestRouter(t *testing.T, adminToken string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalogService := catalogapp.NewService(catalogmemory.NewRepository(seed.Default()...))
	orderRepo := ordersmemory.NewRepository()
	_, err := orderRepo.SeedDemo(context.Background(), 48*time.Hour)
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)
	dispatcher := ordersworkflows.NewInlineNotifications(ordersnotify.NewLogNotifier(logger, "http://localhost:3000"), logger)
	t.Cleanup(dispatcher.Wait)
	orderService := ordersapp.NewService(orderRepo,
		ordersapp.WithCatalog(orderscatalog.NewResolver(catalogService)),
		ordersapp.WithNotifications(dispatcher),
		ordersapp.WithIdempotencyStore(ordersmemory.NewIdempotencyStore()),
		ordersapp.WithLogger(logger),
	)

	return NewRouterWithGinEngine(gin.New(), ApiHandleFunctions{
		CatalogAPI: NewCatalogAPI(catalogService),
		OrderAPI:   NewOrderAPI(orderService),
		AdminAPI:   NewAdminAPI(orderService),
		AdminGate:  AdminTokenGate(adminToken),
		Metrics:    metrics.NewServerMetrics("api", nil),
	})
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
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
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func problemFields(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	require.Equal(t, apierrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	problem := decode[apierrors.ProblemDetail](t, rec)
	fields, ok := problem.Extensions["fields"].(map[string]any)
	require.True(t, ok, rec.Body.String())
	return fields
}

func TestPlaceOrder_ResolvesProductAndStartsPending(t *testing.T) {
	router := newTestRouter(t, "")

	rec := doJSON(t, router, http.MethodPost, "/api/orders", map[string]any{
		"productId":    1,
		"quantity":     "25",
		"customerName": "John Doe",
		"contact":      "9876543210",
		"address":      "123 Main St",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	order := decode[ordershttpmapper.Order](t, rec)
	require.NotEmpty(t, order.ID)
	require.Equal(t, "Apples", order.ProductName)
	require.Equal(t, "Pending", order.Status)
	require.Equal(t, 25, order.Quantity)
	require.Equal(t, "/api/orders/"+order.ID, rec.Header().Get("Location"))

	tracked := doJSON(t, router, http.MethodGet, "/api/orders/"+order.ID, nil)
	require.Equal(t, http.StatusOK, tracked.Code)
}

func TestPlaceOrder_IdempotencyKey(t *testing.T) {
	router := newTestRouter(t, "")
	body := map[string]any{
		"productId":    1,
		"quantity":     "25",
		"customerName": "John Doe",
		"contact":      "9876543210",
		"address":      "123 Main St",
	}

	first := doJSON(t, router, http.MethodPost, "/api/orders", body, IdempotencyKeyHeader, "checkout-42")
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
	retry := doJSON(t, router, http.MethodPost, "/api/orders", body, IdempotencyKeyHeader, "checkout-42")
	require.Equal(t, http.StatusCreated, retry.Code)
	require.Equal(t, decode[ordershttpmapper.Order](t, first).ID, decode[ordershttpmapper.Order](t, retry).ID)

	body["quantity"] = "30"
	conflict := doJSON(t, router, http.MethodPost, "/api/orders", body, IdempotencyKeyHeader, "checkout-42")
	require.Equal(t, http.StatusConflict, conflict.Code, conflict.Body.String())
}

func TestPlaceOrder_ReportsEveryInvalidField(t *testing.T) {
	router := newTestRouter(t, "")

	rec := doJSON(t, router, http.MethodPost, "/api/orders", map[string]any{
		"productId":    "abc",
		"quantity":     "0",
		"customerName": "J",
		"contact":      "123",
		"email":        "not-an-email",
		"address":      "x",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	fields := problemFields(t, rec)
	for _, field := range []string{"productId", "quantity", "customerName", "contact", "email", "address"} {
		assert.Contains(t, fields, field)
	}
}

func TestPlaceOrder_UnknownProductIsValidationError(t *testing.T) {
	router := newTestRouter(t, "")

	rec := doJSON(t, router, http.MethodPost, "/api/orders", map[string]any{
		"productId":    999,
		"quantity":     10,
		"customerName": "John Doe",
		"contact":      "9876543210",
		"address":      "123 Main St",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, problemFields(t, rec), "productId")
}

func TestTrackOrder(t *testing.T) {
	router := newTestRouter(t, "")

	rec := doJSON(t, router, http.MethodGet, "/api/orders/def456", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[ordershttpmapper.Tracking](t, rec)
	require.Equal(t, "In Progress", view.Order.Status)
	require.Len(t, view.Steps, 3)
	require.True(t, view.Steps[1].Current)
	require.False(t, view.Steps[2].Reached)
	require.NotNil(t, view.EstimatedDelivery)

	missing := doJSON(t, router, http.MethodGet, "/api/orders/nope", nil)
	require.Equal(t, http.StatusNotFound, missing.Code)
	problem := decode[apierrors.ProblemDetail](t, missing)
	require.Equal(t, apierrors.TypeNotFound, problem.Type)
}

func TestAdminUpdateOrderStatus(t *testing.T) {
	router := newTestRouter(t, "")

	rec := doJSON(t, router, http.MethodPut, "/api/admin/orders/abc123", map[string]string{"status": "Delivered"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "Delivered", decode[ordershttpmapper.Order](t, rec).Status)

	again := doJSON(t, router, http.MethodPut, "/api/admin/orders/abc123", map[string]string{"status": "Delivered"})
	require.Equal(t, http.StatusOK, again.Code)

	read := doJSON(t, router, http.MethodGet, "/api/admin/orders/abc123", nil)
	require.Equal(t, "Delivered", decode[ordershttpmapper.Order](t, read).Status)

	invalid := doJSON(t, router, http.MethodPut, "/api/admin/orders/abc123", map[string]string{"status": "Shipped"})
	require.Equal(t, http.StatusBadRequest, invalid.Code)
	require.Contains(t, problemFields(t, invalid), "status")
	read = doJSON(t, router, http.MethodGet, "/api/admin/orders/abc123", nil)
	require.Equal(t, "Delivered", decode[ordershttpmapper.Order](t, read).Status)

	missing := doJSON(t, router, http.MethodPut, "/api/admin/orders/nope", map[string]string{"status": "Pending"})
	require.Equal(t, http.StatusNotFound, missing.Code)
}

func TestAdminListOrders_NewestFirstWithLimitAndStatus(t *testing.T) {
	router := newTestRouter(t, "")

	rec := doJSON(t, router, http.MethodGet, "/api/admin/orders?limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	orders := decode[[]ordershttpmapper.Order](t, rec)
	require.Len(t, orders, 2)
	require.Equal(t, "abc123", orders[0].ID)
	require.Equal(t, "def456", orders[1].ID)

	rec = doJSON(t, router, http.MethodGet, "/api/admin/orders?status=Delivered", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	orders = decode[[]ordershttpmapper.Order](t, rec)
	require.Len(t, orders, 2)
	require.Equal(t, "ghi789", orders[0].ID)
	require.Equal(t, "stu901", orders[1].ID)

	rec = doJSON(t, router, http.MethodGet, "/api/admin/orders?status=bogus", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/admin/orders?limit=ten", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminNotifyCustomer(t *testing.T) {
	router := newTestRouter(t, "")

	rec := doJSON(t, router, http.MethodPost, "/api/admin/orders/abc123/notify", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	receipt := decode[ordershttpmapper.NotificationReceipt](t, rec)
	require.Equal(t, "john@example.com", receipt.Recipient)
	require.Equal(t, "abc123", receipt.OrderID)

	missing := doJSON(t, router, http.MethodPost, "/api/admin/orders/nope/notify", nil)
	require.Equal(t, http.StatusNotFound, missing.Code)
}

func TestAdminDashboard(t *testing.T) {
	router := newTestRouter(t, "")

	rec := doJSON(t, router, http.MethodGet, "/api/admin/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	dashboard := decode[ordershttpmapper.Dashboard](t, rec)
	require.Equal(t, 7, dashboard.TotalOrders)
	require.Equal(t, 3, dashboard.OrdersByStatus["Pending"])
	require.Len(t, dashboard.RecentCustomers, 5)
}

func TestAdminTokenGate(t *testing.T) {
	router := newTestRouter(t, "s3cret")

	rec := doJSON(t, router, http.MethodGet, "/api/admin/dashboard", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/admin/dashboard", nil, AdminTokenHeader, "wrong")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/admin/dashboard", nil, AdminTokenHeader, "s3cret")
	require.Equal(t, http.StatusOK, rec.Code)

	public := doJSON(t, router, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, public.Code)
}

func TestListProducts(t *testing.T) {
	router := newTestRouter(t, "")

	rec := doJSON(t, router, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[cataloghttpmapper.ProductPage](t, rec)
	require.Len(t, page.Items, 8)
	require.Equal(t, 12, page.TotalItems)
	require.Equal(t, 2, page.TotalPages)

	rec = doJSON(t, router, http.MethodGet, "/api/products?search=APP&maxPrice=200", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page = decode[cataloghttpmapper.ProductPage](t, rec)
	require.Len(t, page.Items, 1)
	require.Equal(t, "Apples", page.Items[0].Name)

	rec = doJSON(t, router, http.MethodGet, "/api/products?minPrice=cheap", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, problemFields(t, rec), "minPrice")

	rec = doJSON(t, router, http.MethodGet, "/api/products?minPrice=500&maxPrice=100", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/products?page=1152921504606846978&pageSize=8", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestProductAdminLifecycle(t *testing.T) {
	router := newTestRouter(t, "")

	rec := doJSON(t, router, http.MethodPost, "/api/admin/products", map[string]any{"name": "Mangoes", "price": 180})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[cataloghttpmapper.Product](t, rec)
	require.Equal(t, int64(13), created.ID)

	rec = doJSON(t, router, http.MethodPut, "/api/admin/products/13", map[string]any{"name": "Alphonso Mangoes", "price": "210.50"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[cataloghttpmapper.Product](t, rec)
	require.Equal(t, "Alphonso Mangoes", updated.Name)
	require.Equal(t, "210.5", updated.Price.String())

	rec = doJSON(t, router, http.MethodPost, "/api/admin/products", map[string]any{"name": "Nothing"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, problemFields(t, rec), "price")

	rec = doJSON(t, router, http.MethodDelete, "/api/admin/products/13", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/products/13", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/products/zero", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthzAndMetrics(t *testing.T) {
	router := newTestRouter(t, "")

	rec := doJSON(t, router, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	_ = doJSON(t, router, http.MethodGet, "/api/products", nil)
	rec = doJSON(t, router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `harvest_api_http_requests_total{handler="/api/products"`)
}

// unreachableOrders fails every read the admin screens make.
type unreachableOrders struct {
	ordersports.Repository
}

func (unreachableOrders) GetByID(context.Context, string) (*ordersdomain.Order, error) {
	return nil, errors.New("connection refused")
}

func (unreachableOrders) List(context.Context) ([]*ordersdomain.Order, error) {
	return nil, errors.New("connection refused")
}

func TestAdminReads_StoreOutageIsRetryable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	orderService := ordersapp.NewService(unreachableOrders{})
	router := NewRouterWithGinEngine(gin.New(), ApiHandleFunctions{
		CatalogAPI: NewCatalogAPI(catalogapp.NewService(catalogmemory.NewRepository(seed.Default()...))),
		OrderAPI:   NewOrderAPI(orderService),
		AdminAPI:   NewAdminAPI(orderService),
		AdminGate:  AdminTokenGate(""),
	})

	for _, path := range []string{"/api/admin/orders", "/api/admin/orders/abc123", "/api/admin/dashboard", "/api/orders/abc123"} {
		rec := doJSON(t, router, http.MethodGet, path, nil)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code, path)
		problem := decode[apierrors.ProblemDetail](t, rec)
		assert.Equal(t, true, problem.Extensions["retryable"], path)
	}
}
