package storefrontserver

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	ordershttpmapper "github.com/freshharvest/harvest-api/internal/domains/orders/adapters/http/mapper"
	orderstypes "github.com/freshharvest/harvest-api/internal/domains/orders/application/types"
	ordersdomain "github.com/freshharvest/harvest-api/internal/domains/orders/domain"
	ordersports "github.com/freshharvest/harvest-api/internal/domains/orders/ports"
	apierrors "github.com/freshharvest/harvest-api/internal/shared/errors"
)

// AdminTokenHeader carries the static operator token.
const AdminTokenHeader = "X-Admin-Token"

// AdminAPI serves the operator order screens.
type AdminAPI struct {
	service ordersports.Service
}

// NewAdminAPI creates an AdminAPI backed by the provided order service.
func NewAdminAPI(service ordersports.Service) AdminAPI {
	return AdminAPI{service: service}
}

// Get /api/admin/orders
// Lists orders newest first, optionally bounded by limit and filtered by status
func (api *AdminAPI) ListOrders(c *gin.Context) {
	limit, ok := bindOptionalInt(c, "limit")
	if !ok {
		return
	}
	rawStatuses, ok := bindStringList(c, "status")
	if !ok {
		return
	}
	statuses := make([]ordersdomain.Status, 0, len(rawStatuses))
	for _, raw := range rawStatuses {
		status, err := ordersdomain.ParseStatus(raw)
		if err != nil {
			respondFieldError(c, "status", err.Error())
			return
		}
		statuses = append(statuses, status)
	}
	orders, err := api.service.RecentOrders(c.Request.Context(), orderstypes.RecentOrdersQuery{Limit: limit, Statuses: statuses})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordershttpmapper.FromDomainOrders(orders))
}

// Get /api/admin/orders/:orderId
// Find order by ID
func (api *AdminAPI) GetOrder(c *gin.Context) {
	id, ok := bindOrderID(c)
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondOrderError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, ordershttpmapper.FromDomainOrder(order))
}

// Put /api/admin/orders/:orderId
// Sets the order status
func (api *AdminAPI) UpdateOrderStatus(c *gin.Context) {
	id, ok := bindOrderID(c)
	if !ok {
		return
	}
	var payload ordershttpmapper.StatusUpdate
	if err := c.ShouldBindJSON(&payload); err != nil {
		responder.BadRequest(c, err.Error())
		return
	}
	order, err := api.service.UpdateOrderStatus(c.Request.Context(), id, payload.Status)
	if err != nil {
		respondOrderError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, ordershttpmapper.FromDomainOrder(order))
}

// Post /api/admin/orders/:orderId/notify
// E-mails the customer the current order status
func (api *AdminAPI) NotifyCustomer(c *gin.Context) {
	id, ok := bindOrderID(c)
	if !ok {
		return
	}
	receipt, err := api.service.NotifyCustomer(c.Request.Context(), id)
	if err != nil {
		respondOrderError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, ordershttpmapper.FromReceipt(receipt))
}

// Get /api/admin/dashboard
// Summarizes order activity
func (api *AdminAPI) Dashboard(c *gin.Context) {
	dashboard, err := api.service.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordershttpmapper.FromDashboard(dashboard))
}

// AdminTokenGate rejects admin requests whose X-Admin-Token does not match.
// An empty token leaves the admin routes open.
func AdminTokenGate(token string) gin.HandlerFunc {
	expected := []byte(strings.TrimSpace(token))
	return func(c *gin.Context) {
		if len(expected) == 0 {
			c.Next()
			return
		}
		provided := []byte(strings.TrimSpace(c.GetHeader(AdminTokenHeader)))
		if subtle.ConstantTimeCompare(provided, expected) != 1 {
			respondProblem(c, apierrors.ErrUnauthorized.WithDetail("missing or invalid "+AdminTokenHeader))
			return
		}
		c.Next()
	}
}
