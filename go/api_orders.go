package storefrontserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	ordershttpmapper "github.com/freshharvest/harvest-api/internal/domains/orders/adapters/http/mapper"
	ordersports "github.com/freshharvest/harvest-api/internal/domains/orders/ports"
)

// IdempotencyKeyHeader lets a client retry order placement without ordering twice.
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderAPI serves the customer-facing order intake and tracking endpoints.
type OrderAPI struct {
	service ordersports.Service
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service ordersports.Service) OrderAPI {
	return OrderAPI{service: service}
}

// Post /api/orders
// Places a bulk order for one product
func (api *OrderAPI) PlaceOrder(c *gin.Context) {
	var payload ordershttpmapper.CreateOrder
	if err := c.ShouldBindJSON(&payload); err != nil {
		responder.BadRequest(c, err.Error())
		return
	}
	input := ordershttpmapper.ToCreateOrderInput(payload)
	input.IdempotencyKey = c.GetHeader(IdempotencyKeyHeader)
	order, err := api.service.CreateOrder(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Location", "/api/orders/"+order.ID)
	c.JSON(http.StatusCreated, ordershttpmapper.FromDomainOrder(order))
}

// Get /api/orders/:orderId
// Tracks an order by id
func (api *OrderAPI) TrackOrder(c *gin.Context) {
	id, ok := bindOrderID(c)
	if !ok {
		return
	}
	view, err := api.service.Track(c.Request.Context(), id)
	if err != nil {
		respondOrderError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, ordershttpmapper.FromTrackingView(view))
}

func respondOrderError(c *gin.Context, id string, err error) {
	if errors.Is(err, ordersports.ErrNotFound) {
		responder.NotFound(c, "order", id)
		return
	}
	respondError(c, err)
}
