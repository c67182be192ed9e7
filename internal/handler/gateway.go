package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hindih/gett-gpt-proxy/internal/service"
)

// GatewayHandler handles HTTP requests for the booking gateway.
type GatewayHandler struct {
	gateway *service.GatewayService
}

// NewGatewayHandler creates a new GatewayHandler.
func NewGatewayHandler(gateway *service.GatewayService) *GatewayHandler {
	return &GatewayHandler{gateway: gateway}
}

// Authenticate handles POST /auth
func (h *GatewayHandler) Authenticate(c *gin.Context) {
	raw, err := h.gateway.Authenticate(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", raw)
}

// BookRide handles POST /book_ride
func (h *GatewayHandler) BookRide(c *gin.Context) {
	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, service.ErrInvalidJSONBody)
		return
	}

	result, err := h.gateway.CreateBooking(c.Request.Context(), rawBody)
	if err != nil {
		respondError(c, err)
		return
	}

	relay(c, result)
}

// OrderStatus handles GET /order_status/:order_id
func (h *GatewayHandler) OrderStatus(c *gin.Context) {
	orderID := c.Param("order_id")

	result, err := h.gateway.GetOrderStatus(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	relay(c, result)
}
