package handlers

import (
	"net/http"

	"aquapark/internal/models"
	"aquapark/internal/validation"

	"github.com/gin-gonic/gin"
)

// Orders handlers

// CreateOrder - POST /api/orders
// Create a pending order and a payment gateway checkout preference
func (h *Handlers) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	response, err := h.services.Orders.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, "Failed to create order")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetOrder - GET /api/orders/:order_id
// Fetch a single order by its public id
func (h *Handlers) GetOrder(c *gin.Context) {
	orderID := c.Param("order_id")

	order, err := h.services.Orders.Get(c.Request.Context(), orderID)
	if err != nil {
		h.respondError(c, err, "Failed to get order")
		return
	}

	c.JSON(http.StatusOK, order)
}
