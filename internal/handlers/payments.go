package handlers

import (
	"log/slog"
	"net/http"

	"aquapark/internal/models"

	"github.com/gin-gonic/gin"
)

// Payments handlers

// OnPaymentNotification - POST /api/webhooks/mercadopago
// Webhook receiver for payment gateway notifications. Always answers 200 so
// the gateway does not keep retrying on permanent failures; processing
// problems are reported as a soft error in the body.
func (h *Handlers) OnPaymentNotification(c *gin.Context) {
	var payload models.PaymentNotificationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		slog.Warn("Malformed payment notification", "error", err)
		c.JSON(http.StatusOK, models.WebhookResponse{Status: "error", Message: "malformed payload"})
		return
	}

	if err := h.services.Orders.HandlePaymentNotification(c.Request.Context(), &payload); err != nil {
		slog.Error("Failed to handle payment notification", "error", err)
		c.JSON(http.StatusOK, models.WebhookResponse{Status: "error"})
		return
	}

	c.JSON(http.StatusOK, models.WebhookResponse{Status: "success"})
}
