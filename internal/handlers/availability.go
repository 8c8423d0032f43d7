package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Availability and catalog handlers

const availabilityCacheTTL = 10 * time.Second

// CheckAvailability - GET /api/availability?date=YYYY-MM-DD&quantity=N
// Storefront pre-checkout capacity check. The default single-ticket answer is
// cached briefly; quantity-specific answers bypass the cache.
func (h *Handlers) CheckAvailability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	quantity := 1
	if q := c.Query("quantity"); q != "" {
		parsed, err := strconv.Atoi(q)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be a positive integer"})
			return
		}
		quantity = parsed
	}

	ctx := c.Request.Context()

	if quantity == 1 && h.redisClient != nil {
		if data, err := h.redisClient.GetAvailabilityRaw(ctx, date); err == nil {
			c.Data(http.StatusOK, "application/json", data)
			return
		}
	}

	response, err := h.services.Inventory.CheckAvailability(ctx, date, quantity)
	if err != nil {
		h.respondError(c, err, "Failed to check availability")
		return
	}

	if quantity == 1 && h.redisClient != nil {
		if err := h.redisClient.SetAvailability(ctx, date, response, availabilityCacheTTL); err != nil {
			slog.Warn("Failed to cache availability", "error", err, "date", date)
		}
	}

	c.JSON(http.StatusOK, response)
}

// ListTicketTypes - GET /api/ticket-types
// Public catalog of active ticket types for the storefront
func (h *Handlers) ListTicketTypes(c *gin.Context) {
	tickets, err := h.services.Catalog.List(c.Request.Context(), true)
	if err != nil {
		h.respondError(c, err, "Failed to list ticket types")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ticket_types": tickets})
}
