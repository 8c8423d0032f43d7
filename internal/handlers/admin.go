package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"aquapark/internal/models"
	"aquapark/internal/validation"

	"github.com/gin-gonic/gin"
)

// Admin handlers. All routes here run behind StaffAuth + AdminOnly.

// ListAvailability - GET /api/admin/ticket-availability
func (h *Handlers) ListAvailability(c *gin.Context) {
	records, err := h.services.Inventory.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to list availability")
		return
	}

	c.JSON(http.StatusOK, gin.H{"availability": records})
}

// CreateAvailability - POST /api/admin/ticket-availability
func (h *Handlers) CreateAvailability(c *gin.Context) {
	var req models.CreateAvailabilityRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	record, err := h.services.Inventory.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, "Failed to create availability")
		return
	}

	h.invalidateAvailability(c, req.Date)
	c.JSON(http.StatusCreated, record)
}

// UpdateAvailability - PUT /api/admin/ticket-availability/:date
func (h *Handlers) UpdateAvailability(c *gin.Context) {
	date := c.Param("date")

	var req models.UpdateAvailabilityRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	if err := h.services.Inventory.Update(c.Request.Context(), date, &req); err != nil {
		h.respondError(c, err, "Failed to update availability")
		return
	}

	h.invalidateAvailability(c, date)
	c.JSON(http.StatusOK, gin.H{"message": "availability updated"})
}

// DeleteAvailability - DELETE /api/admin/ticket-availability/:date
func (h *Handlers) DeleteAvailability(c *gin.Context) {
	date := c.Param("date")

	if err := h.services.Inventory.Delete(c.Request.Context(), date); err != nil {
		h.respondError(c, err, "Failed to delete availability")
		return
	}

	h.invalidateAvailability(c, date)
	c.JSON(http.StatusOK, gin.H{"message": "availability deleted"})
}

// ListOrders - GET /api/admin/orders?limit=N
func (h *Handlers) ListOrders(c *gin.Context) {
	limit := 100
	if l := c.Query("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed <= 0 || parsed > 1000 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 1000"})
			return
		}
		limit = parsed
	}

	orders, err := h.services.Orders.ListRecent(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err, "Failed to list orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// ListAllTicketTypes - GET /api/admin/ticket-types
// Includes inactive entries, unlike the public catalog
func (h *Handlers) ListAllTicketTypes(c *gin.Context) {
	tickets, err := h.services.Catalog.List(c.Request.Context(), false)
	if err != nil {
		h.respondError(c, err, "Failed to list ticket types")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ticket_types": tickets})
}

// CreateTicketType - POST /api/admin/ticket-types
func (h *Handlers) CreateTicketType(c *gin.Context) {
	var req models.CreateTicketTypeRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	ticket, err := h.services.Catalog.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, "Failed to create ticket type")
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

// UpdateTicketType - PUT /api/admin/ticket-types/:ticket_id
func (h *Handlers) UpdateTicketType(c *gin.Context) {
	ticketID := c.Param("ticket_id")

	var req models.UpdateTicketTypeRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	if err := h.services.Catalog.Update(c.Request.Context(), ticketID, &req); err != nil {
		h.respondError(c, err, "Failed to update ticket type")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ticket type updated"})
}

// DeleteTicketType - DELETE /api/admin/ticket-types/:ticket_id
func (h *Handlers) DeleteTicketType(c *gin.Context) {
	ticketID := c.Param("ticket_id")

	if err := h.services.Catalog.Delete(c.Request.Context(), ticketID); err != nil {
		h.respondError(c, err, "Failed to delete ticket type")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ticket type deleted"})
}

// ListStaff - GET /api/admin/staff
func (h *Handlers) ListStaff(c *gin.Context) {
	staffList, err := h.services.Staff.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to list staff")
		return
	}

	c.JSON(http.StatusOK, gin.H{"staff": staffList})
}

// CreateStaff - POST /api/admin/staff?role=admin|staff
func (h *Handlers) CreateStaff(c *gin.Context) {
	var req models.CreateStaffRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	role := c.DefaultQuery("role", models.RoleStaff)
	if role != models.RoleStaff && role != models.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be staff or admin"})
		return
	}

	staff, err := h.services.Staff.Create(c.Request.Context(), &req, role)
	if err != nil {
		h.respondError(c, err, "Failed to create staff")
		return
	}

	c.JSON(http.StatusCreated, staff)
}

// DeleteStaff - DELETE /api/admin/staff/:staff_id
func (h *Handlers) DeleteStaff(c *gin.Context) {
	staffID, err := strconv.ParseInt(c.Param("staff_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "staff_id must be an integer"})
		return
	}

	if err := h.services.Staff.Delete(c.Request.Context(), staffID); err != nil {
		h.respondError(c, err, "Failed to delete staff")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "staff deleted"})
}

func (h *Handlers) invalidateAvailability(c *gin.Context, date string) {
	if h.redisClient == nil {
		return
	}
	if err := h.redisClient.InvalidateAvailability(c.Request.Context(), date); err != nil {
		slog.Warn("Failed to invalidate availability cache", "error", err, "date", date)
	}
}
