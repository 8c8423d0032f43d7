package handlers

import (
	"net/http"

	"aquapark/internal/middleware"
	"aquapark/internal/models"
	"aquapark/internal/validation"

	"github.com/gin-gonic/gin"
)

// Staff gate handlers. All routes here run behind StaffAuth.

// ValidateTicket - POST /api/staff/validate-ticket
// One-time gate validation of a ticket code
func (h *Handlers) ValidateTicket(c *gin.Context) {
	var req models.ValidateTicketRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	staff, ok := middleware.StaffFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.services.Validation.ValidateTicket(c.Request.Context(), req.TicketCode, staff.ID, staff.Name)
	if err != nil {
		h.respondError(c, err, "Failed to validate ticket")
		return
	}

	c.JSON(http.StatusOK, result)
}

// TicketInfo - GET /api/staff/ticket-info/:ticket_code
// Read-only lookup, does not consume the ticket
func (h *Handlers) TicketInfo(c *gin.Context) {
	ticketCode := c.Param("ticket_code")

	summary, err := h.services.Validation.TicketInfo(c.Request.Context(), ticketCode)
	if err != nil {
		h.respondError(c, err, "Failed to get ticket info")
		return
	}

	c.JSON(http.StatusOK, summary)
}
