package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"aquapark/internal/cache"
	apperrors "aquapark/internal/errors"
	"aquapark/internal/service"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

type Handlers struct {
	services    *service.Services
	redisClient *cache.RedisClient
	validate    *validatorv10.Validate
}

func NewHandlers(services *service.Services, redisClient *cache.RedisClient) *Handlers {
	v := validatorv10.New()
	// Reuse the binding tags on the request models
	v.SetTagName("binding")

	return &Handlers{
		services:    services,
		redisClient: redisClient,
		validate:    v,
	}
}

// respondError maps domain errors onto HTTP responses. Unexpected errors
// (gateway failures included) become a generic 500; the detail only goes to
// the log.
func (h *Handlers) respondError(c *gin.Context, err error, msg string) {
	if ice, ok := apperrors.AsInsufficientCapacity(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     ice.Error(),
			"remaining": ice.Remaining,
		})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrGatewayNotConfigured):
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment gateway is not configured"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	default:
		slog.Error(msg, "error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
