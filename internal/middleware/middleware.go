package middleware

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"aquapark/internal/cache"
	"aquapark/internal/models"
	"aquapark/internal/repository"

	"github.com/gin-gonic/gin"
)

// Ctx key and helpers for the authenticated staff member.
// Unexported type to avoid collisions.

type ctxKey string

const staffKey ctxKey = "staff"

// Staff identifies the authenticated gate/admin employee on a request.
type Staff struct {
	ID   int64
	Name string
	Role string
}

func ContextWithStaff(ctx context.Context, staff Staff) context.Context {
	return context.WithValue(ctx, staffKey, staff)
}

func StaffFromContext(ctx context.Context) (Staff, bool) {
	v := ctx.Value(staffKey)
	if v == nil {
		return Staff{}, false
	}
	staff, ok := v.(Staff)
	return staff, ok
}

// CORS middleware for browser storefront requests
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}

		c.Next()
	}
}

// Logger middleware for structured request logging
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)

		logFields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status_code", c.Writer.Status(),
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		if staff, ok := StaffFromContext(c.Request.Context()); ok {
			logFields = append(logFields, "staff_id", staff.ID)
		}

		if c.Writer.Status() >= 400 {
			if len(c.Errors) > 0 {
				logFields = append(logFields, "error", c.Errors.String())
			}
			slog.Error("Request completed with error", logFields...)
		}
	}
}

// Recovery middleware converts panics into a 500 with detailed logging
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		slog.Error("PANIC recovered",
			"panic", recovered,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"client_ip", c.ClientIP(),
		)

		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
	})
}

// StaffAuth authenticates staff by HTTP Basic Auth, checking the redis cache
// first and falling back to the database.
func StaffAuth(staffRepo *repository.StaffRepository, redisClient *cache.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, password, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", "Basic realm=\"Restricted\"")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		ctx := c.Request.Context()

		hash := sha256.Sum256([]byte(password))
		passwordHash := fmt.Sprintf("%x", hash)

		if redisClient != nil {
			if staff, err := redisClient.GetStaffByAuth(ctx, email, passwordHash); err == nil && staff.IsActive {
				setStaff(c, staff)
				c.Next()
				return
			}
		}

		staff, err := staffRepo.GetByEmail(ctx, email)
		if err != nil || staff == nil || !staff.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		if staff.PasswordHash == "" || passwordHash != staff.PasswordHash {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		if redisClient != nil {
			if err := redisClient.SetStaffAuth(ctx, email, passwordHash, staff); err != nil {
				slog.Warn("Failed to cache staff auth", "error", err)
			}
		}

		setStaff(c, staff)
		c.Next()
	}
}

// AdminOnly requires an authenticated staff member with the admin role.
// Must run after StaffAuth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		staff, ok := StaffFromContext(c.Request.Context())
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if staff.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
			return
		}
		c.Next()
	}
}

func setStaff(c *gin.Context, staff *models.StaffUser) {
	s := Staff{ID: staff.StaffID, Name: staff.Name, Role: staff.Role}
	c.Set("staff_id", staff.StaffID)
	c.Request = c.Request.WithContext(ContextWithStaff(c.Request.Context(), s))
}
