package api

import (
	"fmt"
	"net/http"

	"aquapark/internal/cache"
	"aquapark/internal/config"
	"aquapark/internal/database"
	"aquapark/internal/external"
	"aquapark/internal/handlers"
	"aquapark/internal/logger"
	"aquapark/internal/messaging"
	"aquapark/internal/metrics"
	"aquapark/internal/middleware"
	"aquapark/internal/repository"
	"aquapark/internal/service"

	"github.com/gin-gonic/gin"
)

// Server is the HTTP API server with all its wiring
type Server struct {
	router   *gin.Engine
	config   *config.Config
	db       *database.DB
	redis    *cache.RedisClient
	nats     *messaging.NATSClient
	services *service.Services
	repos    *repository.Repositories
}

// NewServer connects the infrastructure and builds the router. Postgres is
// required; redis and NATS are optional and the server degrades without them.
func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	if err := db.RunMigrations(); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		logger.Get().Warn("Redis unavailable, auth and availability caching disabled", "error", err)
		redisClient = nil
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		logger.Get().Warn("NATS unavailable, domain events disabled", "error", err)
		natsClient = nil
	}

	paymentClient := external.NewMercadoPagoClient(cfg.MercadoPago)

	repos := repository.NewRepositories(db)

	services := service.NewServices(repos, paymentClient, natsClient, service.URLs{
		FrontendURL: cfg.FrontendURL,
		BackendURL:  cfg.BackendURL,
	})

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())

	server := &Server{
		router:   router,
		config:   cfg,
		db:       db,
		redis:    redisClient,
		nats:     natsClient,
		services: services,
		repos:    repos,
	}

	server.setupRoutes()

	return server
}

// setupRoutes wires all API routes
func (s *Server) setupRoutes() {
	h := handlers.NewHandlers(s.services, s.redis)

	api := s.router.Group("/api")
	{
		// Public storefront endpoints
		api.GET("/availability", h.CheckAvailability)
		api.GET("/ticket-types", h.ListTicketTypes)
		api.POST("/orders", h.CreateOrder)
		api.GET("/orders/:order_id", h.GetOrder)

		// Payment gateway webhook; authenticated by re-fetching the payment
		// from the gateway, not by the caller
		api.POST("/webhooks/mercadopago", h.OnPaymentNotification)

		// Gate staff endpoints
		staff := api.Group("/staff")
		staff.Use(middleware.StaffAuth(s.repos.Staff, s.redis))
		{
			staff.POST("/validate-ticket", h.ValidateTicket)
			staff.GET("/ticket-info/:ticket_code", h.TicketInfo)
		}

		// Admin endpoints
		admin := api.Group("/admin")
		admin.Use(middleware.StaffAuth(s.repos.Staff, s.redis))
		admin.Use(middleware.AdminOnly())
		{
			admin.GET("/ticket-availability", h.ListAvailability)
			admin.POST("/ticket-availability", h.CreateAvailability)
			admin.PUT("/ticket-availability/:date", h.UpdateAvailability)
			admin.DELETE("/ticket-availability/:date", h.DeleteAvailability)

			admin.GET("/orders", h.ListOrders)

			admin.GET("/ticket-types", h.ListAllTicketTypes)
			admin.POST("/ticket-types", h.CreateTicketType)
			admin.PUT("/ticket-types/:ticket_id", h.UpdateTicketType)
			admin.DELETE("/ticket-types/:ticket_id", h.DeleteTicketType)

			admin.GET("/staff", h.ListStaff)
			admin.POST("/staff", h.CreateStaff)
			admin.DELETE("/staff/:staff_id", h.DeleteStaff)
		}
	}

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(metrics.Handler()))
}

// healthCheck reports service and database pool health
func (s *Server) healthCheck(c *gin.Context) {
	dbHealth := s.db.HealthCheck(c.Request.Context())

	status := http.StatusOK
	if dbHealth.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":   dbHealth.Status,
		"service":  "aquapark-api",
		"database": dbHealth,
	})
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter returns the router for testing
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup closes the infrastructure connections
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			logger.Get().Error("Error closing NATS connection", "error", err)
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			logger.Get().Error("Error closing redis connection", "error", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			logger.Get().Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
