package api

import (
	"fmt"
	"log"
	"net/http"

	"mentormatch/internal/cache"
	"mentormatch/internal/config"
	"mentormatch/internal/database"
	"mentormatch/internal/handlers"
	"mentormatch/internal/messaging"
	"mentormatch/internal/middleware"
	"mentormatch/internal/repository"
	"mentormatch/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server wires the HTTP API together
type Server struct {
	router    *gin.Engine
	config    *config.Config
	db        *database.DB
	nats      *messaging.NATSClient
	authCache *cache.AuthCache
	services  *service.Services
	repos     *repository.Repositories
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// NATS and Redis are best effort. The booking path publishes events
	// and caches credentials only when the clients are up.
	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		log.Printf("NATS unavailable, events disabled: %v", err)
		natsClient = nil
	}

	authCache, err := cache.NewAuthCache(cfg.Redis)
	if err != nil {
		log.Printf("Redis unavailable, auth cache disabled: %v", err)
		authCache = nil
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, natsClient, cfg.BookingTTL)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())

	server := &Server{
		router:    router,
		config:    cfg,
		db:        db,
		nats:      natsClient,
		authCache: authCache,
		services:  services,
		repos:     repos,
	}

	server.setupRoutes()

	return server
}

// setupRoutes registers all API routes
func (s *Server) setupRoutes() {
	h := handlers.NewHandlers(s.services)

	api := s.router.Group("/api")
	// All API routes require Basic Auth
	api.Use(middleware.BasicAuth(s.repos.Users, s.authCache))
	{
		offerings := api.Group("/offerings")
		{
			offerings.POST("", h.CreateOffering)
			offerings.GET("", h.ListOfferings)
			offerings.GET("/:id", h.GetOffering)
			offerings.GET("/:id/capacity", h.GetCapacity)
			offerings.POST("/:id/book", h.BookOffering)
		}

		users := api.Group("/users")
		{
			users.POST("/select-role", h.SelectRole)
			users.PATCH("/:id/register-mentor", h.RegisterMentor)
			users.GET("/:id/reservations", h.ListReservations)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.RequireAdmin(s.repos.Users))
		{
			admin.PATCH("/offerings/verify", h.VerifyOffering)
			admin.PATCH("/offerings/reject", h.RejectOffering)
			admin.PATCH("/reservations/review", h.ReviewReservation)
			admin.POST("/sweeps/expiry", h.RunExpirySweep)
			admin.POST("/sweeps/reconcile", h.RunStatusReconciliation)
		}
	}

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "mentormatch-api",
		"version": "1.0.0",
	})
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter exposes the router for tests
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Services exposes the service layer, used by the jobs binary
func (s *Server) Services() *service.Services {
	return s.services
}

// Cleanup closes connections
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			log.Printf("Error closing NATS connection: %v", err)
		}
	}

	if s.authCache != nil {
		if err := s.authCache.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			log.Printf("Error closing database connection: %v", err)
			return err
		}
	}

	return nil
}
