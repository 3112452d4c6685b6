package server

import (
	"fmt"
	"net/http"
	"time"

	"atelier-store/internal/admin"
	"atelier-store/internal/cart"
	"atelier-store/internal/catalog"
	"atelier-store/internal/checkout"
	"atelier-store/internal/config"
	"atelier-store/internal/gateway"
	custommiddleware "atelier-store/internal/middleware"
	"atelier-store/internal/orders"
	"atelier-store/internal/store"
	"atelier-store/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, redisClient *redis.Client) (*Server, error) {
	router := chi.NewRouter()

	// Basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.Server.Env == "development"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.SessionMiddleware())

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Durable store and domain components
	kv := store.NewRedisStore(redisClient)
	catalogRepo := catalog.NewRepository(catalog.SeedProducts())
	orderStore := orders.NewStore()
	cartManager := cart.NewManager(kv, logger)

	cardGateway := &gateway.MockCardGateway{CheckoutURL: cfg.Payment.CardCheckoutURL}
	altCardGateway := &gateway.MockAltCardGateway{AuthorizationURL: cfg.Payment.AltCardAuthURL}
	cryptoGateway := &gateway.MockCryptoGateway{Orders: orderStore, Logger: logger}

	checkoutManager := checkout.NewManager(cartManager, checkout.Gateways{
		Card:    cardGateway,
		AltCard: altCardGateway,
		Crypto:  cryptoGateway,
	}, cfg.Payment.GatewayTimeout, logger)

	adminGuard, err := admin.NewGuard(kv, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.JWTSecret, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin guard: %w", err)
	}

	// Handlers
	catalogHandler := transport.NewCatalogHandler(catalogRepo, logger)
	cartHandler := transport.NewCartHandler(cartManager, catalogRepo, logger)
	checkoutHandler := transport.NewCheckoutHandler(checkoutManager, logger)
	paymentHandler := transport.NewPaymentHandler(cardGateway, altCardGateway, cryptoGateway, logger)
	adminHandler := transport.NewAdminHandler(adminGuard, catalogRepo, orderStore, logger)

	adminAuth := custommiddleware.AdminAuthMiddleware(adminGuard, logger)
	rateLimit := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
		Window:            cfg.RateLimit.Window,
		KeyPrefix:         "ratelimit:payments",
	}, logger)

	catalogHandler.RegisterRoutes(router)
	cartHandler.RegisterRoutes(router)
	checkoutHandler.RegisterRoutes(router)
	adminHandler.RegisterRoutes(router, adminAuth)

	// The mock gateway endpoints sit behind the rate limiter.
	router.Group(func(r chi.Router) {
		r.Use(rateLimit)
		paymentHandler.RegisterRoutes(r)
	})

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		redis:  redisClient,
	}

	return server, nil
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
