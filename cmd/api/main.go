package main

import (
	"context"
	"log"
	"time"

	"checkout-gateway/internal/core/cache"
	"checkout-gateway/internal/core/commerce"
	"checkout-gateway/internal/core/config"
	"checkout-gateway/internal/core/logger"
	"checkout-gateway/internal/core/server"
	addressadapter "checkout-gateway/internal/features/address/adapters"
	addresshandler "checkout-gateway/internal/features/address/handler"
	addressservice "checkout-gateway/internal/features/address/service"
	cartadapter "checkout-gateway/internal/features/cart/adapters"
	carthandler "checkout-gateway/internal/features/cart/handler"
	cartservice "checkout-gateway/internal/features/cart/service"
	checkoutadapter "checkout-gateway/internal/features/checkout/adapters"
	checkoutdomain "checkout-gateway/internal/features/checkout/domain"
	checkouthandler "checkout-gateway/internal/features/checkout/handler"
	checkoutservice "checkout-gateway/internal/features/checkout/service"
	sessionadapter "checkout-gateway/internal/features/session/adapters"
	sessionhandler "checkout-gateway/internal/features/session/handler"
	sessionservice "checkout-gateway/internal/features/session/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// @title Checkout Gateway API
// @version 1.0
// @description Checkout pricing and shipping-zone resolution gateway in front of the commerce API.
// @contact.name API Support
// @contact.email support@checkout-gateway.local
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	// Redis backs guest sessions, checkout state, and the location cache.
	redisCache, err := cache.NewRedisAdapter(cfg.Redis.URL)
	if err != nil {
		l.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisCache.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisCache.Ping(pingCtx); err != nil {
		l.Fatal("Redis ping failed", zap.Error(err))
	}
	l.Info("Redis connection verified")

	// Commerce API client and health check.
	commerceClient := commerce.NewClient(cfg.Commerce)
	if err := commerceClient.HealthCheck(pingCtx); err != nil {
		l.Fatal("Commerce API health check failed", zap.Error(err))
	}
	l.Info("Commerce API connection verified")

	// Session feature.
	tokenStore := sessionadapter.NewRedisTokenStore(redisCache)
	resolver := sessionservice.NewResolverService(tokenStore)
	sessionHdl := sessionhandler.NewSessionHandler(resolver)

	// Cart feature.
	cartProvider := cartadapter.NewCommerceCartAdapter(commerceClient)
	cartSvc := cartservice.NewCartService(cartProvider)
	cartHdl := carthandler.NewCartHandler(cartSvc, resolver)

	// Checkout feature: state, locations, orders, and the pipeline service.
	fallbackRates := checkoutdomain.RateTable{
		FreeShippingThreshold: cfg.Shipping.FreeShippingThreshold,
		InsideRate:            cfg.Shipping.InsideRate,
		OutsideRate:           cfg.Shipping.OutsideRate,
	}
	stateRepo := checkoutadapter.NewRedisStateRepository(redisCache)
	locationProvider := checkoutadapter.NewCommerceLocationAdapter(
		commerceClient, redisCache,
		time.Duration(cfg.Redis.LocationTTLSeconds)*time.Second,
		fallbackRates,
	)
	orderProvider := checkoutadapter.NewCommerceOrderAdapter(commerceClient)
	addressProvider := addressadapter.NewCommerceAddressAdapter(commerceClient)

	checkoutSvc := checkoutservice.NewCheckoutService(
		stateRepo, locationProvider, orderProvider, cartProvider, resolver, addressProvider)
	checkoutHdl := checkouthandler.NewCheckoutHandler(checkoutSvc, locationProvider, resolver)

	// Address feature; the checkout service keeps the selection consistent.
	addressSvc := addressservice.NewAddressService(addressProvider, checkoutSvc)
	addressHdl := addresshandler.NewAddressHandler(addressSvc)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	srv.App.Post("/session/guest", sessionHdl.CreateGuestSession)
	srv.App.Get("/cart", cartHdl.GetCart)
	srv.App.Get("/locations", checkoutHdl.Locations)
	srv.App.Get("/addresses", addressHdl.List)
	srv.App.Post("/addresses", addressHdl.Create)
	srv.App.Put("/addresses/:id", addressHdl.Update)
	srv.App.Delete("/addresses/:id", addressHdl.Delete)
	srv.App.Get("/checkout", checkoutHdl.GetState)
	srv.App.Patch("/checkout", checkoutHdl.UpdateState)
	srv.App.Post("/checkout/zone-events", checkoutHdl.ApplyZoneEvent)
	srv.App.Post("/checkout/select-address/:id", checkoutHdl.SelectAddress)
	srv.App.Get("/checkout/quote", checkoutHdl.Quote)
	srv.App.Post("/checkout/submit", checkoutHdl.Submit)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
