package main // Entry point package

import (
	"context"
	"log" // Logging library
	"time"

	"github.com/joho/godotenv"    // Loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/aventra/activity-booking/internal/config"   // Internal config loader
	"github.com/aventra/activity-booking/internal/database" // MySQL connection helper
	"github.com/aventra/activity-booking/internal/handler"
	"github.com/aventra/activity-booking/internal/inventory"
	"github.com/aventra/activity-booking/internal/middleware"
	"github.com/aventra/activity-booking/internal/queue"
	"github.com/aventra/activity-booking/internal/repository"
	"github.com/aventra/activity-booking/internal/router" // Internal router setup
	queue_publisher "github.com/aventra/activity-booking/internal/service"
)

func main() {
	_ = godotenv.Load() // Load .env when present; real env vars win

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: the rate limiter and the seat-view cache turn
	// into pass-throughs when the client comes back nil.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, cache and rate limiting disabled")
	}
	cacheCfg := config.LoadCacheConfig()
	rateCfg := config.LoadRateLimitConfig()

	// Storage adapters over the shared *sql.DB.
	events := repository.NewEventRepo(db)
	seats := repository.NewSeatStateRepo(db)
	bookings := repository.NewBookingRepo(db)

	// The workflow owns the per-slot guard and drives every seat-state
	// mutation through it.
	wf := inventory.NewWorkflow(events, seats, bookings, inventory.NewGuard(), queue_publisher.ReconcileSink{}, inventory.WorkflowConfig{
		CancelWindow:   cfg.CancelWindow,
		ReleaseRetries: cfg.ReleaseRetries,
	})

	bookingH := handler.NewBookingHandler(wf, bookings, queue_publisher.Publisher{})
	if rdb != nil {
		bookingH.Invalidate = func(ctx context.Context, eventID uint64, slotIndex int) {
			if err := middleware.InvalidateSlotSeats(ctx, rdb, cacheCfg, eventID, slotIndex); err != nil {
				log.Printf("cache: invalidate slot view failed: %v", err)
			}
		}
	}
	availabilityH := handler.NewAvailabilityHandler(wf)
	layoutH := handler.NewLayoutHandler(events, seats, inventory.RowBands{
		PremiumThrough: cfg.PremiumThrough,
		RegularThrough: cfg.RegularThrough,
	})

	// Consume booking events in the background; the consumer reconnects
	// on broker loss and never takes the server down with it.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	e := echo.New() // Create Echo instance
	e.HideBanner = true

	var cacheMW, limiterMW echo.MiddlewareFunc
	if rdb != nil {
		cacheMW = middleware.NewRedisCache(cacheCfg, rdb)
		limiterMW = middleware.NewTokenBucket(rateCfg, rdb)
	}

	router.RegisterRoutes(e) // Health check
	router.RegisterPublic(e, availabilityH, cacheMW)
	router.RegisterBooking(e, bookingH, cfg.JWTSecret, limiterMW)
	router.RegisterProvisioning(e, layoutH, cfg.JWTSecret)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	e.Server.ReadHeaderTimeout = 10 * time.Second
	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
