package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/aventra/activity-booking/internal/handler"    // import the handlers that implement booking logic
	"github.com/aventra/activity-booking/internal/middleware" // import middleware for bearer-token authentication
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers unauthenticated browse endpoints.  Seat
// availability is the hot read path of the service, so it sits behind the
// response cache middleware; every other route bypasses it.  The cache
// middleware may be nil when Redis is unavailable, in which case the route
// is served uncached.
func RegisterPublic(e *echo.Echo, av *handler.AvailabilityHandler, cache echo.MiddlewareFunc) {
	// Publicly view seat availability for one schedule slot of an event.
	// Seat status is derived from the stored seat states: FREE, BOOKED or
	// BLOCKED.  Authentication is not required so that guests can preview a
	// slot before registering and booking.
	if cache != nil {
		e.GET("/v1/events/:id/slots/:index/seats", av.SlotSeats, cache)
	} else {
		e.GET("/v1/events/:id/slots/:index/seats", av.SlotSeats)
	}
}

// RegisterBooking registers the reservation and cancellation endpoints.
// All routes in this group require a valid access token; the RequesterAuth
// middleware verifies the token signature and stores the requester id in
// the request context for the handlers to consume.  A rate limiter is
// applied to the whole group so one client cannot monopolize the seat
// guard.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	// Create a route group under /v1 for operations that act on behalf of
	// an authenticated requester.
	g := e.Group("/v1")
	// Apply the RequesterAuth middleware to the protected group using the
	// shared signing secret.
	g.Use(middleware.RequesterAuth(jwtSecret))
	if limiter != nil {
		g.Use(limiter)
	}
	// Book seats for a slot.  The body names the event, the slot index,
	// the requested seats and the contact details for the booking.
	g.POST("/bookings", b.Create)
	// List the requester's own bookings, newest first.
	g.GET("/my-bookings", b.List)
	// Fetch one booking by its code.  Lookups are scoped to the requester.
	g.GET("/bookings/:code", b.Get)
	// Cancel a booking by its code, releasing its seats when the
	// cancellation window still permits it.
	g.DELETE("/bookings/:code", b.Cancel)
}

// RegisterProvisioning registers the layout provisioning endpoint used by
// operators to materialize the addressable seat table for a slot.  It
// shares the RequesterAuth middleware with the booking group; operator
// tooling authenticates with the same token scheme.
func RegisterProvisioning(e *echo.Echo, l *handler.LayoutHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.RequesterAuth(jwtSecret))
	// Generate and persist the seat layout for one schedule slot.  The
	// operation is idempotent at the storage level: a second call for the
	// same slot returns 409 instead of duplicating seats.
	g.POST("/events/:id/slots/:index/layout", l.Provision)
}
