package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aventra/activity-booking/internal/inventory"
	"github.com/aventra/activity-booking/internal/model"
)

// BookingPublisher announces committed bookings and cancellations to
// downstream consumers.  Publishing is best-effort: failures are
// logged and never fail the request.
type BookingPublisher interface {
	BookingConfirmed(ctx context.Context, b *model.Booking) error
	BookingCancelled(ctx context.Context, b *model.Booking) error
}

// BookingHandler exposes the reservation/cancellation workflow over
// HTTP.  All routes assume the JWT middleware has populated the
// requester id; a missing id yields 401.  The handler depends only on
// the workflow's typed results; transport callers never see storage
// detail.
type BookingHandler struct {
	Workflow  *inventory.Workflow
	Ledger    inventory.Ledger
	Publisher BookingPublisher // optional

	// Invalidate, when set, drops the cached seat view for a slot after
	// a booking or cancellation changes its availability.
	Invalidate func(ctx context.Context, eventID uint64, slotIndex int)
}

// NewBookingHandler constructs a BookingHandler.  Workflow and ledger
// must be non-nil; the publisher may be nil to disable messaging.
func NewBookingHandler(wf *inventory.Workflow, ledger inventory.Ledger, pub BookingPublisher) *BookingHandler {
	if wf == nil || ledger == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Workflow: wf, Ledger: ledger, Publisher: pub}
}

type bookingRequest struct {
	EventID   uint64            `json:"event_id"`
	SlotIndex int               `json:"slot_index"`
	Seats     []model.SeatID    `json:"seats"`
	Contact   model.ContactInfo `json:"contact"`
}

// Create handles POST /v1/bookings.  It books the requested seats of
// one schedule slot for the authenticated requester.  On a seat
// conflict the response lists exactly the unavailable seats so the
// caller can retry with an adjusted selection.
func (h *BookingHandler) Create(c echo.Context) error {
	requesterID, err := getRequesterID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation_error", "message": "invalid request body"})
	}
	if req.EventID == 0 || req.SlotIndex < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation_error", "message": "event_id and slot_index are required"})
	}

	ctx := c.Request().Context()
	booking, err := h.Workflow.BookSeats(ctx, req.EventID, req.SlotIndex, req.Seats, requesterID, req.Contact)
	if err != nil {
		return writeWorkflowError(c, err)
	}

	if h.Publisher != nil {
		// Best-effort; the booking is already committed.
		_ = h.Publisher.BookingConfirmed(ctx, booking)
	}
	if h.Invalidate != nil {
		h.Invalidate(ctx, booking.EventID, booking.SlotIndex)
	}
	return c.JSON(http.StatusCreated, booking)
}

// List handles GET /v1/my-bookings and returns the requester's
// bookings, newest first.
func (h *BookingHandler) List(c echo.Context) error {
	requesterID, err := getRequesterID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Ledger.ListByRequester(c.Request().Context(), requesterID)
	if err != nil {
		log.Printf("booking-handler: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal_error", "message": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/bookings/:code.  Lookups are scoped to the
// requester: a booking owned by someone else is indistinguishable from
// a missing one.
func (h *BookingHandler) Get(c echo.Context) error {
	requesterID, err := getRequesterID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	code := c.Param("code")
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation_error", "message": "booking code is required"})
	}
	booking, err := h.Ledger.ByCode(c.Request().Context(), code, requesterID)
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found", "message": "booking not found"})
		}
		log.Printf("booking-handler: get failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal_error", "message": "failed to load booking"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": booking})
}

// Cancel handles DELETE /v1/bookings/:code.  Cancellation releases the
// booking's seats and marks the ledger entry cancelled, subject to the
// cancellation window policy.
func (h *BookingHandler) Cancel(c echo.Context) error {
	requesterID, err := getRequesterID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	code := c.Param("code")
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation_error", "message": "booking code is required"})
	}

	ctx := c.Request().Context()
	booking, err := h.Workflow.CancelBooking(ctx, code, requesterID)
	if err != nil {
		return writeWorkflowError(c, err)
	}

	if h.Publisher != nil {
		_ = h.Publisher.BookingCancelled(ctx, booking)
	}
	if h.Invalidate != nil {
		h.Invalidate(ctx, booking.EventID, booking.SlotIndex)
	}
	return c.JSON(http.StatusOK, echo.Map{"cancelled": true, "booking_code": booking.Code})
}

// writeWorkflowError translates the workflow's error taxonomy into
// stable machine-readable responses.  Storage detail is never leaked:
// persistence failures map to a generic message.
func writeWorkflowError(c echo.Context, err error) error {
	var conflict *inventory.SeatConflictError
	var validation *inventory.ValidationError
	var policy *inventory.PolicyError
	var persistence *inventory.PersistenceError
	switch {
	case errors.As(err, &conflict):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":       "seat_conflict",
			"message":     "some seats are unavailable",
			"unavailable": conflict.Unavailable,
		})
	case errors.As(err, &validation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation_error", "message": validation.Reason})
	case errors.As(err, &policy):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "policy_error", "message": policy.Reason})
	case errors.Is(err, inventory.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found", "message": "not found"})
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "timeout", "message": "request timed out waiting for the slot"})
	case errors.As(err, &persistence):
		log.Printf("booking-handler: %v: %v", persistence, persistence.Unwrap())
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal_error", "message": "storage failure"})
	default:
		log.Printf("booking-handler: unexpected error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal_error", "message": "internal error"})
	}
}
