package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aventra/activity-booking/internal/inventory"
	"github.com/aventra/activity-booking/internal/repository"
)

// LayoutHandler provisions the seat grid of a schedule slot.  Catalog
// maintenance itself lives elsewhere; generating the occupancy table
// for a slot is part of the seat-inventory subsystem, so it is exposed
// here.  The row-band seat-type policy comes from configuration rather
// than being baked in.
type LayoutHandler struct {
	Events *repository.EventRepo
	Seats  *repository.SeatStateRepo
	Bands  inventory.RowBands
}

// NewLayoutHandler constructs a LayoutHandler.
func NewLayoutHandler(events *repository.EventRepo, seats *repository.SeatStateRepo, bands inventory.RowBands) *LayoutHandler {
	if events == nil || seats == nil {
		panic("nil repository passed to NewLayoutHandler")
	}
	return &LayoutHandler{Events: events, Seats: seats, Bands: bands}
}

// Provision handles POST /v1/events/:id/slots/:index/layout.  It
// generates the slot's seat grid from the event's venue dimensions and
// stores it with every seat free.  A slot whose layout already exists
// responds 409; generation happens once at event setup.
func (h *LayoutHandler) Provision(c echo.Context) error {
	if _, err := getRequesterID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := pathUint(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation_error", "message": err.Error()})
	}
	slotIndex, err := pathIndex(c, "index")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation_error", "message": err.Error()})
	}

	ctx := c.Request().Context()
	event, err := h.Events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found", "message": "event not found"})
		}
		log.Printf("layout-handler: event load failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal_error", "message": "failed to load event"})
	}
	if _, err := h.Events.Slot(ctx, eventID, slotIndex); err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found", "message": "schedule slot not found"})
		}
		log.Printf("layout-handler: slot load failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal_error", "message": "failed to load slot"})
	}

	key := inventory.SlotKey{EventID: eventID, SlotIndex: slotIndex}
	layout, err := inventory.GenerateLayout(key, event.Rows, event.SeatsPerRow, h.Bands)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation_error", "message": err.Error()})
	}
	if err := h.Seats.CreateLayoutBulk(ctx, layout); err != nil {
		if errors.Is(err, inventory.ErrAlreadyExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "conflict", "message": "layout already provisioned"})
		}
		log.Printf("layout-handler: layout insert failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal_error", "message": "failed to store layout"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"event_id":      eventID,
		"slot_index":    slotIndex,
		"rows":          layout.Rows,
		"seats_per_row": layout.SeatsPerRow,
		"seats":         len(layout.Seats),
	})
}
