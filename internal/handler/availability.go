package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aventra/activity-booking/internal/inventory"
	"github.com/aventra/activity-booking/internal/model"
)

// AvailabilityHandler serves public, read-only seat availability views.
// No guard is taken for reads; clients see the last fully committed
// state of a slot.
type AvailabilityHandler struct {
	Workflow *inventory.Workflow
}

// NewAvailabilityHandler constructs an AvailabilityHandler.
func NewAvailabilityHandler(wf *inventory.Workflow) *AvailabilityHandler {
	if wf == nil {
		panic("nil workflow passed to NewAvailabilityHandler")
	}
	return &AvailabilityHandler{Workflow: wf}
}

// seatView is the wire shape of one seat in an availability response.
type seatView struct {
	Row    string         `json:"row"`
	Number uint32         `json:"number"`
	Type   model.SeatType `json:"type"`
	Status string         `json:"status"` // FREE, BOOKED or BLOCKED
}

// SlotSeats handles GET /v1/events/:id/slots/:index/seats.  It returns
// every seat of the slot's layout with its occupancy status, ordered
// by row then number.
func (h *AvailabilityHandler) SlotSeats(c echo.Context) error {
	eventID, err := pathUint(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation_error", "message": err.Error()})
	}
	slotIndex, err := pathIndex(c, "index")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation_error", "message": err.Error()})
	}

	seats, err := h.Workflow.SlotSeats(c.Request().Context(), eventID, slotIndex)
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found", "message": "event or slot not found"})
		}
		log.Printf("availability-handler: load failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal_error", "message": "failed to load seats"})
	}

	items := make([]seatView, 0, len(seats))
	free := 0
	for _, s := range seats {
		status := "FREE"
		switch {
		case s.IsBooked:
			status = "BOOKED"
		case s.IsBlocked:
			status = "BLOCKED"
		default:
			free++
		}
		items = append(items, seatView{Row: s.Row, Number: s.Number, Type: s.Type, Status: status})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"event_id":   eventID,
		"slot_index": slotIndex,
		"free":       free,
		"count":      len(items),
		"items":      items,
	})
}
