package handlers

import (
	"github.com/gofiber/fiber/v2"

	"beautyshop/internal/apperr"
	applog "beautyshop/internal/log"
	"beautyshop/internal/services"
	"beautyshop/internal/validate"
)

type BookingHandler struct {
	Bookings *services.BookingService
}

type bookingRequest struct {
	CustomerID    string `json:"customer_id"`
	ServiceID     string `json:"service_id"`
	ScheduledTime string `json:"scheduled_time"`
}

// POST /api/bookings
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var req bookingRequest
	if err := bind(c, &req); err != nil {
		return failed(c, "booking.create", err, nil)
	}
	customerID, ok := validate.ID(req.CustomerID)
	if !ok {
		return failed(c, "booking.create", apperr.Validation("customer_id", "invalid customer id"), nil)
	}
	serviceID, ok := validate.ID(req.ServiceID)
	if !ok {
		return failed(c, "booking.create", apperr.Validation("service_id", "invalid service id"), nil)
	}
	at, ok := validate.Timestamp(req.ScheduledTime)
	if !ok {
		return failed(c, "booking.create", apperr.Validation("scheduled_time", "scheduled_time must be RFC 3339"), nil)
	}
	b, err := h.Bookings.Create(c.UserContext(), customerID, serviceID, at)
	if err != nil {
		return failed(c, "booking.create", err, map[string]any{"service_id": serviceID})
	}
	applog.Audit(c, "booking.create", map[string]any{"booking_id": b.ID, "service_id": b.ServiceID})
	return c.Status(fiber.StatusCreated).JSON(b)
}

func bookingID(c *fiber.Ctx) (string, error) {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return "", apperr.Validation("id", "invalid booking id")
	}
	return id, nil
}

// POST /api/admin/bookings/:id/status
func (h *BookingHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := bookingID(c)
	if err != nil {
		return failed(c, "admin.bookings.update", err, nil)
	}
	var req statusRequest
	if err := bind(c, &req); err != nil {
		return failed(c, "admin.bookings.update", err, nil)
	}
	b, err := h.Bookings.UpdateStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return failed(c, "admin.bookings.update", err, map[string]any{"booking_id": id, "status": req.Status})
	}
	applog.Audit(c, "admin.bookings.update", map[string]any{"booking_id": b.ID, "status": string(b.Status)})
	return c.JSON(b)
}

// POST /api/admin/bookings/:id/pay
func (h *BookingHandler) MarkPaid(c *fiber.Ctx) error {
	id, err := bookingID(c)
	if err != nil {
		return failed(c, "admin.bookings.pay", err, nil)
	}
	b, err := h.Bookings.MarkPaid(c.UserContext(), id)
	if err != nil {
		return failed(c, "admin.bookings.pay", err, map[string]any{"booking_id": id})
	}
	applog.Audit(c, "admin.bookings.pay", map[string]any{"booking_id": b.ID})
	return c.JSON(b)
}
