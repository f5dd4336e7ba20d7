package handlers

import (
	"github.com/gofiber/fiber/v2"

	"beautyshop/internal/apperr"
	"beautyshop/internal/domain"
	applog "beautyshop/internal/log"
	"beautyshop/internal/metrics"
	"beautyshop/internal/services"
	"beautyshop/internal/validate"
)

type OrderHandler struct {
	Orders  *services.OrderService
	Metrics *metrics.Metrics
}

type placeOrderRequest struct {
	CustomerID string              `json:"customer_id"`
	Items      []services.LineItem `json:"items"`
}

type statusRequest struct {
	Status string `json:"status"`
}

func orderID(c *fiber.Ctx) (string, error) {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return "", apperr.Validation("id", "invalid order id")
	}
	return id, nil
}

// POST /api/orders
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var req placeOrderRequest
	if err := bind(c, &req); err != nil {
		return failed(c, "order.place", err, nil)
	}
	o, err := h.Orders.Place(c.UserContext(), req.CustomerID, req.Items)
	if err != nil {
		if apperr.Is(err, apperr.KindInsufficientStock) {
			h.Metrics.StockRejected("order")
		}
		return failed(c, "order.place", err, map[string]any{"customer_id": req.CustomerID})
	}
	h.Metrics.OrderPlaced()
	applog.Audit(c, "order.place", map[string]any{
		"order_id":    o.ID,
		"customer_id": o.CustomerID,
		"total":       o.TotalPrice.StringFixed(2),
		"lines":       len(o.Items),
	})
	return c.Status(fiber.StatusCreated).JSON(o)
}

// GET /api/orders/:id
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, err := orderID(c)
	if err != nil {
		return failed(c, "order.get", err, nil)
	}
	o, err := h.Orders.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(o)
}

// POST /api/orders/:id/cancel
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	id, err := orderID(c)
	if err != nil {
		return failed(c, "order.cancel", err, nil)
	}
	o, err := h.Orders.Cancel(c.UserContext(), id)
	if err != nil {
		return failed(c, "order.cancel", err, map[string]any{"order_id": id})
	}
	h.Metrics.OrderCancelled("customer")
	applog.Audit(c, "order.cancel", map[string]any{"order_id": o.ID})
	return c.JSON(o)
}

// GET /api/customers/:id/orders
func (h *OrderHandler) ListByCustomer(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return failed(c, "orders.history", apperr.Validation("id", "invalid customer id"), nil)
	}
	orders, err := h.Orders.ListByCustomer(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

// GET /api/admin/orders
func (h *OrderHandler) ListLatest(c *fiber.Ctx) error {
	n, err := limit(c)
	if err != nil {
		return failed(c, "admin.orders.list", err, nil)
	}
	orders, err := h.Orders.ListLatest(c.UserContext(), n)
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

// POST /api/admin/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := orderID(c)
	if err != nil {
		return failed(c, "admin.orders.update", err, nil)
	}
	var req statusRequest
	if err := bind(c, &req); err != nil {
		return failed(c, "admin.orders.update", err, nil)
	}
	o, err := h.Orders.UpdateStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return failed(c, "admin.orders.update", err, map[string]any{"order_id": id, "status": req.Status})
	}
	if o.Status == domain.OrderCancelled {
		h.Metrics.OrderCancelled("admin")
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": o.ID, "status": string(o.Status)})
	return c.JSON(o)
}
