package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"beautyshop/internal/apperr"
	applog "beautyshop/internal/log"
	"beautyshop/internal/metrics"
	"beautyshop/internal/services"
	"beautyshop/internal/validate"
)

// AdminHandler serves the point-of-sale ledger and the reports.
type AdminHandler struct {
	Sales   *services.SalesService
	Reports *services.ReportService
	Metrics *metrics.Metrics
}

type saleRequest struct {
	ProductID    string           `json:"product_id"`
	QuantitySold int              `json:"quantity_sold"`
	SalePrice    *decimal.Decimal `json:"sale_price"`
}

// POST /api/admin/sales
func (h *AdminHandler) RecordSale(c *fiber.Ctx) error {
	var req saleRequest
	if err := bind(c, &req); err != nil {
		return failed(c, "admin.sales.record", err, nil)
	}
	if req.SalePrice == nil {
		return failed(c, "admin.sales.record", apperr.Validation("sale_price", "sale_price is required"), nil)
	}
	s, err := h.Sales.Record(c.UserContext(), req.ProductID, req.QuantitySold, *req.SalePrice)
	if err != nil {
		if apperr.Is(err, apperr.KindInsufficientStock) {
			h.Metrics.StockRejected("sale")
		}
		return failed(c, "admin.sales.record", err, map[string]any{"product_id": req.ProductID, "qty": req.QuantitySold})
	}
	h.Metrics.SaleRecorded()
	applog.Audit(c, "admin.sales.record", map[string]any{
		"sale_id":    s.ID,
		"product_id": s.ProductID,
		"qty":        s.QuantitySold,
		"price":      s.SalePrice.StringFixed(2),
	})
	return c.Status(fiber.StatusCreated).JSON(s)
}

// GET /api/admin/sales
func (h *AdminHandler) ListSales(c *fiber.Ctx) error {
	n, err := limit(c)
	if err != nil {
		return failed(c, "admin.sales.list", err, nil)
	}
	sales, err := h.Sales.List(c.UserContext(), n)
	if err != nil {
		return err
	}
	return c.JSON(sales)
}

// GET /api/admin/reports/sales
func (h *AdminHandler) SalesSummary(c *fiber.Ctx) error {
	s, err := h.Reports.SalesSummary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(s)
}

// GET /api/admin/reports/profit-loss?start=&end=
func (h *AdminHandler) ProfitLoss(c *fiber.Ctx) error {
	start, end, err := validate.Range(c.Query("start"), c.Query("end"))
	if err != nil {
		return failed(c, "admin.reports.profit_loss", err, nil)
	}
	pl, err := h.Reports.ProfitLoss(c.UserContext(), start, end)
	if err != nil {
		return failed(c, "admin.reports.profit_loss", err, nil)
	}
	return c.JSON(pl)
}

// GET /api/admin/summary
func (h *AdminHandler) Summary(c *fiber.Ctx) error {
	s, err := h.Reports.AdminSummary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(s)
}

// GET /api/admin/alerts?threshold=&days=
func (h *AdminHandler) Alerts(c *fiber.Ctx) error {
	threshold, err := optInt(c, "threshold")
	if err != nil {
		return failed(c, "admin.alerts", err, nil)
	}
	days, err := optInt(c, "days")
	if err != nil {
		return failed(c, "admin.alerts", err, nil)
	}
	a, err := h.Reports.ProductAlerts(c.UserContext(), threshold, days)
	if err != nil {
		return failed(c, "admin.alerts", err, nil)
	}
	return c.JSON(a)
}
