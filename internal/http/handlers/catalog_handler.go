package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"beautyshop/internal/apperr"
	applog "beautyshop/internal/log"
	"beautyshop/internal/services"
	"beautyshop/internal/validate"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

type productRequest struct {
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Price          *decimal.Decimal `json:"price"`
	CostPrice      *decimal.Decimal `json:"cost_price"`
	Quantity       *int             `json:"quantity"`
	ExpirationDate string           `json:"expiration_date"`
}

type serviceRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Duration    int              `json:"duration_minutes"`
}

// GET /api/products
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.Catalog.ListProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// GET /api/products/:id
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return failed(c, "product.get", apperr.Validation("id", "invalid product id"), nil)
	}
	p, err := h.Catalog.GetProduct(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(p)
}

// GET /api/services
func (h *CatalogHandler) ListServices(c *fiber.Ctx) error {
	list, err := h.Catalog.ListServices(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// POST /api/admin/products
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := bind(c, &req); err != nil {
		return failed(c, "admin.products.create", err, nil)
	}
	if req.Price == nil {
		return failed(c, "admin.products.create", apperr.Validation("price", "price is required"), nil)
	}
	in := services.NewProduct{
		Name:           req.Name,
		Description:    req.Description,
		Price:          *req.Price,
		CostPrice:      decimal.Zero,
		ExpirationDate: req.ExpirationDate,
	}
	if req.CostPrice != nil {
		in.CostPrice = *req.CostPrice
	}
	if req.Quantity != nil {
		in.Quantity = *req.Quantity
	}
	p, err := h.Catalog.CreateProduct(c.UserContext(), in)
	if err != nil {
		return failed(c, "admin.products.create", err, nil)
	}
	applog.Audit(c, "admin.products.create", map[string]any{"product_id": p.ID, "quantity": p.Quantity})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// POST /api/admin/services
func (h *CatalogHandler) CreateService(c *fiber.Ctx) error {
	var req serviceRequest
	if err := bind(c, &req); err != nil {
		return failed(c, "admin.services.create", err, nil)
	}
	if req.Price == nil {
		return failed(c, "admin.services.create", apperr.Validation("price", "price is required"), nil)
	}
	svc, err := h.Catalog.CreateService(c.UserContext(), services.NewService{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Duration:    req.Duration,
	})
	if err != nil {
		return failed(c, "admin.services.create", err, nil)
	}
	applog.Audit(c, "admin.services.create", map[string]any{"service_id": svc.ID})
	return c.Status(fiber.StatusCreated).JSON(svc)
}
