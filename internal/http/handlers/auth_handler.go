package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "beautyshop/internal/log"
	"beautyshop/internal/services"
)

type AuthHandler struct {
	Customers *services.CustomerService
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return failed(c, "auth.register", err, nil)
	}
	cust, err := h.Customers.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return failed(c, "auth.register", err, map[string]any{"email": req.Email})
	}
	applog.Audit(c, "auth.register.success", map[string]any{"customer_id": cust.ID})
	return c.Status(fiber.StatusCreated).JSON(cust)
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return failed(c, "auth.login", err, nil)
	}
	cust, err := h.Customers.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return failed(c, "auth.login", err, map[string]any{"email": req.Email})
	}
	applog.Audit(c, "auth.login.success", map[string]any{"customer_id": cust.ID})
	return c.JSON(cust)
}
