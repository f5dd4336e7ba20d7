package handlers

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/keyauth"

	"beautyshop/internal/apperr"
	applog "beautyshop/internal/log"
)

const AdminKeyHeader = "X-Admin-Key"

// RequireAdmin guards the back-office routes with a shared API key. With no
// key configured every admin request is refused.
func RequireAdmin(key string) fiber.Handler {
	want := sha256.Sum256([]byte(key))
	return keyauth.New(keyauth.Config{
		KeyLookup: "header:" + AdminKeyHeader,
		Validator: func(c *fiber.Ctx, got string) (bool, error) {
			h := sha256.Sum256([]byte(got))
			if key != "" && subtle.ConstantTimeCompare(h[:], want[:]) == 1 {
				return true, nil
			}
			return false, keyauth.ErrMissingOrMalformedAPIKey
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "access.denied.admin", map[string]any{"reason": err.Error()})
			return apperr.Unauthorized("admin key required")
		},
	})
}
