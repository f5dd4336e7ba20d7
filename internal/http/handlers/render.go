package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"beautyshop/internal/apperr"
	applog "beautyshop/internal/log"
)

const friendlyError = "Something went wrong. Please try again."

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Subject string `json:"subject,omitempty"`
}

// ErrorHandler turns errors returned by handlers into JSON. Internal errors
// are logged in full and reported to the client without detail.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if e, ok := apperr.As(err); ok && e.Kind != apperr.KindInternal {
		return c.Status(e.Status()).JSON(errorBody{Error: string(e.Kind), Message: e.Message, Subject: e.Subject})
	}
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return c.Status(fe.Code).JSON(errorBody{Error: kindForStatus(fe.Code), Message: fe.Message})
	}
	applog.Error(c, "server.error", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(errorBody{Error: string(apperr.KindInternal), Message: friendlyError})
}

func kindForStatus(code int) string {
	switch code {
	case fiber.StatusNotFound:
		return string(apperr.KindNotFound)
	case fiber.StatusUnauthorized:
		return string(apperr.KindUnauthorized)
	case fiber.StatusBadRequest:
		return string(apperr.KindValidation)
	case fiber.StatusTooManyRequests:
		return "rate_limited"
	}
	return strings.ReplaceAll(strings.ToLower(utils.StatusMessage(code)), " ", "_")
}

// bind decodes a JSON body. Anything that is not a JSON object is a
// validation error.
func bind(c *fiber.Ctx, dst any) error {
	if !strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEApplicationJSON) {
		return apperr.Validation("body", "expected an application/json body")
	}
	if err := c.BodyParser(dst); err != nil {
		return apperr.Validation("body", "malformed JSON body")
	}
	return nil
}

// optInt reads an optional integer query parameter.
func optInt(c *fiber.Ctx, name string) (*int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperr.Validation(name, name+" must be an integer")
	}
	return &n, nil
}

func limit(c *fiber.Ctx) (int, error) {
	n, err := optInt(c, "limit")
	if err != nil {
		return 0, err
	}
	if n == nil {
		return 100, nil
	}
	if *n < 1 || *n > 500 {
		return 0, apperr.Validation("limit", "limit must be between 1 and 500")
	}
	return *n, nil
}

// failed logs a rejected request and hands err on to ErrorHandler, which
// logs internal errors itself.
func failed(c *fiber.Ctx, action string, err error, fields map[string]any) error {
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindUnauthorized:
		if fields == nil {
			fields = map[string]any{}
		}
		if e, ok := apperr.As(err); ok {
			fields["field"] = e.Subject
		}
		applog.Security(c, action+".fail", fields)
	case apperr.KindInternal:
	default:
		if fields == nil {
			fields = map[string]any{}
		}
		fields["reason"] = string(apperr.KindOf(err))
		applog.Info(c, action+".reject", fields)
	}
	return err
}
