package log

import (
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

var base = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Init replaces the base logger. Production writes one JSON object per line;
// every other environment gets a console writer.
func Init(production bool, level string, out io.Writer) {
	if out == nil {
		out = os.Stdout
	}
	zerolog.TimeFieldFormat = time.RFC3339
	if !production {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05", NoColor: true}
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	base = zerolog.New(out).Level(lvl).With().Timestamp().Str("service", "beautyshop").Logger()
}

// L returns the base logger for code that runs outside a request.
func L() *zerolog.Logger { return &base }

func write(ev *zerolog.Event, level string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	ev = ev.Str("kind", level).Str("action", action)
	if c != nil {
		ev = ev.Str("ip", c.IP()).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode())
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			ev = ev.Str("req_id", rid)
		}
	}
	if err != nil {
		ev = ev.Err(err)
	}
	if len(fields) > 0 {
		ev = ev.Interface("fields", fields)
	}
	ev.Send()
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(base.Info(), "info", c, action, nil, fields)
}

func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write(base.Info(), "audit", c, action, nil, fields)
}

func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(base.Warn(), "security", c, action, nil, fields)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(base.Error(), "error", c, action, err, fields)
}

// Access logs one line per request once the handler chain has finished.
func Access() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		ev := base.Info()
		if err != nil {
			ev = base.Warn()
		}
		ev = ev.Str("kind", "access").
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Int64("latency_ms", time.Since(start).Milliseconds())
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			ev = ev.Str("req_id", rid)
		}
		ev.Send()
		return err
	}
}
