package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"beautyshop/internal/config"
	"beautyshop/internal/http/handlers"
	applog "beautyshop/internal/log"
	"beautyshop/internal/metrics"
	"beautyshop/internal/repos"
)

const testAdminKey = "test-admin-key"

func testConfig() config.Config {
	return config.Config{
		Env:                "test",
		DBDSN:              ":memory:",
		AdminKey:           testAdminKey,
		BodyLimit:          1 << 20,
		RateLimitPerMinute: 1000,
		AlertConfig:        config.AlertConfig{LowStockThreshold: 5, ExpiryWindowDays: 7, SlowSellingDays: 14},
	}
}

// newApp builds the full app on an in-memory database with the demo catalog.
func newApp(t *testing.T, cfg config.Config) (*fiber.App, *handlers.Deps) {
	t.Helper()
	applog.Init(true, "debug", io.Discard)
	db, err := repos.OpenDB(cfg.DBDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, repos.SeedDemo(context.Background(), db))

	deps := handlers.NewDeps(db, cfg, metrics.New(prometheus.NewRegistry()))
	deps.AuthHandler.Customers.Cost = bcrypt.MinCost
	return handlers.NewApp(cfg, deps), deps
}

type reqOpt func(*http.Request)

func withAdmin(key string) reqOpt {
	return func(r *http.Request) { r.Header.Set(handlers.AdminKeyHeader, key) }
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, opts ...reqOpt) (*http.Response, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			rd = strings.NewReader(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			rd = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, o := range opts {
		o(req)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	var out map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}

func doList(t *testing.T, app *fiber.App, path string, opts ...reqOpt) []map[string]any {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	for _, o := range opts {
		o(req)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func register(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp, body := doJSON(t, app, "POST", "/api/auth/register", map[string]string{
		"name": "Ana", "email": email, "password": "Passw0rd!",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	return body["id"].(string)
}

type logEntry struct {
	Kind   string         `json:"kind"`
	Action string         `json:"action"`
	ReqID  string         `json:"req_id"`
	Path   string         `json:"path"`
	Status int            `json:"status"`
	Error  string         `json:"error"`
	Fields map[string]any `json:"fields"`
}

type lockedBuf struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf lockedBuf
	applog.Init(true, "debug", &buf)
	defer applog.Init(true, "debug", io.Discard)

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.b.String()), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findAction(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
