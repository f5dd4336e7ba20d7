package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodyLimit(t *testing.T) {
	cfg := testConfig()
	cfg.BodyLimit = 1024
	app, _ := newApp(t, cfg)

	big := bytes.Repeat([]byte("a"), 4096)
	req := httptest.NewRequest("POST", "/api/orders", bytes.NewReader(append(append([]byte(`{"customer_id":"`), big...), []byte(`"}`)...)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		// The in-memory test client refuses oversized bodies before the
		// server answers; either outcome means the limit held.
		require.Contains(t, err.Error(), "body size exceeds the given limit")
		return
	}
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestGlobalRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitPerMinute = 3
	app, _ := newApp(t, cfg)

	codes := make([]int, 0, 5)
	entries := captureLogs(t, func() {
		for i := 0; i < 5; i++ {
			resp, _ := doJSON(t, app, "GET", "/api/services", nil)
			codes = append(codes, resp.StatusCode)
		}
	})
	assert.Equal(t, []int{200, 200, 200, 429, 429}, codes)
	_, ok := findAction(entries, "rate.global.hit")
	assert.True(t, ok)

	// Health and metrics stay reachable.
	resp, body := doJSON(t, app, "GET", "/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["ok"])
}
