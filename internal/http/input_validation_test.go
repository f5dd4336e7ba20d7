package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMalformedBodies(t *testing.T) {
	app, _ := newApp(t, testConfig())

	resp, body := doJSON(t, app, "POST", "/api/orders", `{"customer_id":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "validation_error", body["error"])

	req := httptest.NewRequest("POST", "/api/orders", strings.NewReader("customer_id=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, r.StatusCode)
}

func TestOrderInputValidation(t *testing.T) {
	app, _ := newApp(t, testConfig())
	cust := register(t, app, "ana@shop.test")

	cases := []struct {
		name    string
		body    map[string]any
		subject string
	}{
		{"no items", map[string]any{"customer_id": cust, "items": []any{}}, "items"},
		{"zero qty", map[string]any{"customer_id": cust, "items": []map[string]any{{"product_id": "prod-argan-oil", "quantity": 0}}}, "quantity"},
		{"huge qty", map[string]any{"customer_id": cust, "items": []map[string]any{{"product_id": "prod-argan-oil", "quantity": 1001}}}, "quantity"},
		{"bad product id", map[string]any{"customer_id": cust, "items": []map[string]any{{"product_id": "../x", "quantity": 1}}}, "product_id"},
		{"bad customer id", map[string]any{"customer_id": "a b", "items": []map[string]any{{"product_id": "prod-argan-oil", "quantity": 1}}}, "customer_id"},
	}
	entries := captureLogs(t, func() {
		for _, tc := range cases {
			resp, body := doJSON(t, app, "POST", "/api/orders", tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, tc.name)
			assert.Equal(t, tc.subject, body["subject"], tc.name)
		}
	})
	e, ok := findAction(entries, "order.place.fail")
	require.True(t, ok)
	assert.Equal(t, "security", e.Kind)

	resp, body := doJSON(t, app, "POST", "/api/orders", map[string]any{
		"customer_id": "ghost", "items": []map[string]any{{"product_id": "prod-argan-oil", "quantity": 1}},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "ghost", body["subject"])
}

func TestBookingInputValidation(t *testing.T) {
	app, _ := newApp(t, testConfig())
	cust := register(t, app, "ana@shop.test")

	resp, body := doJSON(t, app, "POST", "/api/bookings", map[string]string{
		"customer_id": cust, "service_id": "svc-haircut", "scheduled_time": "tomorrow",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "scheduled_time", body["subject"])

	resp, body = doJSON(t, app, "POST", "/api/bookings", map[string]string{
		"customer_id": cust, "service_id": "svc-haircut", "scheduled_time": "2001-01-01T10:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "scheduled_time", body["subject"])
}

func TestReportQueryValidation(t *testing.T) {
	app, _ := newApp(t, testConfig())
	admin := withAdmin(testAdminKey)

	for _, q := range []string{"start=yesterday", "end=2026-13-01", "start=2026-02-01&end=2026-01-01"} {
		resp, body := doJSON(t, app, "GET", "/api/admin/reports/profit-loss?"+q, nil, admin)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
		assert.Equal(t, "validation_error", body["error"], q)
	}
	for _, q := range []string{"threshold=abc", "days=-1", "threshold=-2"} {
		resp, _ := doJSON(t, app, "GET", "/api/admin/alerts?"+q, nil, admin)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
	}
	resp, _ := doJSON(t, app, "GET", "/api/admin/orders?limit=0", nil, admin)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdminMoneyInputValidation(t *testing.T) {
	app, _ := newApp(t, testConfig())
	admin := withAdmin(testAdminKey)

	resp, body := doJSON(t, app, "POST", "/api/admin/sales",
		`{"product_id":"prod-clay-mask","quantity_sold":1,"sale_price":1e50000000}`, admin)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "sale_price", body["subject"])

	resp, body = doJSON(t, app, "POST", "/api/admin/products",
		`{"name":"Rose Toner","price":"1e-50000000","cost_price":"4.00","quantity":8}`, admin)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "price", body["subject"])
}
