package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessLogCarriesRequestID(t *testing.T) {
	app, _ := newApp(t, testConfig())

	entries := captureLogs(t, func() {
		resp, _ := doJSON(t, app, "GET", "/api/products", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})
	var access []logEntry
	for _, e := range entries {
		if e.Kind == "access" {
			access = append(access, e)
		}
	}
	require.Len(t, access, 1)
	assert.Equal(t, "/api/products", access[0].Path)
	assert.Equal(t, http.StatusOK, access[0].Status)
	assert.NotEmpty(t, access[0].ReqID)
}
