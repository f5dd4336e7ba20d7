package validate_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beautyshop/internal/apperr"
	"beautyshop/internal/validate"
)

func TestFieldValidators(t *testing.T) {
	t.Parallel()

	_, ok := validate.Email("ana@shop.test")
	assert.True(t, ok)
	_, ok = validate.Email("ana@")
	assert.False(t, ok)

	assert.True(t, validate.Password("Passw0rd!"))
	assert.False(t, validate.Password("password"))

	_, ok = validate.ID("prod-argan-oil")
	assert.True(t, ok)
	_, ok = validate.ID("../etc")
	assert.False(t, ok)

	assert.True(t, validate.Qty(1))
	assert.False(t, validate.Qty(0))
	assert.False(t, validate.Qty(validate.MaxQty+1))

	assert.True(t, validate.Money(decimal.RequireFromString("19.99")))
	assert.False(t, validate.Money(decimal.RequireFromString("-1")))
	assert.False(t, validate.Money(decimal.RequireFromString("1.999")))
	assert.True(t, validate.Money(decimal.RequireFromString("19.990")))

	_, ok = validate.Date("2026-02-30")
	assert.False(t, ok)
}

func TestMoneyRejectsExtremeValues(t *testing.T) {
	t.Parallel()

	start := time.Now()
	for _, raw := range []string{"1e50000000", "1e-50000000", "-1e50000000", "1e9", "1000000000.00", "0.0000000000001"} {
		assert.False(t, validate.Money(decimal.RequireFromString(raw)), raw)
	}
	assert.True(t, validate.Money(decimal.RequireFromString("999999999.99")))
	assert.True(t, validate.Money(decimal.RequireFromString("5e2")))
	assert.True(t, validate.Money(decimal.Zero))
	assert.Less(t, time.Since(start), time.Second)
}

func TestRange(t *testing.T) {
	t.Parallel()

	from, to, err := validate.Range("2026-01-01", "2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), from.Time)
	assert.Equal(t, time.Date(2026, 1, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC), to.Time)

	from, to, err = validate.Range("", "2026-01-31T10:00:00+02:00")
	require.NoError(t, err)
	assert.Nil(t, from)
	assert.Equal(t, 8, to.Hour())

	_, _, err = validate.Range("yesterday", "")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, _, err = validate.Range("2026-02-01", "2026-01-01")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}
