package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beautyshop/internal/apperr"
)

func TestRecordSale(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Serum", 10, "20", "12")

	_, err := f.sales.Record(ctx, p.ID, 15, dec("18"))
	assert.True(t, apperr.Is(err, apperr.KindInsufficientStock))
	assert.Equal(t, 10, f.stock(t, p.ID))

	s, err := f.sales.Record(ctx, p.ID, 4, dec("18.50"))
	require.NoError(t, err)
	assert.Equal(t, 4, s.QuantitySold)
	assert.True(t, s.SalePrice.Equal(dec("18.5")))
	assert.True(t, s.SaleDate.Equal(f.now))
	assert.Equal(t, 6, f.stock(t, p.ID))

	_, err = f.sales.Record(ctx, "missing", 1, dec("1"))
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	_, err = f.sales.Record(ctx, p.ID, 0, dec("1"))
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	_, err = f.sales.Record(ctx, p.ID, 1, dec("-1"))
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	list, err := f.sales.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, s.ID, list[0].ID)
}
