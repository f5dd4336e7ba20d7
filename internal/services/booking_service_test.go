package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beautyshop/internal/apperr"
	"beautyshop/internal/domain"
	"beautyshop/internal/services"
)

func TestBookingLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.customer(t, "ana@shop.test")
	svc, err := f.catalog.CreateService(ctx, services.NewService{Name: "Facial", Price: dec("50"), Duration: 60})
	require.NoError(t, err)

	_, err = f.bookings.Create(ctx, c.ID, svc.ID, f.now.Add(-time.Hour))
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	_, err = f.bookings.Create(ctx, c.ID, "missing", f.now.Add(time.Hour))
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	b, err := f.bookings.Create(ctx, c.ID, svc.ID, f.now.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, domain.BookingScheduled, b.Status)
	assert.Equal(t, domain.PaymentUnpaid, b.PaymentStatus)

	b, err = f.bookings.MarkPaid(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, b.PaymentStatus)
	_, err = f.bookings.MarkPaid(ctx, b.ID)
	assert.True(t, apperr.Is(err, apperr.KindInvalidTransition))

	b, err = f.bookings.UpdateStatus(ctx, b.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, b.Status)
	_, err = f.bookings.UpdateStatus(ctx, b.ID, "cancelled")
	assert.True(t, apperr.Is(err, apperr.KindInvalidTransition))
	_, err = f.bookings.UpdateStatus(ctx, b.ID, "done")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestCancelledBookingCannotBePaid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.customer(t, "ana@shop.test")
	svc, err := f.catalog.CreateService(ctx, services.NewService{Name: "Facial", Price: dec("50")})
	require.NoError(t, err)

	b, err := f.bookings.Create(ctx, c.ID, svc.ID, f.now.Add(time.Hour))
	require.NoError(t, err)
	_, err = f.bookings.UpdateStatus(ctx, b.ID, "cancelled")
	require.NoError(t, err)
	_, err = f.bookings.MarkPaid(ctx, b.ID)
	assert.True(t, apperr.Is(err, apperr.KindInvalidTransition))
}
