package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"beautyshop/internal/config"
	"beautyshop/internal/domain"
	"beautyshop/internal/repos"
	"beautyshop/internal/services"
)

type fixture struct {
	store     *repos.Store
	now       time.Time
	orders    *services.OrderService
	sales     *services.SalesService
	customers *services.CustomerService
	catalog   *services.CatalogService
	bookings  *services.BookingService
	reports   *services.ReportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	f := &fixture{store: repos.NewStore(db), now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	clock := func() time.Time { return f.now }

	f.orders = services.NewOrderService(f.store)
	f.orders.Now = clock
	f.sales = services.NewSalesService(f.store)
	f.sales.Now = clock
	f.customers = services.NewCustomerService(f.store)
	f.customers.Cost = bcrypt.MinCost
	f.customers.Now = clock
	f.catalog = services.NewCatalogService(f.store)
	f.catalog.Now = clock
	f.bookings = services.NewBookingService(f.store)
	f.bookings.Now = clock
	f.reports = services.NewReportService(f.store, config.AlertConfig{
		LowStockThreshold: 5, ExpiryWindowDays: 7, SlowSellingDays: 14,
	})
	f.reports.Now = clock
	return f
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func (f *fixture) product(t *testing.T, name string, qty int, price, cost string) domain.Product {
	t.Helper()
	p, err := f.catalog.CreateProduct(context.Background(), services.NewProduct{
		Name: name, Price: dec(price), CostPrice: dec(cost), Quantity: qty,
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) customer(t *testing.T, email string) domain.Customer {
	t.Helper()
	c, err := f.customers.Register(context.Background(), "Ana", email, "Passw0rd!")
	require.NoError(t, err)
	return c
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.catalog.GetProduct(context.Background(), id)
	require.NoError(t, err)
	return p.Quantity
}
