package handlers

import (
	"github.com/jmoiron/sqlx"

	"beautyshop/internal/config"
	"beautyshop/internal/metrics"
	"beautyshop/internal/repos"
	"beautyshop/internal/services"
)

type Deps struct {
	Store   *repos.Store
	Metrics *metrics.Metrics

	AuthHandler    *AuthHandler
	CatalogHandler *CatalogHandler
	OrderHandler   *OrderHandler
	BookingHandler *BookingHandler
	AdminHandler   *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, m *metrics.Metrics) *Deps {
	store := repos.NewStore(db)

	catalogSvc := services.NewCatalogService(store)
	customerSvc := services.NewCustomerService(store)
	orderSvc := services.NewOrderService(store)
	bookingSvc := services.NewBookingService(store)
	salesSvc := services.NewSalesService(store)
	reportSvc := services.NewReportService(store, cfg.AlertConfig)

	return &Deps{
		Store:          store,
		Metrics:        m,
		AuthHandler:    &AuthHandler{Customers: customerSvc},
		CatalogHandler: &CatalogHandler{Catalog: catalogSvc},
		OrderHandler:   &OrderHandler{Orders: orderSvc, Metrics: m},
		BookingHandler: &BookingHandler{Bookings: bookingSvc},
		AdminHandler:   &AdminHandler{Sales: salesSvc, Reports: reportSvc, Metrics: m},
	}
}
