package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"beautyshop/internal/apperr"
	"beautyshop/internal/config"
	"beautyshop/internal/domain"
	"beautyshop/internal/repos"
)

type SalesSummary struct {
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	NetProfit    decimal.Decimal `json:"net_profit"`
}

type ProfitLoss struct {
	Start   *domain.Timestamp `json:"start"`
	End     *domain.Timestamp `json:"end"`
	Orders  int               `json:"orders"`
	Revenue decimal.Decimal   `json:"total_revenue"`
	Cost    decimal.Decimal   `json:"total_cost"`
	Profit  decimal.Decimal   `json:"net_profit"`
}

type AdminSummary struct {
	repos.Counts
	Revenue           SalesSummary  `json:"sales_summary"`
	MostSoldProduct   *repos.Ranked `json:"most_sold_product"`
	MostBookedService *repos.Ranked `json:"most_booked_service"`
}

type ProductAlerts struct {
	Threshold   int              `json:"threshold"`
	Days        int              `json:"days"`
	LowStock    []domain.Product `json:"low_stock"`
	NearExpiry  []domain.Product `json:"near_expiry"`
	SlowSelling []domain.Product `json:"slow_selling"`
}

// ReportService computes figures on demand; nothing is cached.
type ReportService struct {
	Store    *repos.Store
	Now      func() time.Time
	Defaults config.AlertConfig
}

func NewReportService(store *repos.Store, defaults config.AlertConfig) *ReportService {
	return &ReportService{Store: store, Now: time.Now, Defaults: defaults}
}

// SalesSummary totals every point-of-sale record against the products'
// current cost prices.
func (s *ReportService) SalesSummary(ctx context.Context) (SalesSummary, error) {
	lines, err := s.Store.Reports.SaleLines(ctx)
	if err != nil {
		return SalesSummary{}, err
	}
	out := SalesSummary{TotalRevenue: decimal.Zero, TotalCost: decimal.Zero}
	for _, l := range lines {
		q := decimal.NewFromInt(int64(l.QuantitySold))
		out.TotalRevenue = out.TotalRevenue.Add(l.SalePrice.Mul(q))
		out.TotalCost = out.TotalCost.Add(l.CostPrice.Mul(q))
	}
	out.NetProfit = out.TotalRevenue.Sub(out.TotalCost)
	return out, nil
}

// ProfitLoss covers completed orders only, priced at the snapshot taken when
// each order was placed.
func (s *ReportService) ProfitLoss(ctx context.Context, start, end *domain.Timestamp) (ProfitLoss, error) {
	if start != nil && end != nil && start.After(end.Time) {
		return ProfitLoss{}, apperr.Validation("start", "start must not be after end")
	}
	lines, err := s.Store.Reports.CompletedOrderLines(ctx, start, end)
	if err != nil {
		return ProfitLoss{}, err
	}
	out := ProfitLoss{Start: start, End: end, Revenue: decimal.Zero, Cost: decimal.Zero}
	seen := make(map[string]struct{})
	for _, l := range lines {
		q := decimal.NewFromInt(int64(l.Quantity))
		out.Revenue = out.Revenue.Add(l.Price.Mul(q))
		out.Cost = out.Cost.Add(l.CostPrice.Mul(q))
		seen[l.OrderID] = struct{}{}
	}
	out.Orders = len(seen)
	out.Profit = out.Revenue.Sub(out.Cost)
	return out, nil
}

func (s *ReportService) AdminSummary(ctx context.Context) (AdminSummary, error) {
	var out AdminSummary
	var err error
	if out.Counts, err = s.Store.Reports.Counts(ctx); err != nil {
		return AdminSummary{}, err
	}
	if out.Revenue, err = s.SalesSummary(ctx); err != nil {
		return AdminSummary{}, err
	}
	if out.MostSoldProduct, err = s.Store.Reports.MostSoldProduct(ctx); err != nil {
		return AdminSummary{}, err
	}
	if out.MostBookedService, err = s.Store.Reports.MostBookedService(ctx); err != nil {
		return AdminSummary{}, err
	}
	return out, nil
}

// ProductAlerts lists products that need attention. Nil threshold or days fall
// back to the configured defaults.
func (s *ReportService) ProductAlerts(ctx context.Context, threshold, days *int) (ProductAlerts, error) {
	out := ProductAlerts{Threshold: s.Defaults.LowStockThreshold, Days: s.Defaults.ExpiryWindowDays}
	if threshold != nil {
		if *threshold < 0 {
			return ProductAlerts{}, apperr.Validation("threshold", "threshold cannot be negative")
		}
		out.Threshold = *threshold
	}
	if days != nil {
		if *days < 0 {
			return ProductAlerts{}, apperr.Validation("days", "days cannot be negative")
		}
		out.Days = *days
	}
	slowDays := s.Defaults.SlowSellingDays
	if slowDays < 1 {
		slowDays = 14
	}

	now := clock(s.Now).UTC()
	var err error
	if out.LowStock, err = s.Store.Reports.LowStock(ctx, out.Threshold); err != nil {
		return ProductAlerts{}, err
	}
	cutoff := now.AddDate(0, 0, out.Days).Format(domain.DateLayout)
	if out.NearExpiry, err = s.Store.Reports.ExpiringBy(ctx, cutoff); err != nil {
		return ProductAlerts{}, err
	}
	since := domain.NewTimestamp(now.AddDate(0, 0, -slowDays))
	if out.SlowSelling, err = s.Store.Reports.NotSoldSince(ctx, since); err != nil {
		return ProductAlerts{}, err
	}
	return out, nil
}
