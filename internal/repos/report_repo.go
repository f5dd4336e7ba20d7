package repos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"beautyshop/internal/domain"
)

// ReportRepo runs the read-only aggregation queries behind the reports.
type ReportRepo struct{ db Querier }

func NewReportRepo(db Querier) *ReportRepo { return &ReportRepo{db: db} }

type Counts struct {
	Products int `db:"products" json:"products"`
	Services int `db:"services" json:"services"`
	Bookings int `db:"bookings" json:"bookings"`
	Sales    int `db:"sales" json:"sales"`
}

func (r *ReportRepo) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	err := r.db.GetContext(ctx, &c, `
		SELECT
		  (SELECT COUNT(*) FROM products)      AS products,
		  (SELECT COUNT(*) FROM services)      AS services,
		  (SELECT COUNT(*) FROM bookings)      AS bookings,
		  (SELECT COUNT(*) FROM product_sales) AS sales
	`)
	return c, err
}

// SaleLine is one sale joined with the product's current cost price. A sale
// whose product no longer exists carries a zero cost.
type SaleLine struct {
	QuantitySold int             `db:"quantity_sold"`
	SalePrice    decimal.Decimal `db:"sale_price"`
	CostPrice    decimal.Decimal `db:"cost_price"`
}

func (r *ReportRepo) SaleLines(ctx context.Context) ([]SaleLine, error) {
	var out []SaleLine
	err := r.db.SelectContext(ctx, &out, `
		SELECT s.quantity_sold, s.sale_price, COALESCE(p.cost_price, '0') AS cost_price
		FROM product_sales s
		LEFT JOIN products p ON p.id = s.product_id
	`)
	return out, err
}

// OrderLine is one item of a completed order with its snapshot price and the
// product's current cost price.
type OrderLine struct {
	OrderID   string          `db:"order_id"`
	Quantity  int             `db:"quantity"`
	Price     decimal.Decimal `db:"price"`
	CostPrice decimal.Decimal `db:"cost_price"`
}

// CompletedOrderLines returns items of completed orders whose order_date
// lies in [start, end]; a nil bound is open.
func (r *ReportRepo) CompletedOrderLines(ctx context.Context, start, end *domain.Timestamp) ([]OrderLine, error) {
	where := `o.status = 'completed'`
	args := []any{}
	if start != nil {
		where += ` AND o.order_date >= ?`
		args = append(args, *start)
	}
	if end != nil {
		where += ` AND o.order_date <= ?`
		args = append(args, *end)
	}
	var out []OrderLine
	err := r.db.SelectContext(ctx, &out, `
		SELECT oi.order_id, oi.quantity, oi.price, COALESCE(p.cost_price, '0') AS cost_price
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE `+where+`
		ORDER BY o.order_date, oi.order_id, oi.position
	`, args...)
	return out, err
}

type Ranked struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Total int    `db:"total" json:"total"`
}

// MostSoldProduct ranks products by units sold. Ties go to the product whose
// first sale was recorded earliest. Nil when nothing has been sold.
func (r *ReportRepo) MostSoldProduct(ctx context.Context) (*Ranked, error) {
	return r.top(ctx, `
		SELECT s.product_id AS id, COALESCE(p.name, '') AS name, SUM(s.quantity_sold) AS total
		FROM product_sales s
		LEFT JOIN products p ON p.id = s.product_id
		GROUP BY s.product_id
		ORDER BY total DESC, MIN(s.rowid) ASC
		LIMIT 1
	`)
}

// MostBookedService ranks services by booking count, ties as above.
func (r *ReportRepo) MostBookedService(ctx context.Context) (*Ranked, error) {
	return r.top(ctx, `
		SELECT b.service_id AS id, COALESCE(sv.name, '') AS name, COUNT(*) AS total
		FROM bookings b
		LEFT JOIN services sv ON sv.id = b.service_id
		GROUP BY b.service_id
		ORDER BY total DESC, MIN(b.rowid) ASC
		LIMIT 1
	`)
}

func (r *ReportRepo) top(ctx context.Context, query string) (*Ranked, error) {
	var out Ranked
	if err := r.db.GetContext(ctx, &out, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *ReportRepo) LowStock(ctx context.Context, threshold int) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT `+productCols+` FROM products
		WHERE quantity <= ?
		ORDER BY quantity, LOWER(name)
	`, threshold)
	return out, err
}

// ExpiringBy returns products whose expiration date is on or before the
// given YYYY-MM-DD date, already expired ones included.
func (r *ReportRepo) ExpiringBy(ctx context.Context, date string) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT `+productCols+` FROM products
		WHERE expiration_date IS NOT NULL AND expiration_date <= ?
		ORDER BY expiration_date, LOWER(name)
	`, date)
	return out, err
}

// NotSoldSince returns products without any sale at or after since.
func (r *ReportRepo) NotSoldSince(ctx context.Context, since domain.Timestamp) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT `+productCols+` FROM products p
		WHERE NOT EXISTS (
		  SELECT 1 FROM product_sales s
		  WHERE s.product_id = p.id AND s.sale_date >= ?
		)
		ORDER BY LOWER(p.name)
	`, since)
	return out, err
}
