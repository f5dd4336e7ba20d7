package repos

import (
	"context"

	"beautyshop/internal/domain"
)

// SaleRepo is append-only: sales are never updated or deleted.
type SaleRepo struct{ db Querier }

func NewSaleRepo(db Querier) *SaleRepo { return &SaleRepo{db: db} }

func (r *SaleRepo) Insert(ctx context.Context, s domain.ProductSale) error {
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO product_sales(id, product_id, quantity_sold, sale_price, sale_date)
	  VALUES(?, ?, ?, ?, ?)
	`, s.ID, s.ProductID, s.QuantitySold, s.SalePrice, s.SaleDate)
	return err
}

func (r *SaleRepo) ListLatest(ctx context.Context, limit int) ([]domain.ProductSale, error) {
	if limit <= 0 {
		limit = 100
	}
	out := []domain.ProductSale{}
	err := r.db.SelectContext(ctx, &out, `
	  SELECT id, product_id, quantity_sold, sale_price, sale_date
	  FROM product_sales
	  ORDER BY sale_date DESC, rowid DESC
	  LIMIT ?`, limit)
	return out, err
}
