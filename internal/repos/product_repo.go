package repos

import (
	"context"
	"errors"

	"beautyshop/internal/domain"
)

// ErrNoStock is returned by Decrement when the guarded update matched nothing.
var ErrNoStock = errors.New("insufficient stock")

type ProductRepo struct{ db Querier }

func NewProductRepo(db Querier) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `id, name, description, price, cost_price, quantity, expiration_date, created_at`

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) error {
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO products(`+productCols+`)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Description, p.Price, p.CostPrice, p.Quantity, p.ExpirationDate, p.CreatedAt)
	return err
}

// Get returns sql.ErrNoRows when the product does not exist.
func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.SelectContext(ctx, &out, `SELECT `+productCols+` FROM products ORDER BY LOWER(name), id`)
	return out, err
}

// Decrement atomically subtracts "by" units if enough stock exists.
func (r *ProductRepo) Decrement(ctx context.Context, id string, by int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET quantity = quantity - ?
		WHERE id = ? AND quantity >= ?
	`, by, id, by)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoStock
	}
	return nil
}

// Restock adds "by" units back. It reports false when the product is gone.
func (r *ProductRepo) Restock(ctx context.Context, id string, by int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE products SET quantity = quantity + ? WHERE id = ?`, by, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
