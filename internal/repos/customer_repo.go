package repos

import (
	"context"

	"beautyshop/internal/domain"
)

type CustomerRepo struct{ db Querier }

func NewCustomerRepo(db Querier) *CustomerRepo { return &CustomerRepo{db: db} }

// Create inserts a customer; a duplicate email fails the unique index.
func (r *CustomerRepo) Create(ctx context.Context, c domain.Customer) error {
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO customers(id, name, email, password_hash, created_at)
	  VALUES(?, ?, ?, ?, ?)
	`, c.ID, c.Name, c.Email, c.Hash, c.CreatedAt)
	return err
}

func (r *CustomerRepo) ByEmail(ctx context.Context, email string) (domain.Customer, error) {
	var c domain.Customer
	err := r.db.GetContext(ctx, &c, `
	  SELECT id, name, email, password_hash, created_at
	  FROM customers WHERE LOWER(email) = LOWER(?)`, email)
	return c, err
}

func (r *CustomerRepo) ByID(ctx context.Context, id string) (domain.Customer, error) {
	var c domain.Customer
	err := r.db.GetContext(ctx, &c, `
	  SELECT id, name, email, password_hash, created_at
	  FROM customers WHERE id = ?`, id)
	return c, err
}
