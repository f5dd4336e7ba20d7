package repos

import (
	"context"

	"beautyshop/internal/domain"
)

type ServiceRepo struct{ db Querier }

func NewServiceRepo(db Querier) *ServiceRepo { return &ServiceRepo{db: db} }

func (r *ServiceRepo) Create(ctx context.Context, s domain.Service) error {
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO services(id, name, description, price, duration_minutes, created_at)
	  VALUES(?, ?, ?, ?, ?, ?)
	`, s.ID, s.Name, s.Description, s.Price, s.Duration, s.CreatedAt)
	return err
}

func (r *ServiceRepo) Get(ctx context.Context, id string) (domain.Service, error) {
	var s domain.Service
	err := r.db.GetContext(ctx, &s, `
	  SELECT id, name, description, price, duration_minutes, created_at
	  FROM services WHERE id = ?`, id)
	return s, err
}

func (r *ServiceRepo) List(ctx context.Context) ([]domain.Service, error) {
	out := []domain.Service{}
	err := r.db.SelectContext(ctx, &out, `
	  SELECT id, name, description, price, duration_minutes, created_at
	  FROM services ORDER BY LOWER(name), id`)
	return out, err
}
