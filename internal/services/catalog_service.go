package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"beautyshop/internal/apperr"
	"beautyshop/internal/domain"
	"beautyshop/internal/repos"
	"beautyshop/internal/validate"
)

type NewProduct struct {
	Name           string
	Description    string
	Price          decimal.Decimal
	CostPrice      decimal.Decimal
	Quantity       int
	ExpirationDate string // optional, YYYY-MM-DD
}

type NewService struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Duration    int
}

type CatalogService struct {
	Store *repos.Store
	Now   func() time.Time
}

func NewCatalogService(store *repos.Store) *CatalogService {
	return &CatalogService{Store: store, Now: time.Now}
}

func (s *CatalogService) CreateProduct(ctx context.Context, in NewProduct) (domain.Product, error) {
	name, ok := validate.Name(in.Name)
	if !ok {
		return domain.Product{}, apperr.Validation("name", "name must be 1-100 characters")
	}
	if !validate.Money(in.Price) {
		return domain.Product{}, apperr.Validation("price", "price must be a non-negative amount")
	}
	if !validate.Money(in.CostPrice) {
		return domain.Product{}, apperr.Validation("cost_price", "cost_price must be a non-negative amount")
	}
	if in.Quantity < 0 {
		return domain.Product{}, apperr.Validation("quantity", "quantity cannot be negative")
	}
	p := domain.Product{
		ID:          uuid.NewString(),
		Name:        name,
		Description: in.Description,
		Price:       in.Price,
		CostPrice:   in.CostPrice,
		Quantity:    in.Quantity,
		CreatedAt:   domain.NewTimestamp(clock(s.Now)),
	}
	if in.ExpirationDate != "" {
		d, ok := validate.Date(in.ExpirationDate)
		if !ok {
			return domain.Product{}, apperr.Validation("expiration_date", "expiration_date must be YYYY-MM-DD")
		}
		p.ExpirationDate = &d
	}
	if err := s.Store.Products.Create(ctx, p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	p, err := s.Store.Products.Get(ctx, id)
	if err != nil {
		return domain.Product{}, lookupErr(err, "product", id)
	}
	return p, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.Store.Products.List(ctx)
}

func (s *CatalogService) CreateService(ctx context.Context, in NewService) (domain.Service, error) {
	name, ok := validate.Name(in.Name)
	if !ok {
		return domain.Service{}, apperr.Validation("name", "name must be 1-100 characters")
	}
	if !validate.Money(in.Price) {
		return domain.Service{}, apperr.Validation("price", "price must be a non-negative amount")
	}
	if in.Duration < 0 {
		return domain.Service{}, apperr.Validation("duration_minutes", "duration cannot be negative")
	}
	svc := domain.Service{
		ID:          uuid.NewString(),
		Name:        name,
		Description: in.Description,
		Price:       in.Price,
		Duration:    in.Duration,
		CreatedAt:   domain.NewTimestamp(clock(s.Now)),
	}
	if err := s.Store.Services.Create(ctx, svc); err != nil {
		return domain.Service{}, err
	}
	return svc, nil
}

func (s *CatalogService) GetService(ctx context.Context, id string) (domain.Service, error) {
	svc, err := s.Store.Services.Get(ctx, id)
	if err != nil {
		return domain.Service{}, lookupErr(err, "service", id)
	}
	return svc, nil
}

func (s *CatalogService) ListServices(ctx context.Context) ([]domain.Service, error) {
	return s.Store.Services.List(ctx)
}
