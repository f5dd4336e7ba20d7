package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"beautyshop/internal/apperr"
	"beautyshop/internal/domain"
	"beautyshop/internal/repos"
	"beautyshop/internal/validate"
)

// SalesService records point-of-sale transactions. Sales are independent of
// orders and take their own price, which may differ from the catalog price.
type SalesService struct {
	Store *repos.Store
	Now   func() time.Time
}

func NewSalesService(store *repos.Store) *SalesService {
	return &SalesService{Store: store, Now: time.Now}
}

func (s *SalesService) Record(ctx context.Context, productID string, qty int, price decimal.Decimal) (domain.ProductSale, error) {
	productID, ok := validate.ID(productID)
	if !ok {
		return domain.ProductSale{}, apperr.Validation("product_id", "invalid product id")
	}
	if !validate.Qty(qty) {
		return domain.ProductSale{}, apperr.Validation("quantity_sold", "quantity_sold must be between 1 and 1000")
	}
	if !validate.Money(price) {
		return domain.ProductSale{}, apperr.Validation("sale_price", "sale_price must be a non-negative amount")
	}

	sale := domain.ProductSale{
		ID:           uuid.NewString(),
		ProductID:    productID,
		QuantitySold: qty,
		SalePrice:    price,
		SaleDate:     domain.NewTimestamp(clock(s.Now)),
	}
	err := s.Store.Do(ctx, func(uow *repos.UnitOfWork) error {
		p, err := uow.Products.Get(ctx, productID)
		if err != nil {
			return lookupErr(err, "product", productID)
		}
		if p.Quantity < qty {
			return apperr.InsufficientStock(p.ID, qty, p.Quantity)
		}
		if err := uow.Products.Decrement(ctx, p.ID, qty); err != nil {
			if errors.Is(err, repos.ErrNoStock) {
				return apperr.InsufficientStock(p.ID, qty, p.Quantity)
			}
			return err
		}
		return uow.Sales.Insert(ctx, sale)
	})
	if err != nil {
		return domain.ProductSale{}, err
	}
	return sale, nil
}

func (s *SalesService) List(ctx context.Context, limit int) ([]domain.ProductSale, error) {
	return s.Store.Sales.ListLatest(ctx, limit)
}
