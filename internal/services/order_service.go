package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"beautyshop/internal/apperr"
	"beautyshop/internal/domain"
	applog "beautyshop/internal/log"
	"beautyshop/internal/repos"
	"beautyshop/internal/validate"
)

type LineItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type OrderService struct {
	Store *repos.Store
	Now   func() time.Time
}

func NewOrderService(store *repos.Store) *OrderService {
	return &OrderService{Store: store, Now: time.Now}
}

// mergeLines validates the requested lines and folds repeated products into
// one line, keeping the order in which products first appear.
func mergeLines(items []LineItem) ([]LineItem, error) {
	if len(items) == 0 {
		return nil, apperr.Validation("items", "at least one item is required")
	}
	out := make([]LineItem, 0, len(items))
	pos := make(map[string]int, len(items))
	for _, it := range items {
		id, ok := validate.ID(it.ProductID)
		if !ok {
			return nil, apperr.Validation("product_id", "invalid product id")
		}
		if !validate.Qty(it.Quantity) {
			return nil, apperr.Validation("quantity", "quantity must be between 1 and 1000")
		}
		if i, seen := pos[id]; seen {
			out[i].Quantity += it.Quantity
			if !validate.Qty(out[i].Quantity) {
				return nil, apperr.Validation("quantity", "quantity must be between 1 and 1000")
			}
			continue
		}
		pos[id] = len(out)
		out = append(out, LineItem{ProductID: id, Quantity: it.Quantity})
	}
	return out, nil
}

// Place checks every line against current stock before touching any of it,
// then snapshots prices, decrements stock and writes the order in one
// transaction. Any failure leaves the store unchanged.
func (s *OrderService) Place(ctx context.Context, customerID string, items []LineItem) (domain.Order, error) {
	customerID, ok := validate.ID(customerID)
	if !ok {
		return domain.Order{}, apperr.Validation("customer_id", "invalid customer id")
	}
	lines, err := mergeLines(items)
	if err != nil {
		return domain.Order{}, err
	}

	order := domain.Order{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		Status:     domain.OrderPending,
		OrderDate:  domain.NewTimestamp(clock(s.Now)),
		Items:      make([]domain.OrderItem, 0, len(lines)),
	}
	err = s.Store.Do(ctx, func(uow *repos.UnitOfWork) error {
		if _, err := uow.Customers.ByID(ctx, customerID); err != nil {
			return lookupErr(err, "customer", customerID)
		}

		products := make([]domain.Product, len(lines))
		for i, l := range lines {
			p, err := uow.Products.Get(ctx, l.ProductID)
			if err != nil {
				return lookupErr(err, "product", l.ProductID)
			}
			if p.Quantity < l.Quantity {
				return apperr.InsufficientStock(p.ID, l.Quantity, p.Quantity)
			}
			products[i] = p
		}

		total := decimal.Zero
		for i, l := range lines {
			if err := uow.Products.Decrement(ctx, l.ProductID, l.Quantity); err != nil {
				if errors.Is(err, repos.ErrNoStock) {
					return apperr.InsufficientStock(l.ProductID, l.Quantity, products[i].Quantity)
				}
				return err
			}
			item := domain.OrderItem{
				OrderID:   order.ID,
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				Price:     products[i].Price,
			}
			total = total.Add(item.Subtotal())
			order.Items = append(order.Items, item)
		}
		order.TotalPrice = total
		return uow.Orders.Create(ctx, order)
	})
	if err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

// UpdateStatus is the admin path. Completed and cancelled orders are final;
// moving a pending order to cancelled restocks its items.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, status string) (domain.Order, error) {
	next, ok := domain.ParseOrderStatus(status)
	if !ok {
		return domain.Order{}, apperr.Validation("status", "status must be pending, completed or cancelled")
	}
	var order domain.Order
	err := s.Store.Do(ctx, func(uow *repos.UnitOfWork) error {
		o, err := uow.Orders.Get(ctx, orderID)
		if err != nil {
			return lookupErr(err, "order", orderID)
		}
		if o.Status.Terminal() {
			return apperr.InvalidTransition("order", o.ID, string(o.Status), string(next))
		}
		switch next {
		case domain.OrderCancelled:
			if err := s.cancel(ctx, uow, &o); err != nil {
				return err
			}
		case o.Status:
		default:
			if err := uow.Orders.UpdateStatus(ctx, o.ID, next); err != nil {
				return err
			}
			o.Status = next
		}
		order = o
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

// Cancel is the customer path: only pending orders, and only within
// domain.CancellationWindow of placement.
func (s *OrderService) Cancel(ctx context.Context, orderID string) (domain.Order, error) {
	now := clock(s.Now)
	var order domain.Order
	err := s.Store.Do(ctx, func(uow *repos.UnitOfWork) error {
		o, err := uow.Orders.Get(ctx, orderID)
		if err != nil {
			return lookupErr(err, "order", orderID)
		}
		if o.Status.Terminal() {
			return apperr.InvalidTransition("order", o.ID, string(o.Status), string(domain.OrderCancelled))
		}
		if !o.CancellableAt(now) {
			return apperr.WindowExpired(o.ID)
		}
		if err := s.cancel(ctx, uow, &o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

// cancel restores every item's quantity and marks the order cancelled. It is
// shared by the admin and customer paths.
func (s *OrderService) cancel(ctx context.Context, uow *repos.UnitOfWork, o *domain.Order) error {
	for _, it := range o.Items {
		found, err := uow.Products.Restock(ctx, it.ProductID, it.Quantity)
		if err != nil {
			return err
		}
		if !found {
			applog.L().Warn().
				Str("order_id", o.ID).
				Str("product_id", it.ProductID).
				Int("quantity", it.Quantity).
				Msg("order.restock.skip: product no longer exists")
		}
	}
	if err := uow.Orders.UpdateStatus(ctx, o.ID, domain.OrderCancelled); err != nil {
		return err
	}
	o.Status = domain.OrderCancelled
	return nil
}

func (s *OrderService) Get(ctx context.Context, orderID string) (domain.Order, error) {
	o, err := s.Store.Orders.Get(ctx, orderID)
	if err != nil {
		return domain.Order{}, lookupErr(err, "order", orderID)
	}
	return o, nil
}

func (s *OrderService) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	if _, err := s.Store.Customers.ByID(ctx, customerID); err != nil {
		return nil, lookupErr(err, "customer", customerID)
	}
	return s.Store.Orders.ListByCustomer(ctx, customerID)
}

func (s *OrderService) ListLatest(ctx context.Context, limit int) ([]domain.Order, error) {
	return s.Store.Orders.ListLatest(ctx, limit)
}
