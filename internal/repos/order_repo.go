package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"beautyshop/internal/domain"
)

type OrderRepo struct{ db Querier }

func NewOrderRepo(db Querier) *OrderRepo { return &OrderRepo{db: db} }

// Create inserts the order header and its items.
func (r *OrderRepo) Create(ctx context.Context, o domain.Order) error {
	if _, err := r.db.ExecContext(ctx, `
	  INSERT INTO orders(id, customer_id, total_price, status, order_date)
	  VALUES(?, ?, ?, ?, ?)
	`, o.ID, o.CustomerID, o.TotalPrice, o.Status, o.OrderDate); err != nil {
		return err
	}
	for i, it := range o.Items {
		if _, err := r.db.ExecContext(ctx, `
		  INSERT INTO order_items(order_id, product_id, position, quantity, price)
		  VALUES(?, ?, ?, ?, ?)
		`, o.ID, it.ProductID, i, it.Quantity, it.Price); err != nil {
			return err
		}
	}
	return nil
}

// Get loads an order with its items; sql.ErrNoRows when absent.
func (r *OrderRepo) Get(ctx context.Context, id string) (domain.Order, error) {
	var o domain.Order
	if err := r.db.GetContext(ctx, &o, `
		SELECT id, customer_id, total_price, status, order_date
		FROM orders WHERE id = ?
	`, id); err != nil {
		return domain.Order{}, err
	}
	items, err := r.items(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	o.Items = items
	return o, nil
}

func (r *OrderRepo) items(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	out := []domain.OrderItem{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT order_id, product_id, quantity, price
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, orderID)
	return out, err
}

// attachItems fills Items for a batch of orders with one query.
func (r *OrderRepo) attachItems(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	byID := make(map[string]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byID[o.ID] = i
		orders[i].Items = []domain.OrderItem{}
	}
	query, args, err := sqlx.In(`
		SELECT order_id, product_id, quantity, price
		FROM order_items
		WHERE order_id IN (?)
		ORDER BY order_id, position
	`, ids)
	if err != nil {
		return err
	}
	var items []domain.OrderItem
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(query), args...); err != nil {
		return err
	}
	for _, it := range items {
		i := byID[it.OrderID]
		orders[i].Items = append(orders[i].Items, it)
	}
	return nil
}

func (r *OrderRepo) ListLatest(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	out := []domain.Order{}
	if err := r.db.SelectContext(ctx, &out, `
		SELECT id, customer_id, total_price, status, order_date
		FROM orders
		ORDER BY order_date DESC, id
		LIMIT ?
	`, limit); err != nil {
		return nil, err
	}
	return out, r.attachItems(ctx, out)
}

func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	out := []domain.Order{}
	if err := r.db.SelectContext(ctx, &out, `
		SELECT id, customer_id, total_price, status, order_date
		FROM orders
		WHERE customer_id = ?
		ORDER BY order_date DESC, id
	`, customerID); err != nil {
		return nil, err
	}
	return out, r.attachItems(ctx, out)
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, status, id)
	return err
}
