package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// CancellationWindow is how long after placement a customer may still cancel.
const CancellationWindow = 2 * time.Minute

func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch st := OrderStatus(s); st {
	case OrderPending, OrderCompleted, OrderCancelled:
		return st, true
	}
	return "", false
}

// Terminal reports whether no further status change is allowed.
func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

type Order struct {
	ID         string          `db:"id" json:"id"`
	CustomerID string          `db:"customer_id" json:"customer_id"`
	TotalPrice decimal.Decimal `db:"total_price" json:"total_price"`
	Status     OrderStatus     `db:"status" json:"status"`
	OrderDate  Timestamp       `db:"order_date" json:"order_date"`
	Items      []OrderItem     `db:"-" json:"items"`
}

// CancellableAt reports whether a customer may still cancel at now.
func (o Order) CancellableAt(now time.Time) bool {
	return !now.After(o.OrderDate.Add(CancellationWindow))
}

// OrderItem keeps the unit price that applied when the order was placed.
type OrderItem struct {
	OrderID   string          `db:"order_id" json:"-"`
	ProductID string          `db:"product_id" json:"product_id"`
	Quantity  int             `db:"quantity" json:"quantity"`
	Price     decimal.Decimal `db:"price" json:"price"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
