package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID             string          `db:"id" json:"id"`
	Name           string          `db:"name" json:"name"`
	Description    string          `db:"description" json:"description"`
	Price          decimal.Decimal `db:"price" json:"price"`
	CostPrice      decimal.Decimal `db:"cost_price" json:"cost_price"`
	Quantity       int             `db:"quantity" json:"quantity"`
	ExpirationDate *string         `db:"expiration_date" json:"expiration_date"` // YYYY-MM-DD
	CreatedAt      Timestamp       `db:"created_at" json:"created_at"`
}

type Service struct {
	ID          string          `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Duration    int             `db:"duration_minutes" json:"duration_minutes"`
	CreatedAt   Timestamp       `db:"created_at" json:"created_at"`
}

type Customer struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Hash      string    `db:"password_hash" json:"-"`
	CreatedAt Timestamp `db:"created_at" json:"created_at"`
}

type ProductSale struct {
	ID           string          `db:"id" json:"id"`
	ProductID    string          `db:"product_id" json:"product_id"`
	QuantitySold int             `db:"quantity_sold" json:"quantity_sold"`
	SalePrice    decimal.Decimal `db:"sale_price" json:"sale_price"`
	SaleDate     Timestamp       `db:"sale_date" json:"sale_date"`
}
