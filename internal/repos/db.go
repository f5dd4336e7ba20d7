package repos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Querier is satisfied by both *sqlx.DB and *sqlx.Tx.
type Querier interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection: write transactions are serialised and an in-memory
	// database is shared by every caller.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Catalog
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price TEXT NOT NULL,
  cost_price TEXT NOT NULL DEFAULT '0',
  quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
  expiration_date TEXT,
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_products_name ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_expiration ON products(expiration_date);

CREATE TABLE IF NOT EXISTS services(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price TEXT NOT NULL,
  duration_minutes INTEGER NOT NULL DEFAULT 0 CHECK (duration_minutes >= 0),
  created_at TEXT NOT NULL
);

-- Customers
CREATE TABLE IF NOT EXISTS customers(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  created_at TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_customers_email ON customers(LOWER(email));

-- Orders. order_items.product_id carries no foreign key; items outlive the
-- catalog entry they point at.
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL REFERENCES customers(id) ON DELETE RESTRICT,
  total_price TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','completed','cancelled')),
  order_date TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id);
CREATE INDEX IF NOT EXISTS idx_orders_status_date ON orders(status, order_date);

CREATE TABLE IF NOT EXISTS order_items(
  order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL,
  position INTEGER NOT NULL,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  price TEXT NOT NULL,
  PRIMARY KEY (order_id, product_id)
);

-- Point of sale
CREATE TABLE IF NOT EXISTS product_sales(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  quantity_sold INTEGER NOT NULL CHECK (quantity_sold >= 1),
  sale_price TEXT NOT NULL,
  sale_date TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sales_product_date ON product_sales(product_id, sale_date);

-- Bookings
CREATE TABLE IF NOT EXISTS bookings(
  id TEXT PRIMARY KEY,
  service_id TEXT NOT NULL REFERENCES services(id) ON DELETE RESTRICT,
  customer_id TEXT NOT NULL REFERENCES customers(id) ON DELETE RESTRICT,
  scheduled_time TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'scheduled' CHECK (status IN ('scheduled','completed','cancelled')),
  payment_status TEXT NOT NULL DEFAULT 'unpaid' CHECK (payment_status IN ('unpaid','paid')),
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_bookings_service ON bookings(service_id);
`
	_, err := db.Exec(schema)
	return err
}

// IsUniqueViolation reports whether err came from a UNIQUE constraint.
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Store owns the connection pool and hands out units of work.
type Store struct {
	db *sqlx.DB

	Products  *ProductRepo
	Services  *ServiceRepo
	Customers *CustomerRepo
	Orders    *OrderRepo
	Sales     *SaleRepo
	Bookings  *BookingRepo
	Reports   *ReportRepo
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{
		db:        db,
		Products:  NewProductRepo(db),
		Services:  NewServiceRepo(db),
		Customers: NewCustomerRepo(db),
		Orders:    NewOrderRepo(db),
		Sales:     NewSaleRepo(db),
		Bookings:  NewBookingRepo(db),
		Reports:   NewReportRepo(db),
	}
}

func (s *Store) DB() *sqlx.DB { return s.db }

// UnitOfWork exposes repositories bound to a single transaction.
type UnitOfWork struct {
	Products  *ProductRepo
	Services  *ServiceRepo
	Customers *CustomerRepo
	Orders    *OrderRepo
	Sales     *SaleRepo
	Bookings  *BookingRepo
}

// Do runs fn inside one transaction. The transaction is committed when fn
// returns nil and rolled back otherwise, exactly once either way. SQLite
// transactions are serializable.
func (s *Store) Do(ctx context.Context, fn func(uow *UnitOfWork) error) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
		}
	}()

	uow := &UnitOfWork{
		Products:  NewProductRepo(tx),
		Services:  NewServiceRepo(tx),
		Customers: NewCustomerRepo(tx),
		Orders:    NewOrderRepo(tx),
		Sales:     NewSaleRepo(tx),
		Bookings:  NewBookingRepo(tx),
	}
	if err = fn(uow); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
