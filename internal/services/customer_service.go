package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"beautyshop/internal/apperr"
	"beautyshop/internal/domain"
	"beautyshop/internal/repos"
	"beautyshop/internal/validate"
)

var ErrBadCreds = apperr.Unauthorized("invalid email or password")

type CustomerService struct {
	Store *repos.Store
	// Cost is the bcrypt work factor.
	Cost int
	Now  func() time.Time
}

func NewCustomerService(store *repos.Store) *CustomerService {
	return &CustomerService{Store: store, Cost: 12, Now: time.Now}
}

func (s *CustomerService) Register(ctx context.Context, name, email, password string) (domain.Customer, error) {
	name, ok := validate.Name(name)
	if !ok {
		return domain.Customer{}, apperr.Validation("name", "name must be 1-100 characters")
	}
	email, ok = validate.Email(email)
	if !ok {
		return domain.Customer{}, apperr.Validation("email", "invalid email")
	}
	if !validate.Password(password) {
		return domain.Customer{}, apperr.Validation("password", "password must be 8-72 characters with upper, lower, digit and symbol")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.Cost)
	if err != nil {
		return domain.Customer{}, err
	}
	c := domain.Customer{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     strings.ToLower(email),
		Hash:      string(hash),
		CreatedAt: domain.NewTimestamp(clock(s.Now)),
	}
	if err := s.Store.Customers.Create(ctx, c); err != nil {
		if repos.IsUniqueViolation(err) {
			return domain.Customer{}, apperr.Conflict("email already registered", err)
		}
		return domain.Customer{}, err
	}
	return c, nil
}

// Authenticate verifies a credential. Unknown email and wrong password give
// the same error.
func (s *CustomerService) Authenticate(ctx context.Context, email, password string) (domain.Customer, error) {
	c, err := s.Store.Customers.ByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, ErrBadCreds
		}
		return domain.Customer{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.Hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return domain.Customer{}, ErrBadCreds
		}
		return domain.Customer{}, err
	}
	return c, nil
}

func (s *CustomerService) Get(ctx context.Context, id string) (domain.Customer, error) {
	c, err := s.Store.Customers.ByID(ctx, id)
	if err != nil {
		return domain.Customer{}, lookupErr(err, "customer", id)
	}
	return c, nil
}
