package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"beautyshop/internal/apperr"
	"beautyshop/internal/domain"
	"beautyshop/internal/repos"
)

type BookingService struct {
	Store *repos.Store
	Now   func() time.Time
}

func NewBookingService(store *repos.Store) *BookingService {
	return &BookingService{Store: store, Now: time.Now}
}

// Create schedules a service for a customer. Bookings never touch stock.
func (s *BookingService) Create(ctx context.Context, customerID, serviceID string, at time.Time) (domain.Booking, error) {
	now := clock(s.Now)
	if at.Before(now) {
		return domain.Booking{}, apperr.Validation("scheduled_time", "scheduled_time must be in the future")
	}
	b := domain.Booking{
		ID:            uuid.NewString(),
		ServiceID:     serviceID,
		CustomerID:    customerID,
		ScheduledTime: domain.NewTimestamp(at),
		Status:        domain.BookingScheduled,
		PaymentStatus: domain.PaymentUnpaid,
		CreatedAt:     domain.NewTimestamp(now),
	}
	err := s.Store.Do(ctx, func(uow *repos.UnitOfWork) error {
		if _, err := uow.Customers.ByID(ctx, customerID); err != nil {
			return lookupErr(err, "customer", customerID)
		}
		if _, err := uow.Services.Get(ctx, serviceID); err != nil {
			return lookupErr(err, "service", serviceID)
		}
		return uow.Bookings.Create(ctx, b)
	})
	if err != nil {
		return domain.Booking{}, err
	}
	return b, nil
}

// UpdateStatus moves a scheduled booking; completed and cancelled are final.
func (s *BookingService) UpdateStatus(ctx context.Context, id, status string) (domain.Booking, error) {
	next, ok := domain.ParseBookingStatus(status)
	if !ok {
		return domain.Booking{}, apperr.Validation("status", "status must be scheduled, completed or cancelled")
	}
	var out domain.Booking
	err := s.Store.Do(ctx, func(uow *repos.UnitOfWork) error {
		b, err := uow.Bookings.Get(ctx, id)
		if err != nil {
			return lookupErr(err, "booking", id)
		}
		if b.Status.Terminal() {
			return apperr.InvalidTransition("booking", b.ID, string(b.Status), string(next))
		}
		if next != b.Status {
			if err := uow.Bookings.UpdateStatus(ctx, b.ID, next); err != nil {
				return err
			}
			b.Status = next
		}
		out = b
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}
	return out, nil
}

// MarkPaid records payment once; cancelled bookings cannot be paid.
func (s *BookingService) MarkPaid(ctx context.Context, id string) (domain.Booking, error) {
	var out domain.Booking
	err := s.Store.Do(ctx, func(uow *repos.UnitOfWork) error {
		b, err := uow.Bookings.Get(ctx, id)
		if err != nil {
			return lookupErr(err, "booking", id)
		}
		if b.PaymentStatus == domain.PaymentPaid || b.Status == domain.BookingCancelled {
			return apperr.InvalidTransition("booking payment", b.ID, b.PaymentStatus+"/"+string(b.Status), domain.PaymentPaid)
		}
		if err := uow.Bookings.UpdatePayment(ctx, b.ID, domain.PaymentPaid); err != nil {
			return err
		}
		b.PaymentStatus = domain.PaymentPaid
		out = b
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}
	return out, nil
}
