package repos

import (
	"context"

	"beautyshop/internal/domain"
)

type BookingRepo struct{ db Querier }

func NewBookingRepo(db Querier) *BookingRepo { return &BookingRepo{db: db} }

func (r *BookingRepo) Create(ctx context.Context, b domain.Booking) error {
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO bookings(id, service_id, customer_id, scheduled_time, status, payment_status, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?)
	`, b.ID, b.ServiceID, b.CustomerID, b.ScheduledTime, b.Status, b.PaymentStatus, b.CreatedAt)
	return err
}

func (r *BookingRepo) Get(ctx context.Context, id string) (domain.Booking, error) {
	var b domain.Booking
	err := r.db.GetContext(ctx, &b, `
	  SELECT id, service_id, customer_id, scheduled_time, status, payment_status, created_at
	  FROM bookings WHERE id = ?`, id)
	return b, err
}

func (r *BookingRepo) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE bookings SET status = ? WHERE id = ?`, status, id)
	return err
}

func (r *BookingRepo) UpdatePayment(ctx context.Context, id, payment string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE bookings SET payment_status = ? WHERE id = ?`, payment, id)
	return err
}
