package domain

type BookingStatus string

const (
	BookingScheduled BookingStatus = "scheduled"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch st := BookingStatus(s); st {
	case BookingScheduled, BookingCompleted, BookingCancelled:
		return st, true
	}
	return "", false
}

func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

type Booking struct {
	ID            string        `db:"id" json:"id"`
	ServiceID     string        `db:"service_id" json:"service_id"`
	CustomerID    string        `db:"customer_id" json:"customer_id"`
	ScheduledTime Timestamp     `db:"scheduled_time" json:"scheduled_time"`
	Status        BookingStatus `db:"status" json:"status"`
	PaymentStatus string        `db:"payment_status" json:"payment_status"`
	CreatedAt     Timestamp     `db:"created_at" json:"created_at"`
}
