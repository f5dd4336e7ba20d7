package validate

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"beautyshop/internal/apperr"
	"beautyshop/internal/domain"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

// MaxQty bounds a single order line or sale.
const MaxQty = 1000

// MaxMoney is the exclusive upper bound for a price or cost.
var MaxMoney = decimal.New(1, 9)

// moneyScale bounds the exponent a money value may carry before it is
// compared or rounded; both rescale through big.Int.
const moneyScale = 12

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 100 {
		return "", false
	}
	return s, true
}

// Password enforces length and character classes for new credentials.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 72 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}

// ID validates a resource identifier (uuid or seeded slug).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

func Qty(n int) bool { return n >= 1 && n <= MaxQty }

// Money accepts non-negative amounts below MaxMoney with at most two
// decimal places.
func Money(d decimal.Decimal) bool {
	if e := d.Exponent(); e > moneyScale || e < -moneyScale {
		return false
	}
	if d.Coefficient().BitLen() > 96 {
		return false
	}
	return !d.IsNegative() && d.LessThan(MaxMoney) && d.Equal(d.Round(2))
}

// Date validates a YYYY-MM-DD value.
func Date(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(domain.DateLayout, s); err != nil {
		return "", false
	}
	return s, true
}

// Timestamp parses an RFC 3339 instant.
func Timestamp(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Bound parses a report range bound. RFC 3339 is taken as is; a date-only
// value means the start of that day, or its last millisecond when endOfDay.
func Bound(field, s string, endOfDay bool) (*domain.Timestamp, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, ok := Timestamp(s); ok {
		ts := domain.NewTimestamp(t)
		return &ts, nil
	}
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return nil, apperr.Validation(field, field+" must be RFC 3339 or YYYY-MM-DD")
	}
	if endOfDay {
		d = d.Add(24*time.Hour - time.Millisecond)
	}
	ts := domain.NewTimestamp(d)
	return &ts, nil
}

// Range parses optional start/end bounds and checks their order.
func Range(start, end string) (*domain.Timestamp, *domain.Timestamp, error) {
	from, err := Bound("start", start, false)
	if err != nil {
		return nil, nil, err
	}
	to, err := Bound("end", end, true)
	if err != nil {
		return nil, nil, err
	}
	if from != nil && to != nil && from.After(to.Time) {
		return nil, nil, apperr.Validation("start", "start must not be after end")
	}
	return from, to, nil
}
