package repos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"beautyshop/internal/domain"
	applog "beautyshop/internal/log"
)

// SeedDemo inserts a small demo catalog. Safe to run on every startup.
func SeedDemo(ctx context.Context, db *sqlx.DB) error {
	now := domain.NewTimestamp(time.Now())
	expiry := now.AddDate(0, 6, 0).Format(domain.DateLayout)

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	products := []struct {
		id, name, desc, price, cost string
		qty                         int
		expires                     *string
	}{
		{"prod-argan-oil", "Argan Hair Oil", "Cold-pressed argan oil, 100ml", "24.00", "11.50", 30, &expiry},
		{"prod-clay-mask", "Kaolin Clay Mask", "Purifying face mask", "18.50", "7.20", 12, &expiry},
		{"prod-nail-polish", "Nail Polish Ruby", "Long-wear lacquer", "9.90", "3.10", 4, nil},
	}
	for _, p := range products {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO products(`+productCols+`)
			VALUES(?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO NOTHING
		`, p.id, p.name, p.desc, p.price, p.cost, p.qty, p.expires, now); err != nil {
			return err
		}
	}

	services := []struct {
		id, name, desc, price string
		minutes               int
	}{
		{"svc-haircut", "Haircut & Style", "Wash, cut and blow-dry", "45.00", 60},
		{"svc-manicure", "Classic Manicure", "Shape, cuticle care and polish", "30.00", 40},
		{"svc-facial", "Hydrating Facial", "Cleanse, exfoliate and mask", "65.00", 75},
	}
	for _, s := range services {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO services(id, name, description, price, duration_minutes, created_at)
			VALUES(?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO NOTHING
		`, s.id, s.name, s.desc, s.price, s.minutes, now); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	applog.L().Info().Int("products", len(products)).Int("services", len(services)).Msg("[seed] demo catalog ensured")
	return nil
}
