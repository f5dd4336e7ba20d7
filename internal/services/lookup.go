package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"beautyshop/internal/apperr"
)

// lookupErr turns a missing row into a NotFound error and wraps anything else.
func lookupErr(err error, entity, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(entity, id)
	}
	return fmt.Errorf("load %s %s: %w", entity, id, err)
}

func clock(now func() time.Time) time.Time {
	if now == nil {
		return time.Now()
	}
	return now()
}
