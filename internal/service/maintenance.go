package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jask/jaskweather/internal/database"
)

// Pruner drops cache rows written before a cutoff.
type Pruner interface {
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// MaintenanceService houses destructive/ops actions run from the command line.
type MaintenanceService struct {
	DB        *sql.DB
	Cache     Pruner
	Selection CitySelection
	Now       func() time.Time
}

// Reset wipes cached weather and the remembered city. The schema stays.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	if err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM weather"); err != nil {
			return fmt.Errorf("reset weather: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	if s.Selection != nil {
		if err := s.Selection.SetLastCityID(0); err != nil {
			return fmt.Errorf("reset selection: %w", err)
		}
	}
	return nil
}

// PruneStale removes rows not refreshed within maxAge. A non-positive maxAge
// keeps everything.
func (s *MaintenanceService) PruneStale(ctx context.Context, maxAge time.Duration) (int64, error) {
	if maxAge <= 0 || s.Cache == nil {
		return 0, nil
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	n, err := s.Cache.PruneOlderThan(ctx, now().Add(-maxAge))
	if err != nil {
		return 0, fmt.Errorf("prune cache: %w", err)
	}
	return n, nil
}
