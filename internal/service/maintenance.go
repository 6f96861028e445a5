package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/mlmdash/internal/database"
)

// MaintenanceService houses destructive/ops actions surfaced through the CLI.
type MaintenanceService struct {
	DB *sql.DB
}

// Reset wipes all rows. It keeps the schema intact so the app can continue running.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	if err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		// sponsor links first so the self-referencing FK never blocks the delete
		if _, err := tx.ExecContext(ctx, "UPDATE members SET sponsor_id = NULL"); err != nil {
			return fmt.Errorf("unlink sponsors: %w", err)
		}
		for _, t := range []string{"inquiries", "members"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return fmt.Errorf("reset table %s: %w", t, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	return nil
}
