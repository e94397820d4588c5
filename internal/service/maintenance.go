package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/pdfsel/internal/database"
	"github.com/jask/pdfsel/internal/database/repository"
)

// MaintenanceService houses destructive actions surfaced through the TUI.
type MaintenanceService struct {
	DB *sql.DB
}

// ForgetHistory wipes the recent documents history. The schema stays intact
// so the app can continue running.
func (s *MaintenanceService) ForgetHistory(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	if err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		if _, err := repository.NewRecentRepo(tx).Clear(ctx); err != nil {
			return fmt.Errorf("forget history: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	return nil
}
