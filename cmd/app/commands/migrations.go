package commands

import (
	"database/sql"
	"log/slog"

	"github.com/allisson/clinicnotes/internal/database"
)

// RunMigrations applies the embedded migrations for driver over db.
func RunMigrations(db *sql.DB, driver string, logger *slog.Logger) error {
	logger.Info("running database migrations", slog.String("driver", driver))

	m, err := database.NewMigrate(db, driver)
	if err != nil {
		return err
	}
	defer closeMigrate(m, logger)

	if err := database.MigrateUp(m); err != nil {
		return err
	}

	logger.Info("migrations completed successfully")
	return nil
}
