package migrate

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/stockcard-api/pkg/config"
	"github.com/jhoicas/stockcard-api/pkg/logger"
)

// MaybeRun aplica las migraciones al arrancar la API si DB_AUTO_MIGRATE está activo.
func MaybeRun(ctx context.Context, cfg config.DBConfig, log *logger.Logger, db *sql.DB) error {
	if !cfg.AutoMigrate {
		return nil
	}
	log.Info().Str("driver", cfg.Driver).Msg("aplicando migraciones goose (auto-migrate)")
	if err := Up(ctx, db, cfg.Driver); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}
	v, err := Version(ctx, db, cfg.Driver)
	if err != nil {
		return err
	}
	log.Info().Int64("version", v).Msg("migraciones completadas")
	return nil
}
