package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/jhoicas/stockcard-api/internal/application/inventory"
	"github.com/jhoicas/stockcard-api/internal/domain/repository"
	"github.com/jhoicas/stockcard-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockcard-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/stockcard-api/pkg/config"
	"github.com/jhoicas/stockcard-api/pkg/logger"
)

// Store agrupa los repositorios del driver configurado.
// SQL es la conexión database/sql que usa goose para migrar.
type Store struct {
	Driver    string
	Users     repository.UserRepository
	Cards     repository.StockCardRepository
	Movements repository.StockMovementRepository
	RealTime  repository.RealTimeStockRepository
	Tx        inventory.TxRunner
	SQL       *sql.DB

	closers []func()
}

// Open conecta con PostgreSQL (pgxpool) o SQLite según cfg.Driver.
func Open(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		db := stdlib.OpenDBFromPool(pool)
		return &Store{
			Driver:    cfg.Driver,
			Users:     postgres.NewUserRepository(pool),
			Cards:     postgres.NewStockCardRepository(pool),
			Movements: postgres.NewStockMovementRepository(pool),
			RealTime:  postgres.NewRealTimeStockRepository(pool),
			Tx:        postgres.NewTxRunner(pool),
			SQL:       db,
			closers:   []func(){func() { _ = db.Close() }, pool.Close},
		}, nil
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath, log)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:    cfg.Driver,
			Users:     sqlite.NewUserRepository(db),
			Cards:     sqlite.NewStockCardRepository(db),
			Movements: sqlite.NewStockMovementRepository(db),
			RealTime:  sqlite.NewRealTimeStockRepository(db),
			Tx:        sqlite.NewTxRunner(db),
			SQL:       db,
			closers:   []func(){func() { _ = db.Close() }},
		}, nil
	}
	return nil, fmt.Errorf("driver no soportado: %q", cfg.Driver)
}

// Close libera las conexiones en orden.
func (s *Store) Close() {
	for _, c := range s.closers {
		c()
	}
}
