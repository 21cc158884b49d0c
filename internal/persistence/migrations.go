package persistence

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/migrations"
)

// RunMigrations applies the embedded schema migrations through a database/sql
// handle that shares the pgx pool.
func RunMigrations(pool *pgxpool.Pool, logger *zap.Logger) error {
	if pool == nil {
		logger.Warn("no postgres pool available; skipping migrations")
		return nil
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := migrations.Migrate(db); err != nil {
		return err
	}

	logger.Info("migrations applied")
	return nil
}
