package store

import (
	"context"

	"github.com/rotisserie/eris"
)

// Open returns the Store for the configured driver. The caller runs Migrate.
func Open(ctx context.Context, driver, dsn string, poolCfg *PoolConfig) (Store, error) {
	switch driver {
	case "sqlite", "":
		if dsn == "" {
			dsn = "herb-harvest.db"
		}
		return NewSQLite(dsn)
	case "postgres":
		if dsn == "" {
			return nil, eris.New("store: postgres driver requires database_url")
		}
		return NewPostgres(ctx, dsn, poolCfg)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, eris.Errorf("store: unsupported driver: %s", driver)
	}
}
