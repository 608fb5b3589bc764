package economy

import (
	"fmt"
	"log/slog"

	"github.com/jwebster45206/craft-flags/internal/config"
)

// Open builds the ledger selected by cfg.Backend.
func Open(cfg config.EconomyConfig, logger *slog.Logger) (Ledger, error) {
	f := NewFormatter(cfg.Currency, cfg.Decimals)

	switch cfg.Backend {
	case config.EconomyNone, "":
		return Disabled{Formatter: f}, nil
	case config.EconomyMemory:
		return NewMemoryLedger(f), nil
	case config.EconomyRedis:
		return NewRedisLedger(cfg.RedisURL, f, logger)
	case config.EconomySQLite:
		return OpenSQLite(cfg.SQLitePath, f, logger)
	default:
		return nil, fmt.Errorf("unsupported economy backend: %s", cfg.Backend)
	}
}
