// internal/archive/factory.go
package archive

import (
	"fmt"

	gormarchive "github.com/magcot/magcot/internal/archive/gorm"
	"github.com/magcot/magcot/internal/archive/memory"
	"github.com/magcot/magcot/internal/config"

	"github.com/rs/zerolog"
)

// NewBackend creates an archive backend based on configuration
func NewBackend(cfg config.ArchiveConfig, log zerolog.Logger) (Backend, error) {
	switch cfg.Type {
	case "postgres":
		db, err := gormarchive.OpenPostgres(cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Postgres DB: %w", err)
		}
		return gormarchive.New(db, log.With().Str("backend", "postgres").Logger()), nil
	case "sqlite":
		db, err := gormarchive.OpenSQLite(cfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite DB: %w", err)
		}
		return gormarchive.New(db, log.With().Str("backend", "sqlite").Logger()), nil
	case "memory":
		return memory.New(cfg.Memory), nil
	default:
		return nil, fmt.Errorf("unknown archive type: %s", cfg.Type)
	}
}
