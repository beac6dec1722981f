package catalog

import (
	"context"
	"fmt"
	"strings"

	"wellness-planner/internal/db"
	"wellness-planner/internal/repository"
)

// SourceConfig elige de dónde se carga el catálogo: Postgres, un archivo JSON o el embebido.
type SourceConfig struct {
	Path             string
	DatabaseURL      string
	DefaultProductID string
}

// Load carga el catálogo según cfg. Postgres tiene prioridad sobre el archivo.
func Load(ctx context.Context, cfg SourceConfig) (*Catalog, error) {
	switch {
	case strings.TrimSpace(cfg.DatabaseURL) != "":
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect catalog db: %w", err)
		}
		defer pool.Close()
		if err := db.Ping(ctx, pool); err != nil {
			return nil, fmt.Errorf("ping catalog db: %w", err)
		}
		return LoadFromSource(ctx, repository.NewPgProductRepository(pool), "postgres", cfg.DefaultProductID)
	case strings.TrimSpace(cfg.Path) != "":
		return LoadFile(cfg.Path, cfg.DefaultProductID)
	default:
		return LoadDefault(cfg.DefaultProductID)
	}
}
