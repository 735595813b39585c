// Package store persists a log of executed searches. Logging is optional:
// an empty driver disables it, and a logging failure never fails a search.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/openschools-au/schoolsearch-cli/internal/config"
)

// Search is one logged search execution.
type Search struct {
	ID            string    `json:"id"`
	Query         string    `json:"query"`
	ResolvedLabel string    `json:"resolved_label"`
	RadiusKm      float64   `json:"radius_km"`
	Sector        string    `json:"sector"`
	ResultCount   int       `json:"result_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// Store defines the search-log persistence interface.
type Store interface {
	// LogSearch records a search execution, assigning ID and CreatedAt.
	LogSearch(ctx context.Context, entry Search) (*Search, error)

	// RecentSearches returns the most recent searches, newest first.
	RecentSearches(ctx context.Context, limit int) ([]Search, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open creates the configured Store backend. A nil Store with nil error
// means logging is disabled.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "":
		return nil, nil
	case "sqlite":
		return NewSQLite(cfg.DatabaseURL)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
