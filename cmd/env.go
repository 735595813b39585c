package main

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openschools-au/schoolsearch-cli/internal/dataset"
	"github.com/openschools-au/schoolsearch-cli/internal/fetcher"
	"github.com/openschools-au/schoolsearch-cli/internal/flavour"
	"github.com/openschools-au/schoolsearch-cli/internal/search"
	"github.com/openschools-au/schoolsearch-cli/internal/store"
)

// searchEnv holds the loaded dataset, the search session, and the optional
// search-log store used by the search/export/serve commands.
type searchEnv struct {
	Tables  *dataset.Tables
	Session *search.Session
	Store   store.Store // may be nil when logging is disabled
}

// Close releases resources held by the environment.
func (e *searchEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// initSearchEnv loads the three dataset tables, builds the session, and
// opens the search-log store. Callers should defer env.Close().
func initSearchEnv(ctx context.Context) (*searchEnv, error) {
	f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{})

	tables, err := dataset.Load(ctx, f, cfg.Dataset)
	if err != nil {
		return nil, eris.Wrap(err, "load dataset")
	}
	if len(tables.Schools) == 0 {
		zap.L().Warn("dataset contains no school records, searches will return zero rows")
	}

	opts := []search.Option{search.WithMaxResults(cfg.Search.MaxResults)}
	if cfg.Flavour.NotesPath != "" {
		provider, err := flavour.LoadNotes(cfg.Flavour.NotesPath)
		if err != nil {
			// Flavour is decorative: a broken notes file must not block searches.
			zap.L().Warn("regional notes unavailable", zap.Error(err))
		} else {
			opts = append(opts, search.WithFlavour(provider.Note))
		}
	}

	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, eris.Wrap(err, "open store")
	}
	if st != nil {
		if err := st.Migrate(ctx); err != nil {
			_ = st.Close()
			return nil, eris.Wrap(err, "migrate store")
		}
	}

	return &searchEnv{
		Tables:  tables,
		Session: search.NewSession(tables, opts...),
		Store:   st,
	}, nil
}

// logSearch records a search in the store when logging is enabled.
// Failures are reported but never propagate: the search already succeeded.
func (e *searchEnv) logSearch(ctx context.Context, query string, state *search.State) {
	if e.Store == nil || state == nil {
		return
	}
	_, err := e.Store.LogSearch(ctx, store.Search{
		Query:         query,
		ResolvedLabel: state.Center.Label,
		RadiusKm:      state.RadiusKm,
		Sector:        state.Sector,
		ResultCount:   len(state.Rows),
	})
	if err != nil {
		zap.L().Warn("search log write failed", zap.Error(err))
	}
}

// radiusFromFlags applies the configured default when the --radius flag was
// not set. An explicit 0 stays 0: it matches only exact-center records.
func radiusFromFlags(cmd *cobra.Command, flagValue float64) float64 {
	if !cmd.Flags().Changed("radius") {
		return cfg.Search.DefaultRadiusKm
	}
	return flagValue
}
