package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/chronomaps/atlas-cli/internal/charfix"
	"github.com/chronomaps/atlas-cli/internal/cleaner"
	"github.com/chronomaps/atlas-cli/internal/fetcher"
	"github.com/chronomaps/atlas-cli/internal/geojson"
	"github.com/chronomaps/atlas-cli/internal/store"
	"github.com/chronomaps/atlas-cli/internal/viewport"
)

// initStore opens the run-history backend named by the configuration.
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "atlas.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// fetchOptions maps the fetch configuration onto fetcher options.
func fetchOptions() fetcher.Options {
	return fetcher.Options{
		UserAgent:  cfg.Fetch.UserAgent,
		Timeout:    time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
		MaxRetries: cfg.Fetch.MaxRetries,
		RatePerSec: cfg.Fetch.RatePerSec,
	}
}

// loadCollection resolves a dataset reference (local path, http(s) or ftp
// URL) and decodes it as a feature collection.
func loadCollection(ctx context.Context, ref string) (*geojson.Collection, error) {
	rc, err := fetcher.Open(ctx, ref, fetchOptions())
	if err != nil {
		return nil, err
	}
	defer rc.Close() //nolint:errcheck

	coll, err := geojson.Decode(rc)
	if err != nil {
		return nil, eris.Wrapf(err, "decode %s", ref)
	}
	return coll, nil
}

// buildCleaner assembles a Cleaner from the configuration, loading custom
// repair tables when configured.
func buildCleaner() (*cleaner.Cleaner, error) {
	tables := charfix.Defaults()
	if cfg.Clean.TablesFile != "" {
		var err error
		tables, err = charfix.Load(cfg.Clean.TablesFile)
		if err != nil {
			return nil, err
		}
	}

	opts := cleaner.Options{
		TitleKey:       cfg.Clean.TitleKey,
		RegionKey:      cfg.Clean.RegionKey,
		WikipediaKey:   cfg.Clean.WikipediaKey,
		RemoveFields:   cfg.Clean.RemoveFields,
		AllowFields:    cfg.Clean.AllowFields,
		RequiredFields: cfg.Clean.RequiredFields,
		Threshold:      cfg.Clean.SimilarityThreshold,
		KeepAltitude:   cfg.Clean.KeepAltitude,
		Viewport: viewport.Size{
			Width:  cfg.Viewport.Width,
			Height: cfg.Viewport.Height,
		},
	}

	return cleaner.New(opts, charfix.NewFixer(tables)), nil
}
