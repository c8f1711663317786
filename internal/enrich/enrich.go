// Package enrich links features to Wikipedia articles. Titles are looked up
// concurrently, a few features at a time, and the best article URL is written
// back into the feature's property bag.
package enrich

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/chronomaps/atlas-cli/internal/geojson"
	"github.com/chronomaps/atlas-cli/pkg/wikipedia"
)

const defaultConcurrency = 4

// Options controls an enrichment run.
type Options struct {
	// TitleKey is the property holding the feature title to look up.
	TitleKey string
	// WikipediaKey is the property the article URL is written to.
	WikipediaKey string
	// Overwrite replaces existing links instead of skipping them.
	Overwrite bool
	// Concurrency is the number of parallel lookups. Defaults to 4.
	Concurrency int
}

func (o Options) withDefaults() Options {
	if o.TitleKey == "" {
		o.TitleKey = "title"
	}
	if o.WikipediaKey == "" {
		o.WikipediaKey = "Wikipedia"
	}
	if o.Concurrency <= 0 {
		o.Concurrency = defaultConcurrency
	}
	return o
}

// Summary reports what an enrichment run did.
type Summary struct {
	Linked    int `json:"linked"`
	Skipped   int `json:"skipped"`
	NotFound  int `json:"not_found"`
	Untitled  int `json:"untitled"`
	LookupErr int `json:"lookup_errors"`
}

// Enricher resolves feature titles against Wikipedia.
type Enricher struct {
	client wikipedia.Client
	opts   Options
}

// New creates an Enricher.
func New(client wikipedia.Client, opts Options) *Enricher {
	return &Enricher{client: client, opts: opts.withDefaults()}
}

// Enrich links every feature in the collection that has a title but no
// article URL yet. Individual lookup failures are logged and counted, not
// fatal; the run only fails when the context is cancelled.
func (e *Enricher) Enrich(ctx context.Context, coll *geojson.Collection) (*Summary, error) {
	var (
		mu      sync.Mutex
		summary Summary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Concurrency)

	for _, feat := range coll.Features {
		feat := feat

		title := feat.StringProp(e.opts.TitleKey)
		if title == "" {
			summary.Untitled++
			continue
		}
		if !e.opts.Overwrite && feat.StringProp(e.opts.WikipediaKey) != "" {
			summary.Skipped++
			continue
		}

		g.Go(func() error {
			page, err := e.client.Lookup(gctx, title)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				zap.L().Warn("enrich: lookup failed",
					zap.String("title", title),
					zap.Error(err))
				mu.Lock()
				summary.LookupErr++
				mu.Unlock()
				return nil // don't fail other lookups
			}

			mu.Lock()
			defer mu.Unlock()
			if page == nil || page.URL() == "" {
				summary.NotFound++
				return nil
			}
			feat.SetProp(e.opts.WikipediaKey, page.URL())
			summary.Linked++
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "enrich: lookup features")
	}

	zap.L().Info("enrich: run complete",
		zap.Int("linked", summary.Linked),
		zap.Int("skipped", summary.Skipped),
		zap.Int("not_found", summary.NotFound),
		zap.Int("untitled", summary.Untitled),
		zap.Int("lookup_errors", summary.LookupErr),
	)

	return &summary, nil
}
