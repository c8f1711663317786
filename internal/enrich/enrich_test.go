package enrich

import (
	"context"
	"sync"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronomaps/atlas-cli/internal/geojson"
	"github.com/chronomaps/atlas-cli/pkg/wikipedia"
)

// fakeWiki resolves titles from a fixed map. A missing key means no article.
type fakeWiki struct {
	mu      sync.Mutex
	pages   map[string]string
	failOn  map[string]bool
	lookups []string
}

func (f *fakeWiki) Summary(ctx context.Context, lang, title string) (*wikipedia.PageSummary, error) {
	return nil, nil
}

func (f *fakeWiki) Lookup(ctx context.Context, title string) (*wikipedia.PageSummary, error) {
	f.mu.Lock()
	f.lookups = append(f.lookups, title)
	f.mu.Unlock()

	if f.failOn[title] {
		return nil, eris.New("lookup exploded")
	}
	url, ok := f.pages[title]
	if !ok {
		return nil, nil
	}
	return &wikipedia.PageSummary{
		Title:       title,
		Type:        "standard",
		ContentURLs: wikipedia.ContentURLs{Desktop: wikipedia.PageURLs{Page: url}},
	}, nil
}

func titled(title string, extra map[string]any) *geojson.Feature {
	props := map[string]any{"title": title}
	for k, v := range extra {
		props[k] = v
	}
	return &geojson.Feature{Type: "Feature", Properties: props}
}

func TestEnrich_LinksFeatures(t *testing.T) {
	t.Parallel()

	wiki := &fakeWiki{pages: map[string]string{
		"Devín Castle": "https://en.wikipedia.org/wiki/Devín_Castle",
	}}
	coll := &geojson.Collection{
		Type: "FeatureCollection",
		Features: []*geojson.Feature{
			titled("Devín Castle", nil),
			titled("Unknown Place", nil),
		},
	}

	summary, err := New(wiki, Options{}).Enrich(context.Background(), coll)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Linked)
	assert.Equal(t, 1, summary.NotFound)
	// The default target key matches the cleaner's "Wikipedia" property.
	assert.Equal(t, "https://en.wikipedia.org/wiki/Devín_Castle", coll.Features[0].StringProp("Wikipedia"))
	assert.Equal(t, "", coll.Features[1].StringProp("Wikipedia"))
}

func TestEnrich_SkipsLinkedUnlessOverwrite(t *testing.T) {
	t.Parallel()

	wiki := &fakeWiki{pages: map[string]string{
		"Devín Castle": "https://en.wikipedia.org/wiki/New",
	}}
	coll := &geojson.Collection{
		Type: "FeatureCollection",
		Features: []*geojson.Feature{
			titled("Devín Castle", map[string]any{"Wikipedia": "https://en.wikipedia.org/wiki/Old"}),
		},
	}

	summary, err := New(wiki, Options{}).Enrich(context.Background(), coll)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Skipped)
	assert.Empty(t, wiki.lookups)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Old", coll.Features[0].StringProp("Wikipedia"))

	summary, err = New(wiki, Options{Overwrite: true}).Enrich(context.Background(), coll)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Linked)
	assert.Equal(t, "https://en.wikipedia.org/wiki/New", coll.Features[0].StringProp("Wikipedia"))
}

func TestEnrich_UntitledCounted(t *testing.T) {
	t.Parallel()

	wiki := &fakeWiki{}
	coll := &geojson.Collection{
		Type:     "FeatureCollection",
		Features: []*geojson.Feature{{Type: "Feature"}},
	}

	summary, err := New(wiki, Options{}).Enrich(context.Background(), coll)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Untitled)
	assert.Empty(t, wiki.lookups)
}

func TestEnrich_LookupFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	wiki := &fakeWiki{
		pages:  map[string]string{"Good": "https://en.wikipedia.org/wiki/Good"},
		failOn: map[string]bool{"Bad": true},
	}
	coll := &geojson.Collection{
		Type: "FeatureCollection",
		Features: []*geojson.Feature{
			titled("Bad", nil),
			titled("Good", nil),
		},
	}

	summary, err := New(wiki, Options{Concurrency: 1}).Enrich(context.Background(), coll)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.LookupErr)
	assert.Equal(t, 1, summary.Linked)
}

func TestEnrich_CustomKeys(t *testing.T) {
	t.Parallel()

	wiki := &fakeWiki{pages: map[string]string{"Hrad": "https://de.wikipedia.org/wiki/Hrad"}}
	coll := &geojson.Collection{
		Type: "FeatureCollection",
		Features: []*geojson.Feature{
			{Type: "Feature", Properties: map[string]any{"name": "Hrad"}},
		},
	}

	opts := Options{TitleKey: "name", WikipediaKey: "Wikipedia"}
	summary, err := New(wiki, opts).Enrich(context.Background(), coll)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Linked)
	assert.Equal(t, "https://de.wikipedia.org/wiki/Hrad", coll.Features[0].StringProp("Wikipedia"))
}
