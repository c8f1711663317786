// Package cleaner runs the dataset normalization pipeline: text repair,
// property pruning, color standardization, altitude stripping, viewport
// computation and duplicate detection over a GeoJSON feature collection.
package cleaner

import (
	"strings"

	"go.uber.org/zap"

	"github.com/chronomaps/atlas-cli/internal/charfix"
	"github.com/chronomaps/atlas-cli/internal/dedupe"
	"github.com/chronomaps/atlas-cli/internal/geojson"
	"github.com/chronomaps/atlas-cli/internal/viewport"
)

// legacyViewportFields were flat properties written by earlier dataset
// revisions; they are superseded by the nested coordinates objects and
// removed on every run.
var legacyViewportFields = []string{
	"latitude", "longitude", "zoom",
	"reg_latitude", "reg_longitude", "reg_zoom",
}

// DefaultRemoveFields is the deny list of presentation leftovers stripped
// from every feature.
var DefaultRemoveFields = []string{
	"text", "anchor", "icon", "tooltip", "textPosition", "stroke", "rotate",
	"offsetY", "offsetX", "locked", "marker-size", "labelStyle",
}

// colorFields are the properties holding color hashes to standardize.
var colorFields = []string{"marker-color", "markerTextColor"}

// Options configures a Cleaner. Zero values fall back to the defaults the
// source datasets use.
type Options struct {
	TitleKey     string
	RegionKey    string
	WikipediaKey string

	// RemoveFields is the property deny list. AllowFields, when non-empty,
	// additionally drops every property not named in it.
	RemoveFields []string
	AllowFields  []string

	// RequiredFields, when non-empty, drops features missing at least half
	// of the named properties before any other processing.
	RequiredFields []string

	Threshold     float64
	Viewport      viewport.Size
	KeepAltitude  bool
	SkipViewports bool
}

func (o Options) withDefaults() Options {
	if o.TitleKey == "" {
		o.TitleKey = "title"
	}
	if o.RegionKey == "" {
		o.RegionKey = "region"
	}
	if o.WikipediaKey == "" {
		o.WikipediaKey = "Wikipedia"
	}
	if o.RemoveFields == nil {
		o.RemoveFields = DefaultRemoveFields
	}
	if o.Threshold == 0 {
		o.Threshold = dedupe.DefaultThreshold
	}
	if o.Viewport.Width == 0 || o.Viewport.Height == 0 {
		o.Viewport = viewport.DefaultSize
	}
	return o
}

// Cleaner applies the pipeline to collections.
type Cleaner struct {
	opts  Options
	fixer *charfix.Fixer
}

// New builds a Cleaner. A nil fixer uses the built-in tables.
func New(opts Options, fixer *charfix.Fixer) *Cleaner {
	if fixer == nil {
		fixer = charfix.NewFixer(charfix.Defaults())
	}
	return &Cleaner{opts: opts.withDefaults(), fixer: fixer}
}

// Clean rewrites the collection in place and returns what happened. Features
// without usable coordinates are reported, never fatal.
func (c *Cleaner) Clean(coll *geojson.Collection) *Result {
	log := zap.L().With(zap.String("component", "cleaner"))

	res := &Result{
		ColorFixes:    map[string]int{},
		FieldsRemoved: map[string]int{},
	}

	if len(c.opts.RequiredFields) > 0 {
		c.filterIncomplete(coll, res)
	}
	res.TotalFeatures = len(coll.Features)

	titles := make([]string, len(coll.Features))
	for i, f := range coll.Features {
		c.fixTitle(i, f, res)
		c.pruneProperties(f, res)
		c.fixColors(f, res)
		if !c.opts.KeepAltitude && f.Geometry != nil {
			res.AltitudeStripped += f.Geometry.Coordinates.Truncate2D()
		}
		titles[i] = f.StringProp(c.opts.TitleKey)
	}

	if !c.opts.SkipViewports {
		res.Regions = viewport.Regions(coll.Features, c.opts.RegionKey, c.opts.Viewport)
		c.applyViewports(coll, res)
	}

	c.findDuplicates(coll, titles, res)
	c.findMissingWikipedia(coll, res)

	log.Info("cleanup complete",
		zap.Int("features", res.TotalFeatures),
		zap.Int("newline_fixes", res.NewlineFixes),
		zap.Int("text_fixes", res.TextFixes),
		zap.Int("skipped", len(res.Skipped)),
		zap.Int("duplicate_groups", len(res.Duplicates)),
		zap.Int("regions", len(res.Regions)),
	)
	return res
}

// filterIncomplete drops features missing at least half of the required
// properties. A property counts as missing when absent, nil, or blank.
func (c *Cleaner) filterIncomplete(coll *geojson.Collection, res *Result) {
	required := c.opts.RequiredFields
	limit := (len(required) + 1) / 2

	kept := coll.Features[:0]
	for i, f := range coll.Features {
		missing := 0
		for _, key := range required {
			v, ok := f.Properties[key]
			if !ok || v == nil {
				missing++
				continue
			}
			if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
				missing++
			}
		}
		if missing >= limit {
			res.FilteredOut = append(res.FilteredOut, SkippedFeature{
				Index:  i,
				Title:  f.StringProp(c.opts.TitleKey),
				Reason: "incomplete properties",
			})
			continue
		}
		kept = append(kept, f)
	}
	coll.Features = kept
}

func (c *Cleaner) fixTitle(i int, f *geojson.Feature, res *Result) {
	title, ok := f.Properties[c.opts.TitleKey].(string)
	if !ok {
		return
	}
	original := title

	if strings.Contains(title, "\n") {
		title = strings.ReplaceAll(title, "\n", " ")
		res.NewlineFixes++
	}

	fixed, changed := c.fixer.FixText(title)
	if changed {
		title = fixed
		res.TextFixes++
	}
	f.Properties[c.opts.TitleKey] = title

	if runes := c.fixer.Suspicious(title); len(runes) > 0 {
		res.Suspicious = append(res.Suspicious, SuspiciousTitle{
			Index:    i,
			Original: original,
			Current:  title,
			Runes:    string(runes),
		})
	}
}

func (c *Cleaner) pruneProperties(f *geojson.Feature, res *Result) {
	for _, key := range c.opts.RemoveFields {
		if f.DeleteProp(key) {
			res.FieldsRemoved[key]++
		}
	}
	if len(c.opts.AllowFields) == 0 {
		return
	}
	allowed := make(map[string]bool, len(c.opts.AllowFields))
	for _, key := range c.opts.AllowFields {
		allowed[key] = true
	}
	for key := range f.Properties {
		if !allowed[key] {
			delete(f.Properties, key)
			res.FieldsRemoved[key]++
		}
	}
}

func (c *Cleaner) fixColors(f *geojson.Feature, res *Result) {
	for _, key := range colorFields {
		hash, ok := f.Properties[key].(string)
		if !ok {
			continue
		}
		if std, changed := c.fixer.FixColor(hash); changed {
			f.Properties[key] = std
			res.ColorFixes[hash+" -> "+std]++
		}
	}
}

// applyViewports injects the per-feature and regional viewport objects and
// drops the superseded flat fields. Features without coordinates are left
// untouched and reported as skipped.
func (c *Cleaner) applyViewports(coll *geojson.Collection, res *Result) {
	regional := make(map[string]viewport.Viewport, len(res.Regions))
	for _, r := range res.Regions {
		regional[r.Region] = r.View
	}

	for i, f := range coll.Features {
		box, ok := viewport.Bounds(viewport.Extract(f.Geometry))
		if !ok {
			res.Skipped = append(res.Skipped, SkippedFeature{
				Index:  i,
				Title:  f.StringProp(c.opts.TitleKey),
				Reason: "no usable coordinates",
			})
			continue
		}

		for _, key := range legacyViewportFields {
			if f.DeleteProp(key) {
				res.FieldsRemoved[key]++
			}
		}

		own := viewport.View(box, c.opts.Viewport)
		f.SetProp("coordinates", own)

		// Regional view when the feature has a region that produced a
		// group; the feature's own view otherwise.
		view := own
		if region := f.StringProp(c.opts.RegionKey); region != "" {
			if rv, ok := regional[region]; ok {
				view = rv
			}
		}
		f.SetProp("regional_coordinates", view)
	}
}

func (c *Cleaner) findDuplicates(coll *geojson.Collection, titles []string, res *Result) {
	for _, cluster := range dedupe.Clusters(titles, c.opts.Threshold) {
		// Features without a title all normalize to ""; that group is
		// missing data, not duplication.
		if dedupe.Normalize(cluster.Labels[0]) == "" {
			continue
		}
		group := make(DuplicateGroup, 0, len(cluster.Labels))
		for k, idx := range cluster.Indexes {
			entry := DuplicateEntry{Title: cluster.Labels[k], FeatureIndex: idx}
			if pts := viewport.Extract(coll.Features[idx].Geometry); len(pts) > 0 {
				entry.Coordinates = []float64{pts[0].Lon, pts[0].Lat}
			}
			group = append(group, entry)
		}
		res.Duplicates = append(res.Duplicates, group)
	}
}

func (c *Cleaner) findMissingWikipedia(coll *geojson.Collection, res *Result) {
	for _, f := range coll.Features {
		title := f.StringProp(c.opts.TitleKey)
		if title == "" {
			continue
		}
		if _, ok := f.Properties[c.opts.WikipediaKey]; ok {
			continue
		}
		gap := WikipediaGap{Title: title}
		if pts := viewport.Extract(f.Geometry); len(pts) > 0 {
			gap.Coordinates = []float64{pts[0].Lon, pts[0].Lat}
		}
		res.MissingWikipedia = append(res.MissingWikipedia, gap)
	}
}
