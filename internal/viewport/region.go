package viewport

import (
	"github.com/chronomaps/atlas-cli/internal/geojson"
)

// RegionSummary is the combined display geometry for all features sharing a
// region key.
type RegionSummary struct {
	Region       string   `json:"region"`
	FeatureCount int      `json:"feature_count"`
	BBox         BBox     `json:"bounding_box"`
	View         Viewport `json:"view"`
}

// Regions groups features by the string property named by regionKey and
// computes one combined bounding box, center and zoom per region. Features
// with an absent or empty region key belong to no group. FeatureCount is the
// exact number of features carrying the key, whether or not they contributed
// coordinates; a region whose features contribute no coordinates at all
// produces no summary. Summaries come back in first-seen order.
func Regions(features []*geojson.Feature, regionKey string, size Size) []RegionSummary {
	type group struct {
		points []Point
		count  int
	}
	groups := map[string]*group{}
	var order []string

	for _, f := range features {
		region := f.StringProp(regionKey)
		if region == "" {
			continue
		}
		g, ok := groups[region]
		if !ok {
			g = &group{}
			groups[region] = g
			order = append(order, region)
		}
		g.count++
		g.points = append(g.points, Extract(f.Geometry)...)
	}

	var summaries []RegionSummary
	for _, region := range order {
		g := groups[region]
		box, ok := Bounds(g.points)
		if !ok {
			continue
		}
		summaries = append(summaries, RegionSummary{
			Region:       region,
			FeatureCount: g.count,
			BBox:         box,
			View:         View(box, size),
		})
	}
	return summaries
}
