package cleaner

import (
	"github.com/chronomaps/atlas-cli/internal/viewport"
)

// SkippedFeature identifies a feature excluded from a processing step.
type SkippedFeature struct {
	Index  int    `json:"index"`
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// SuspiciousTitle is a title still carrying unrecognized non-ASCII runes
// after repair; it needs manual review.
type SuspiciousTitle struct {
	Index    int    `json:"index"`
	Original string `json:"original"`
	Current  string `json:"current"`
	Runes    string `json:"runes"`
}

// DuplicateEntry is one member of a duplicate group, with the feature's
// first coordinate for operator review.
type DuplicateEntry struct {
	Title        string    `json:"title"`
	Coordinates  []float64 `json:"coordinates,omitempty"`
	FeatureIndex int       `json:"feature_index"`
}

// DuplicateGroup is a set of probable duplicate features. The first entry is
// the seed.
type DuplicateGroup []DuplicateEntry

// WikipediaGap is a feature without a Wikipedia link.
type WikipediaGap struct {
	Title       string    `json:"title"`
	Coordinates []float64 `json:"coordinates,omitempty"`
}

// Result collects everything a cleanup run produced besides the rewritten
// collection itself.
type Result struct {
	TotalFeatures    int                       `json:"total_features"`
	NewlineFixes     int                       `json:"newline_fixes"`
	TextFixes        int                       `json:"text_fixes"`
	AltitudeStripped int                       `json:"altitude_stripped"`
	ColorFixes       map[string]int            `json:"color_fixes,omitempty"`
	FieldsRemoved    map[string]int            `json:"fields_removed,omitempty"`
	FilteredOut      []SkippedFeature          `json:"filtered_out,omitempty"`
	Skipped          []SkippedFeature          `json:"skipped,omitempty"`
	Suspicious       []SuspiciousTitle         `json:"suspicious,omitempty"`
	Duplicates       []DuplicateGroup          `json:"duplicates,omitempty"`
	Regions          []viewport.RegionSummary  `json:"regions,omitempty"`
	MissingWikipedia []WikipediaGap            `json:"missing_wikipedia,omitempty"`
}
