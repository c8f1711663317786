// Package dedupe finds near-duplicate text labels so operators can merge or
// discard redundant entries.
package dedupe

import (
	"github.com/agext/levenshtein"
)

// DefaultThreshold is the similarity ratio above which two normalized labels
// count as duplicates.
const DefaultThreshold = 0.85

// Cluster is a group of labels judged duplicates of its seed. Labels holds
// the original, un-normalized strings; Indexes holds their positions in the
// input sequence. The first entry of each is the seed.
type Cluster struct {
	Indexes []int
	Labels  []string
}

// Clusters partitions labels into duplicate groups with a single greedy pass.
// Each unclaimed label in input order seeds a group; every later unclaimed
// label joins that group when its normalized form equals the seed's exactly
// or its edit-distance similarity to the seed exceeds threshold. Membership
// is decided against the seed only, never candidate-vs-candidate, so a group
// is not transitively similar throughout; replacing this with full
// equivalence-class clustering would change output membership. Groups with a
// single member are dropped.
//
// The pass is O(n²) in label count, which is fine for the few thousand
// labels a dataset carries.
func Clusters(labels []string, threshold float64) []Cluster {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	normalized := make([]string, len(labels))
	for i, l := range labels {
		normalized[i] = Normalize(l)
	}

	claimed := make([]bool, len(labels))
	var clusters []Cluster

	for i := range labels {
		if claimed[i] {
			continue
		}
		claimed[i] = true
		group := Cluster{Indexes: []int{i}, Labels: []string{labels[i]}}

		for j := i + 1; j < len(labels); j++ {
			if claimed[j] {
				continue
			}
			if normalized[j] == normalized[i] || Ratio(normalized[i], normalized[j]) > threshold {
				claimed[j] = true
				group.Indexes = append(group.Indexes, j)
				group.Labels = append(group.Labels, labels[j])
			}
		}

		if len(group.Labels) > 1 {
			clusters = append(clusters, group)
		}
	}
	return clusters
}

var levParams = levenshtein.NewParams()

// Ratio is a normalized edit-distance similarity in [0,1] where 1 means
// identical. It is symmetric; case-insensitivity comes from Normalize.
func Ratio(a, b string) float64 {
	return levenshtein.Similarity(a, b, levParams)
}
