package vocab

import (
	"log"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultThreshold is the minimum similarity for two amenity strings
// to fold into the same cluster.
const DefaultThreshold = 0.85

// Cluster is one group of near-duplicate raw amenity strings. The
// canonical label is the lexicographically earliest member, since the
// candidate pool is sorted before the greedy pass.
type Cluster struct {
	Canonical string
	Members   []string
}

// Reducer folds a noisy multi-city amenity vocabulary into a
// deduplicated canonical list.
type Reducer struct {
	threshold float64
	logger    *log.Logger
}

// NewReducer returns a Reducer with the given similarity threshold.
// A nil logger disables merge diagnostics.
func NewReducer(threshold float64, logger *log.Logger) *Reducer {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Reducer{threshold: threshold, logger: logger}
}

// normalizeKey produces the equality-grouping form of a raw amenity
// string: NFKC fold, trim, lowercase.
func normalizeKey(s string) string {
	return strings.ToLower(norm.NFKC.String(strings.TrimSpace(s)))
}

// Reduce clusters the raw strings and returns the sorted canonical
// labels. Every distinct input lands in exactly one cluster; the pass
// is greedy over the sorted pool, so the result is deterministic for
// a given input set. Empty input yields an empty list.
func (r *Reducer) Reduce(raw []string) []string {
	canon := make([]string, 0)
	for _, c := range r.Clusters(raw) {
		canon = append(canon, c.Canonical)
	}
	return canon
}

// Clusters runs the reduction and returns the full cluster breakdown.
func (r *Reducer) Clusters(raw []string) []Cluster {
	// Equality grouping: first-encountered casing represents its key.
	byKey := make(map[string]string)
	keys := make([]string, 0, len(raw))
	for _, s := range raw {
		key := normalizeKey(s)
		if key == "" {
			continue
		}
		if _, seen := byKey[key]; !seen {
			byKey[key] = strings.TrimSpace(s)
			keys = append(keys, key)
		}
	}
	// The greedy pass below is order-sensitive; sorting pins the
	// outcome regardless of input order.
	sort.Strings(keys)

	consumed := make(map[string]bool, len(keys))
	clusters := make([]Cluster, 0, len(keys))
	for i, key := range keys {
		if consumed[key] {
			continue
		}
		c := Cluster{Canonical: byKey[key]}
		for _, cand := range keys[i:] {
			if consumed[cand] {
				continue
			}
			if Ratio(key, cand) >= r.threshold {
				consumed[cand] = true
				c.Members = append(c.Members, byKey[cand])
			}
		}
		clusters = append(clusters, c)

		if len(c.Members) > 1 && r.logger != nil {
			r.logger.Printf("vocab: merged %d similar amenities into %q: %s",
				len(c.Members), c.Canonical, strings.Join(c.Members, ", "))
		}
	}
	return clusters
}
