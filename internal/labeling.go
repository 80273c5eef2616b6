package internal

import (
	"fmt"
	"sort"

	"github.com/chrisconley/segmint/specs"
)

// clusterStats holds one cluster's centroid-level aggregates during
// labeling.
type clusterStats struct {
	cluster       int
	meanRecency   float64
	meanFrequency float64
	meanMonetary  Decimal
	meanTenure    float64
	count         int
}

// labelRule is one step of the labeling cascade: pick returns the cluster
// (among the remaining ones) that should receive the rule's label, or false
// when no remaining cluster qualifies. Labels whose rule never fires are
// simply absent from the result; leftovers become Regular Customers.
type labelRule struct {
	label string
	pick  func(stats []clusterStats, remaining map[int]bool, medians cascadeMedians) (int, bool)
}

// cascadeMedians are computed once over all clusters before the cascade
// starts, so later rules rank against the same baseline as earlier ones.
type cascadeMedians struct {
	recency float64
	tenure  float64
}

// Label implements specs.Label.
// Aggregates per-cluster statistics and assigns business labels through the
// priority cascade. Cluster indices are opaque: identity comes from the
// statistics, never from the index itself.
func Label(assignment specs.AssignmentSpec, table specs.FeatureTableSpec) ([]specs.SegmentProfileSpec, error) {
	if assignment.Clusters < 2 {
		return nil, &specs.LabelingError{Clusters: assignment.Clusters}
	}

	rows := make([]CustomerFeatures, len(table.Rows))
	for i, rowSpec := range table.Rows {
		row, err := NewCustomerFeatures(rowSpec)
		if err != nil {
			return nil, fmt.Errorf("invalid feature row %d: %w", i, err)
		}
		rows[i] = row
	}

	stats, err := aggregateClusters(assignment, rows)
	if err != nil {
		return nil, err
	}

	labels := runCascade(stats)

	total := len(rows)
	profiles := make([]specs.SegmentProfileSpec, len(stats))
	for i, s := range stats {
		profiles[i] = specs.SegmentProfileSpec{
			Cluster:         s.cluster,
			Label:           labels[s.cluster],
			MeanRecencyDays: s.meanRecency,
			MeanFrequency:   s.meanFrequency,
			MeanMonetary:    s.meanMonetary.String(),
			MeanTenureDays:  s.meanTenure,
			CustomerCount:   s.count,
			Percentage:      float64(s.count) / float64(total) * 100,
		}
	}

	return profiles, nil
}

// aggregateClusters computes per-cluster means and counts, ordered by
// cluster index.
func aggregateClusters(assignment specs.AssignmentSpec, rows []CustomerFeatures) ([]clusterStats, error) {
	k := assignment.Clusters
	stats := make([]clusterStats, k)
	monetarySums := make([]Decimal, k)
	for i := range stats {
		stats[i].cluster = i
		monetarySums[i] = NewDecimalFromInt64(0)
	}

	for _, row := range rows {
		cluster, ok := assignment.Assignments[row.CustomerID.ToString()]
		if !ok {
			return nil, fmt.Errorf("customer %q has no cluster assignment", row.CustomerID.ToString())
		}
		if cluster < 0 || cluster >= k {
			return nil, fmt.Errorf("customer %q assigned to cluster %d outside [0, %d)", row.CustomerID.ToString(), cluster, k)
		}

		s := &stats[cluster]
		s.count++
		s.meanRecency += float64(row.Recency.ToInt())
		s.meanFrequency += float64(row.Frequency.ToInt())
		s.meanTenure += float64(row.Tenure.ToInt())
		monetarySums[cluster] = monetarySums[cluster].Add(row.Monetary.ToDecimal())
	}

	for i := range stats {
		if stats[i].count == 0 {
			return nil, &specs.DegenerateClusterError{Cluster: i}
		}
		n := float64(stats[i].count)
		stats[i].meanRecency /= n
		stats[i].meanFrequency /= n
		stats[i].meanTenure /= n
		stats[i].meanMonetary = monetarySums[i].DivInt(stats[i].count)
	}

	return stats, nil
}

// runCascade applies the priority rules in order, removing each matched
// cluster from consideration. Ties between clusters with identical
// statistics break by ascending cluster index.
func runCascade(stats []clusterStats) map[int]string {
	medians := cascadeMedians{
		recency: medianOf(stats, func(s clusterStats) float64 { return s.meanRecency }),
		tenure:  medianOf(stats, func(s clusterStats) float64 { return s.meanTenure }),
	}

	remaining := make(map[int]bool, len(stats))
	for _, s := range stats {
		remaining[s.cluster] = true
	}

	labels := make(map[int]string, len(stats))
	for _, rule := range cascadeRules() {
		cluster, ok := rule.pick(stats, remaining, medians)
		if !ok {
			continue
		}
		labels[cluster] = rule.label
		delete(remaining, cluster)
	}

	for cluster := range remaining {
		labels[cluster] = specs.LabelRegular
	}

	return labels
}

// cascadeRules returns the ordered labeling rules.
//
//  1. High Value: highest mean monetary among clusters with below-median
//     mean recency (still actively buying).
//  2. Loyal Customers: highest mean frequency among remaining clusters with
//     below-median mean recency.
//  3. At Risk: the remaining cluster with the highest mean recency.
//  4. New Customers: lowest mean frequency among remaining clusters with
//     below-median mean tenure.
func cascadeRules() []labelRule {
	return []labelRule{
		{
			label: specs.LabelHighValue,
			pick: func(stats []clusterStats, remaining map[int]bool, medians cascadeMedians) (int, bool) {
				return pickBest(stats, remaining,
					func(s clusterStats) bool { return s.meanRecency < medians.recency },
					func(a, b clusterStats) bool { return a.meanMonetary.Cmp(b.meanMonetary) > 0 },
				)
			},
		},
		{
			label: specs.LabelLoyal,
			pick: func(stats []clusterStats, remaining map[int]bool, medians cascadeMedians) (int, bool) {
				return pickBest(stats, remaining,
					func(s clusterStats) bool { return s.meanRecency < medians.recency },
					func(a, b clusterStats) bool { return a.meanFrequency > b.meanFrequency },
				)
			},
		},
		{
			label: specs.LabelAtRisk,
			pick: func(stats []clusterStats, remaining map[int]bool, medians cascadeMedians) (int, bool) {
				return pickBest(stats, remaining,
					func(s clusterStats) bool { return true },
					func(a, b clusterStats) bool { return a.meanRecency > b.meanRecency },
				)
			},
		},
		{
			label: specs.LabelNew,
			pick: func(stats []clusterStats, remaining map[int]bool, medians cascadeMedians) (int, bool) {
				return pickBest(stats, remaining,
					func(s clusterStats) bool { return s.meanTenure < medians.tenure },
					func(a, b clusterStats) bool { return a.meanFrequency < b.meanFrequency },
				)
			},
		},
	}
}

// pickBest returns the best remaining cluster satisfying qualifies, ranked
// by better. Evaluation runs in ascending cluster order and better is a
// strict comparison, so ties keep the lowest cluster index.
func pickBest(
	stats []clusterStats,
	remaining map[int]bool,
	qualifies func(clusterStats) bool,
	better func(a, b clusterStats) bool,
) (int, bool) {
	found := false
	var best clusterStats
	for _, s := range stats {
		if !remaining[s.cluster] || !qualifies(s) {
			continue
		}
		if !found || better(s, best) {
			best = s
			found = true
		}
	}
	return best.cluster, found
}

// medianOf computes the median of a per-cluster statistic. Even counts take
// the mean of the two middle values.
func medianOf(stats []clusterStats, value func(clusterStats) float64) float64 {
	values := make([]float64, len(stats))
	for i, s := range stats {
		values[i] = value(s)
	}
	sort.Float64s(values)

	mid := len(values) / 2
	if len(values)%2 == 1 {
		return values[mid]
	}
	return (values[mid-1] + values[mid]) / 2
}
