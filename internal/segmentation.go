package internal

import (
	"fmt"
	"math/rand"

	"github.com/chrisconley/segmint/specs"
)

// Segment implements specs.Segment.
// Converts specs to domain objects, clusters standardized features, and
// converts back to specs.
func Segment(table specs.FeatureTableSpec, configSpec specs.SegmentationConfigSpec) (specs.AssignmentSpec, error) {
	config, err := NewSegmentationConfig(configSpec)
	if err != nil {
		return specs.AssignmentSpec{}, fmt.Errorf("invalid config: %w", err)
	}

	rows := make([]CustomerFeatures, len(table.Rows))
	seen := make(map[string]bool, len(table.Rows))
	for i, rowSpec := range table.Rows {
		row, err := NewCustomerFeatures(rowSpec)
		if err != nil {
			return specs.AssignmentSpec{}, fmt.Errorf("invalid feature row %d: %w", i, err)
		}
		// Assignments are keyed by customer, so a duplicate row would
		// silently shadow the earlier one.
		id := row.CustomerID.ToString()
		if seen[id] {
			return specs.AssignmentSpec{}, fmt.Errorf("invalid feature row %d: duplicate customer %q", i, id)
		}
		seen[id] = true
		rows[i] = row
	}

	k := config.Segments().ToInt()
	if len(rows) < k {
		return specs.AssignmentSpec{}, &specs.InsufficientDataError{Customers: len(rows), Segments: k}
	}

	matrix := featureMatrix(rows, config.FeatureSet())
	standardize(matrix)

	best := segment(matrix, k, config)

	// Empty clusters after convergence are a data problem, not a retryable
	// condition: the caller lowers K.
	counts := make([]int, k)
	for _, cluster := range best.assignment {
		counts[cluster]++
	}
	for cluster, count := range counts {
		if count == 0 {
			return specs.AssignmentSpec{}, &specs.DegenerateClusterError{Cluster: cluster}
		}
	}

	assignments := make(map[string]int, len(rows))
	for i, row := range rows {
		assignments[row.CustomerID.ToString()] = best.assignment[i]
	}

	return specs.AssignmentSpec{
		Clusters:    k,
		Assignments: assignments,
		Seed:        config.Seed(),
	}, nil
}

// segment runs the configured number of seeded k-means restarts and keeps
// the run with the lowest inertia. The random source is created per call
// from the configured seed, so concurrent invocations stay isolated.
func segment(matrix [][]float64, k int, config SegmentationConfig) kmeansResult {
	rng := rand.New(rand.NewSource(config.Seed()))

	best := runKMeans(matrix, k, rng, config.MaxIterations())
	for restart := 1; restart < config.Restarts(); restart++ {
		candidate := runKMeans(matrix, k, rng, config.MaxIterations())
		if candidate.inertia < best.inertia {
			best = candidate
		}
	}
	return best
}
