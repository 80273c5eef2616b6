package internal

import (
	"math"
	"math/rand"
)

// kmeansResult holds one converged clustering run.
type kmeansResult struct {
	assignment []int
	centroids  [][]float64

	// Within-cluster sum of squared distances; lower is better across
	// restarts.
	inertia float64
}

// runKMeans performs Lloyd's algorithm with k-means++ seeding over the given
// points. All randomness comes from rng, which the caller seeds per run;
// no global random state is touched.
//
// A cluster that loses all members keeps its previous centroid and may stay
// empty through convergence; detecting that is the caller's job.
func runKMeans(points [][]float64, k int, rng *rand.Rand, maxIterations int) kmeansResult {
	centroids := seedCentroids(points, k, rng)
	assignment := make([]int, len(points))
	for i := range assignment {
		assignment[i] = -1
	}

	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i, point := range points {
			nearest, _ := nearestCentroid(point, centroids)
			if nearest != assignment[i] {
				assignment[i] = nearest
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}
		recomputeCentroids(points, assignment, centroids)
	}

	inertia := 0.0
	for i, point := range points {
		inertia += squaredDistance(point, centroids[assignment[i]])
	}

	return kmeansResult{
		assignment: assignment,
		centroids:  centroids,
		inertia:    inertia,
	}
}

// seedCentroids picks k initial centroids with k-means++: the first uniformly
// at random, each subsequent one with probability proportional to its squared
// distance from the nearest centroid chosen so far. When all remaining mass
// is zero (duplicate points), it falls back to the first point, which leaves
// the duplicates' clusters degenerate on purpose.
func seedCentroids(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	first := points[rng.Intn(len(points))]
	centroids = append(centroids, copyPoint(first))

	distances := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, point := range points {
			_, d := nearestCentroid(point, centroids)
			distances[i] = d
			total += d
		}

		next := 0
		if total > 0 {
			target := rng.Float64() * total
			cumulative := 0.0
			for i, d := range distances {
				cumulative += d
				if cumulative >= target {
					next = i
					break
				}
			}
		}
		centroids = append(centroids, copyPoint(points[next]))
	}

	return centroids
}

// nearestCentroid returns the index of the closest centroid and the squared
// distance to it. Ties resolve to the lowest index for reproducibility.
func nearestCentroid(point []float64, centroids [][]float64) (int, float64) {
	best := 0
	bestDistance := math.Inf(1)
	for i, centroid := range centroids {
		d := squaredDistance(point, centroid)
		if d < bestDistance {
			best = i
			bestDistance = d
		}
	}
	return best, bestDistance
}

// recomputeCentroids moves each centroid to the mean of its members. A
// centroid with no members stays where it is.
func recomputeCentroids(points [][]float64, assignment []int, centroids [][]float64) {
	columns := len(centroids[0])
	sums := make([][]float64, len(centroids))
	counts := make([]int, len(centroids))
	for i := range sums {
		sums[i] = make([]float64, columns)
	}

	for i, point := range points {
		cluster := assignment[i]
		counts[cluster]++
		for col, v := range point {
			sums[cluster][col] += v
		}
	}

	for i := range centroids {
		if counts[i] == 0 {
			continue
		}
		for col := range centroids[i] {
			centroids[i][col] = sums[i][col] / float64(counts[i])
		}
	}
}

func squaredDistance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func copyPoint(point []float64) []float64 {
	out := make([]float64, len(point))
	copy(out, point)
	return out
}
