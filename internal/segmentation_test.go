package internal

import (
	"testing"

	"github.com/chrisconley/segmint/specs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// threeCustomerTransactions builds the canonical small scenario: two
// similar, recently active, high-spending customers and one stale outlier.
func threeCustomerTransactions() []specs.TransactionSpec {
	var transactions []specs.TransactionSpec

	// cust-a: 5 transactions, $500 total, last seen 1 day before the end.
	for i := 0; i < 5; i++ {
		transactions = append(transactions, newTestTransaction(
			withCustomer("cust-a"),
			withDate(day(150+i*10)),
			withQuantity("1"),
			withPrice("100.00"),
		))
	}
	// cust-b: 1 transaction, $10, 200 days before the end.
	transactions = append(transactions, newTestTransaction(
		withCustomer("cust-b"),
		withDate(day(-9)),
		withQuantity("1"),
		withPrice("10.00"),
	))
	// cust-c: 4 transactions, $450 total, last seen 3 days before the end.
	for i := 0; i < 4; i++ {
		transactions = append(transactions, newTestTransaction(
			withCustomer("cust-c"),
			withDate(day(158+i*10)),
			withQuantity("1"),
			withPrice("112.50"),
		))
	}
	return transactions
}

func TestSegment(t *testing.T) {
	t.Run("assigns every customer to exactly one of K clusters", func(t *testing.T) {
		table, err := Extract(threeCustomerTransactions(), specs.ExtractionConfigSpec{})
		require.NoError(t, err)

		assignment, err := Segment(table, specs.SegmentationConfigSpec{Segments: 2})

		require.NoError(t, err)
		assert.Equal(t, 2, assignment.Clusters)
		assert.Len(t, assignment.Assignments, 3)
		counts := make([]int, assignment.Clusters)
		for _, cluster := range assignment.Assignments {
			require.GreaterOrEqual(t, cluster, 0)
			require.Less(t, cluster, assignment.Clusters)
			counts[cluster]++
		}
		for cluster, count := range counts {
			assert.Positive(t, count, "cluster %d is empty", cluster)
		}
	})

	t.Run("separates the outlier from the similar pair", func(t *testing.T) {
		table, err := Extract(threeCustomerTransactions(), specs.ExtractionConfigSpec{})
		require.NoError(t, err)

		assignment, err := Segment(table, specs.SegmentationConfigSpec{Segments: 2})

		require.NoError(t, err)
		assert.Equal(t, assignment.Assignments["cust-a"], assignment.Assignments["cust-c"],
			"the two similar customers must share a cluster")
		assert.NotEqual(t, assignment.Assignments["cust-a"], assignment.Assignments["cust-b"],
			"the stale low-spend outlier must land alone")
	})

	t.Run("is deterministic for a fixed dataset, K, and seed", func(t *testing.T) {
		table, err := Extract(threeCustomerTransactions(), specs.ExtractionConfigSpec{})
		require.NoError(t, err)
		config := specs.SegmentationConfigSpec{Segments: 2, RandomSeed: 7}

		first, err := Segment(table, config)
		require.NoError(t, err)
		second, err := Segment(table, config)
		require.NoError(t, err)

		assert.Equal(t, first.Assignments, second.Assignments)
		assert.Equal(t, int64(7), first.Seed)
	})

	t.Run("fails with InsufficientDataError when customers < K", func(t *testing.T) {
		table, err := Extract([]specs.TransactionSpec{newTestTransaction()}, specs.ExtractionConfigSpec{})
		require.NoError(t, err)

		_, err = Segment(table, specs.SegmentationConfigSpec{Segments: 2})

		var insufficient *specs.InsufficientDataError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, 1, insufficient.Customers)
		assert.Equal(t, 2, insufficient.Segments)
	})

	t.Run("fails with DegenerateClusterError when all customers are identical", func(t *testing.T) {
		var transactions []specs.TransactionSpec
		for _, id := range []string{"cust-a", "cust-b", "cust-c", "cust-d"} {
			transactions = append(transactions, newTestTransaction(withCustomer(id)))
		}
		table, err := Extract(transactions, specs.ExtractionConfigSpec{})
		require.NoError(t, err)

		_, err = Segment(table, specs.SegmentationConfigSpec{Segments: 2})

		var degenerate *specs.DegenerateClusterError
		require.ErrorAs(t, err, &degenerate)
	})

	t.Run("rejects duplicate customers in the feature table", func(t *testing.T) {
		table, err := Extract(threeCustomerTransactions(), specs.ExtractionConfigSpec{})
		require.NoError(t, err)
		table.Rows = append(table.Rows, table.Rows[0])

		_, err = Segment(table, specs.SegmentationConfigSpec{Segments: 2})

		require.Error(t, err)
		assert.Contains(t, err.Error(), `duplicate customer "cust-a"`)
	})

	t.Run("rejects K below 2", func(t *testing.T) {
		table, err := Extract(threeCustomerTransactions(), specs.ExtractionConfigSpec{})
		require.NoError(t, err)

		_, err = Segment(table, specs.SegmentationConfigSpec{Segments: 1})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 2 segments")
	})

	t.Run("rejects an unknown feature set", func(t *testing.T) {
		table, err := Extract(threeCustomerTransactions(), specs.ExtractionConfigSpec{})
		require.NoError(t, err)

		_, err = Segment(table, specs.SegmentationConfigSpec{Segments: 2, FeatureSet: "pca"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid feature set")
	})

	t.Run("clusters on the extended feature set when asked", func(t *testing.T) {
		table, err := Extract(threeCustomerTransactions(), specs.ExtractionConfigSpec{})
		require.NoError(t, err)

		assignment, err := Segment(table, specs.SegmentationConfigSpec{
			Segments:   2,
			FeatureSet: specs.FeatureSetExtended,
		})

		require.NoError(t, err)
		assert.Len(t, assignment.Assignments, 3)
	})

	t.Run("larger dataset keeps every cluster populated", func(t *testing.T) {
		transactions := SampleTransactions(60, 2000, 11, day(-400), day(0))
		table, err := Extract(transactions, specs.ExtractionConfigSpec{})
		require.NoError(t, err)

		assignment, err := Segment(table, specs.SegmentationConfigSpec{Segments: 4})

		require.NoError(t, err)
		counts := make([]int, assignment.Clusters)
		for _, cluster := range assignment.Assignments {
			counts[cluster]++
		}
		for cluster, count := range counts {
			assert.Positive(t, count, "cluster %d is empty", cluster)
		}
	})
}

func TestStandardize(t *testing.T) {
	t.Run("centers and scales each column", func(t *testing.T) {
		matrix := [][]float64{{1, 10}, {2, 20}, {3, 30}}

		standardize(matrix)

		for col := 0; col < 2; col++ {
			mean := 0.0
			for _, row := range matrix {
				mean += row[col]
			}
			assert.InDelta(t, 0, mean/3, 1e-9)
		}
		assert.InDelta(t, matrix[0][0], matrix[0][1], 1e-9, "equal relative spreads standardize identically")
	})

	t.Run("constant columns become zero instead of dividing by zero", func(t *testing.T) {
		matrix := [][]float64{{5, 1}, {5, 2}, {5, 3}}

		standardize(matrix)

		for _, row := range matrix {
			assert.Zero(t, row[0])
		}
	})
}
