package internal

import (
	"fmt"
	"testing"

	"github.com/chrisconley/segmint/specs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// segmentedTable builds a feature table plus an assignment from synthetic
// per-cluster customer templates: clusters[i] describes every customer in
// cluster i. Each cluster gets two customers so means equal the template.
func segmentedTable(clusters []specs.CustomerFeaturesSpec) (specs.AssignmentSpec, specs.FeatureTableSpec) {
	assignment := specs.AssignmentSpec{
		Clusters:    len(clusters),
		Assignments: map[string]int{},
	}
	table := specs.FeatureTableSpec{}

	for cluster, template := range clusters {
		for member := 0; member < 2; member++ {
			row := template
			row.CustomerID = fmt.Sprintf("cust-%d-%d", cluster, member)
			table.Rows = append(table.Rows, row)
			assignment.Assignments[row.CustomerID] = cluster
		}
	}
	return assignment, table
}

func clusterTemplate(recency, frequency int, monetary string, tenure int) specs.CustomerFeaturesSpec {
	return specs.CustomerFeaturesSpec{
		RecencyDays:         recency,
		Frequency:           frequency,
		Monetary:            monetary,
		AvgTransactionValue: monetary,
		TenureDays:          tenure,
		UniqueProducts:      1,
	}
}

func labelOf(t *testing.T, profiles []specs.SegmentProfileSpec, cluster int) string {
	t.Helper()
	for _, profile := range profiles {
		if profile.Cluster == cluster {
			return profile.Label
		}
	}
	t.Fatalf("no profile for cluster %d", cluster)
	return ""
}

func TestLabel(t *testing.T) {
	t.Run("labels the four archetypes and the leftover as regular", func(t *testing.T) {
		assignment, table := segmentedTable([]specs.CustomerFeaturesSpec{
			clusterTemplate(2, 10, "900", 400),  // big spender, active
			clusterTemplate(5, 40, "300", 500),  // frequent, active
			clusterTemplate(300, 3, "100", 200), // stale
			clusterTemplate(10, 1, "20", 0),     // brand new
			clusterTemplate(50, 5, "150", 250),  // middling
		})

		profiles, err := Label(assignment, table)

		require.NoError(t, err)
		require.Len(t, profiles, 5)
		assert.Equal(t, specs.LabelHighValue, labelOf(t, profiles, 0))
		assert.Equal(t, specs.LabelLoyal, labelOf(t, profiles, 1))
		assert.Equal(t, specs.LabelAtRisk, labelOf(t, profiles, 2))
		assert.Equal(t, specs.LabelNew, labelOf(t, profiles, 3))
		assert.Equal(t, specs.LabelRegular, labelOf(t, profiles, 4))
	})

	t.Run("computes per-cluster aggregates and shares", func(t *testing.T) {
		assignment, table := segmentedTable([]specs.CustomerFeaturesSpec{
			clusterTemplate(2, 10, "900", 400),
			clusterTemplate(300, 3, "100", 200),
		})

		profiles, err := Label(assignment, table)

		require.NoError(t, err)
		first := profiles[0]
		assert.Equal(t, 0, first.Cluster)
		assert.Equal(t, 2.0, first.MeanRecencyDays)
		assert.Equal(t, 10.0, first.MeanFrequency)
		assert.Equal(t, "900", first.MeanMonetary)
		assert.Equal(t, 2, first.CustomerCount)
		assert.Equal(t, 50.0, first.Percentage)
	})

	t.Run("every cluster receives exactly one label from the closed set", func(t *testing.T) {
		assignment, table := segmentedTable([]specs.CustomerFeaturesSpec{
			clusterTemplate(10, 4, "120", 90),
			clusterTemplate(20, 6, "340", 180),
			clusterTemplate(35, 2, "80", 30),
			clusterTemplate(80, 9, "410", 365),
		})

		profiles, err := Label(assignment, table)

		require.NoError(t, err)
		require.Len(t, profiles, 4)
		valid := map[string]bool{}
		for _, label := range specs.Labels() {
			valid[label] = true
		}
		for _, profile := range profiles {
			assert.True(t, valid[profile.Label], "label %q is outside the closed set", profile.Label)
		}
	})

	t.Run("labeling the same inputs twice yields identical labels", func(t *testing.T) {
		assignment, table := segmentedTable([]specs.CustomerFeaturesSpec{
			clusterTemplate(10, 4, "120", 90),
			clusterTemplate(20, 6, "340", 180),
			clusterTemplate(300, 1, "15", 5),
		})

		first, err := Label(assignment, table)
		require.NoError(t, err)
		second, err := Label(assignment, table)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("identical clusters break ties by ascending cluster index", func(t *testing.T) {
		assignment, table := segmentedTable([]specs.CustomerFeaturesSpec{
			clusterTemplate(50, 5, "200", 100),
			clusterTemplate(50, 5, "200", 100),
		})

		profiles, err := Label(assignment, table)

		require.NoError(t, err)
		// Neither cluster is below the recency median, so the cascade falls
		// through to At Risk, which ties and picks cluster 0.
		assert.Equal(t, specs.LabelAtRisk, labelOf(t, profiles, 0))
		assert.Equal(t, specs.LabelRegular, labelOf(t, profiles, 1))
	})

	t.Run("two-cluster split labels high value and at risk", func(t *testing.T) {
		assignment, table := segmentedTable([]specs.CustomerFeaturesSpec{
			clusterTemplate(2, 5, "475", 38),
			clusterTemplate(199, 1, "10", 0),
		})

		profiles, err := Label(assignment, table)

		require.NoError(t, err)
		assert.Equal(t, specs.LabelHighValue, labelOf(t, profiles, 0))
		assert.Equal(t, specs.LabelAtRisk, labelOf(t, profiles, 1))
	})

	t.Run("fails with LabelingError for fewer than 2 clusters", func(t *testing.T) {
		assignment, table := segmentedTable([]specs.CustomerFeaturesSpec{
			clusterTemplate(10, 4, "120", 90),
		})

		_, err := Label(assignment, table)

		var labeling *specs.LabelingError
		require.ErrorAs(t, err, &labeling)
		assert.Equal(t, 1, labeling.Clusters)
	})

	t.Run("fails when a cluster has no members", func(t *testing.T) {
		assignment, table := segmentedTable([]specs.CustomerFeaturesSpec{
			clusterTemplate(10, 4, "120", 90),
			clusterTemplate(20, 6, "340", 180),
		})
		assignment.Clusters = 3 // nobody assigned to cluster 2

		_, err := Label(assignment, table)

		var degenerate *specs.DegenerateClusterError
		require.ErrorAs(t, err, &degenerate)
		assert.Equal(t, 2, degenerate.Cluster)
	})

	t.Run("fails when a customer is missing an assignment", func(t *testing.T) {
		assignment, table := segmentedTable([]specs.CustomerFeaturesSpec{
			clusterTemplate(10, 4, "120", 90),
			clusterTemplate(20, 6, "340", 180),
		})
		delete(assignment.Assignments, "cust-0-0")

		_, err := Label(assignment, table)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no cluster assignment")
	})
}
