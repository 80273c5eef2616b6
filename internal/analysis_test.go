package internal

import (
	"testing"
	"time"

	"github.com/chrisconley/segmint/specs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	config := specs.AnalysisConfigSpec{
		Segmentation: specs.SegmentationConfigSpec{Segments: 2},
	}

	t.Run("runs the full pipeline over the three-customer dataset", func(t *testing.T) {
		report, err := Analyze(threeCustomerTransactions(), config)

		require.NoError(t, err)
		assert.Equal(t, 3, report.CustomerCount)
		assert.Equal(t, 0, report.SkippedRows)
		assert.Equal(t, int64(specs.DefaultRandomSeed), report.Seed)
		assert.Equal(t, day(190), report.ReferenceDate)
		assert.WithinDuration(t, time.Now().UTC(), report.GeneratedAt, time.Minute)
	})

	t.Run("separates the dormant customer from the active pair", func(t *testing.T) {
		report, err := Analyze(threeCustomerTransactions(), config)

		require.NoError(t, err)
		require.Len(t, report.Customers, 3)

		byID := map[string]specs.CustomerSegmentSpec{}
		for _, customer := range report.Customers {
			byID[customer.CustomerID] = customer
		}

		assert.Equal(t, specs.LabelHighValue, byID["cust-a"].Label)
		assert.Equal(t, specs.LabelHighValue, byID["cust-c"].Label)
		assert.Equal(t, specs.LabelAtRisk, byID["cust-b"].Label)
		assert.Equal(t, byID["cust-a"].Cluster, byID["cust-c"].Cluster)
		assert.NotEqual(t, byID["cust-a"].Cluster, byID["cust-b"].Cluster)
	})

	t.Run("orders customers by ID and profiles by cluster", func(t *testing.T) {
		report, err := Analyze(threeCustomerTransactions(), config)

		require.NoError(t, err)
		assert.Equal(t, "cust-a", report.Customers[0].CustomerID)
		assert.Equal(t, "cust-b", report.Customers[1].CustomerID)
		assert.Equal(t, "cust-c", report.Customers[2].CustomerID)
		require.Len(t, report.Profiles, 2)
		assert.Equal(t, 0, report.Profiles[0].Cluster)
		assert.Equal(t, 1, report.Profiles[1].Cluster)
	})

	t.Run("attaches a recommendation to every profile", func(t *testing.T) {
		report, err := Analyze(threeCustomerTransactions(), config)

		require.NoError(t, err)
		for _, profile := range report.Profiles {
			assert.Equal(t, profile.Label, profile.Recommendation.Label)
			assert.NotEmpty(t, profile.Recommendation.Action)
			assert.NotEmpty(t, profile.Recommendation.Urgency)
		}
	})

	t.Run("reports skipped rows from lenient extraction", func(t *testing.T) {
		transactions := append(threeCustomerTransactions(), specs.TransactionSpec{
			Date:     day(100),
			Product:  "Espresso",
			Quantity: "1",
		})
		lenient := config
		lenient.Extraction.Lenient = true

		report, err := Analyze(transactions, lenient)

		require.NoError(t, err)
		assert.Equal(t, 3, report.CustomerCount)
		assert.Equal(t, 1, report.SkippedRows)
	})

	t.Run("fails fast on malformed input in strict mode", func(t *testing.T) {
		transactions := append(threeCustomerTransactions(), specs.TransactionSpec{
			Date:     day(100),
			Product:  "Espresso",
			Quantity: "1",
		})

		_, err := Analyze(transactions, config)

		var invalid *specs.InvalidTransactionError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("propagates insufficient data from segmentation", func(t *testing.T) {
		transactions := []specs.TransactionSpec{
			newTestTransaction(),
		}

		_, err := Analyze(transactions, config)

		var insufficient *specs.InsufficientDataError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, 1, insufficient.Customers)
		assert.Equal(t, 2, insufficient.Segments)
	})

	t.Run("same seed and data produce identical reports", func(t *testing.T) {
		first, err := Analyze(threeCustomerTransactions(), config)
		require.NoError(t, err)
		second, err := Analyze(threeCustomerTransactions(), config)
		require.NoError(t, err)

		assert.Equal(t, first.Profiles, second.Profiles)
		assert.Equal(t, first.Customers, second.Customers)
	})
}
