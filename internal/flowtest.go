package internal

import (
	"testing"
)

func TestFlow(t *testing.T) {

	// TransactionSpec (raw point-of-sale facts)
	// Validate rows (strict: reject with InvalidTransactionError, lenient: skip+count)
	// Anchor recency on the max date across the whole dataset
	// Group by customer → CustomerFeatures (RFM + tenure + product diversity)
	// Standardize the selected feature subset (rfm or extended)
	// Seeded k-means (k-means++ init, restarts, lowest inertia wins)
	//   → AssignmentSpec (opaque cluster indices)
	// Aggregate per-cluster means
	// Labeling cascade (removal on match, ties by ascending index):
	//   - High Value: top monetary among below-median-recency clusters
	//   - Loyal: top frequency among below-median-recency clusters
	//   - At Risk: highest recency
	//   - New: lowest frequency among below-median-tenure clusters
	//   - Regular: everything left
	// Recommendation lookup (total over the closed label set)
	//   → AnalysisReportSpec
}
