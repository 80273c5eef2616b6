package specs

import "time"

// CustomerSegmentSpec is one row of the per-customer assignment table:
// the cluster a customer landed in and the business label that cluster
// carries.
type CustomerSegmentSpec struct {
	CustomerID string `json:"customerID"`
	Cluster    int    `json:"cluster"`
	Label      string `json:"label"`
}

// AnalysisReportSpec is the output of a full pipeline run, handed to an
// external reporting or visualization collaborator.
type AnalysisReportSpec struct {
	// System timestamp of the run.
	GeneratedAt time.Time `json:"generatedAt"`

	// Maximum transaction date in the analyzed dataset; the anchor for all
	// recency values in the report.
	ReferenceDate time.Time `json:"referenceDate"`

	// Number of distinct customers analyzed.
	CustomerCount int `json:"customerCount"`

	// Malformed input rows skipped (lenient mode only; zero in strict mode).
	SkippedRows int `json:"skippedRows"`

	// Random seed the segmentation ran with.
	Seed int64 `json:"seed"`

	// One profile per cluster, labeled and carrying its recommendation,
	// ordered by cluster index.
	Profiles []SegmentProfileSpec `json:"profiles"`

	// Per-customer cluster and label assignments, ordered by customer ID.
	Customers []CustomerSegmentSpec `json:"customers"`
}

// CustomerBehaviorSpec holds deterministic per-customer behavior scores:
// purchase cadence, an expected next-purchase date, a churn-risk bucket, and
// a projected value over the configured horizon.
type CustomerBehaviorSpec struct {
	CustomerID string `json:"customerID"`

	// Mean whole days between consecutive purchases. Zero for customers
	// with a single transaction.
	AvgDaysBetweenPurchases float64 `json:"avgDaysBetweenPurchases"`

	// Last purchase date plus the customer's average purchase interval.
	ExpectedNextPurchase time.Time `json:"expectedNextPurchase"`

	// "Low", "Medium", or "High".
	ChurnRisk string `json:"churnRisk"`

	// Projected spend over the horizon (average order value × purchase rate
	// × horizon days), as a decimal string.
	ProjectedValue string `json:"projectedValue"`
}

// Churn-risk buckets.
const (
	ChurnRiskLow    = "Low"
	ChurnRiskMedium = "Medium"
	ChurnRiskHigh   = "High"
)
