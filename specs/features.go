package specs

import "time"

// CustomerFeaturesSpec represents one customer's behavioral feature vector.
//
// Exactly one feature row exists per distinct customer ID in the source
// transaction set. Rows are recomputed fresh on every analysis run and are
// never mutated incrementally.
//
// Invariants: Frequency ≥ 1, RecencyDays ≥ 0, Monetary ≥ 0.
type CustomerFeaturesSpec struct {
	// The customer this row describes.
	CustomerID string `json:"customerID"`

	// Whole days between the customer's most recent transaction and the
	// reference date of the feature table.
	//
	// The reference date is the maximum transaction date across the whole
	// dataset, not wall-clock "now", so recency is deterministic for test
	// fixtures and comparable across customers in historical datasets.
	RecencyDays int `json:"recencyDays"`

	// Count of transactions attributed to the customer.
	Frequency int `json:"frequency"`

	// Sum of quantity × unit price across the customer's transactions,
	// as a decimal string.
	Monetary string `json:"monetary"`

	// Monetary divided by Frequency, as a decimal string.
	//
	// For a customer with a single transaction this equals Monetary.
	AvgTransactionValue string `json:"avgTransactionValue"`

	// Whole days between the customer's first and last transaction.
	//
	// Zero for a customer with a single transaction.
	TenureDays int `json:"tenureDays"`

	// Count of distinct product identifiers the customer purchased.
	UniqueProducts int `json:"uniqueProducts"`
}

// FeatureTableSpec is the output of feature extraction: one row per distinct
// customer, plus the context needed to interpret the rows.
//
// Row ordering is unspecified; consumers must key on CustomerID rather than
// position. (The reference implementation emits rows sorted by customer ID,
// but that is an implementation detail, not a contract.)
type FeatureTableSpec struct {
	// Per-customer feature rows, exactly one per distinct customer ID
	// present in the input transactions.
	Rows []CustomerFeaturesSpec `json:"rows"`

	// Maximum transaction date observed across the entire input set.
	//
	// All RecencyDays values are measured against this date.
	ReferenceDate time.Time `json:"referenceDate"`

	// Number of malformed input rows skipped in lenient mode.
	//
	// Always zero in strict mode, where the first malformed row fails the
	// whole extraction instead.
	SkippedRows int `json:"skippedRows"`
}
