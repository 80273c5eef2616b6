package specs

// Extract converts raw transactions into one feature row per distinct
// customer.
//
// Process:
//  1. Validate each transaction (strict mode fails on the first malformed
//     row with InvalidTransactionError; lenient mode skips and counts)
//  2. Determine the reference date: the maximum date across the whole input
//  3. Group by customer ID and aggregate recency, frequency, monetary,
//     average transaction value, tenure, and product diversity
//
// Returns a FeatureTableSpec with exactly one row per distinct customer.
// Returns error if the input is empty or (in strict mode) malformed.
//
// This is the spec-level interface using only primitive types.
// See internal.Extract for the reference implementation.
type Extract func(
	transactions []TransactionSpec,
	config ExtractionConfigSpec,
) (FeatureTableSpec, error)

// Segment partitions customers into K clusters over standardized features.
//
// Process:
//  1. Select the configured feature subset (rfm or extended)
//  2. Standardize each column to zero mean and unit variance
//  3. Run seeded k-means (k-means++ seeding, Lloyd iterations, multiple
//     restarts keeping the lowest within-cluster sum of squares)
//
// Returns an AssignmentSpec mapping every customer to exactly one cluster.
// Returns InsufficientDataError when distinct customers < K and
// DegenerateClusterError when any cluster is empty after convergence.
//
// See internal.Segment for the reference implementation.
type Segment func(
	table FeatureTableSpec,
	config SegmentationConfigSpec,
) (AssignmentSpec, error)

// Label derives one profiled, labeled segment per cluster.
//
// Process:
//  1. Aggregate per-cluster means (recency, frequency, monetary, tenure)
//     and population counts
//  2. Apply the priority cascade: High Value, Loyal Customers, At Risk,
//     New Customers, then Regular Customers; each rule removes its match
//     from consideration, and ties break by ascending cluster index
//
// Returns one SegmentProfileSpec per cluster, ordered by cluster index,
// every profile labeled from the closed label set.
// Returns LabelingError when fewer than 2 clusters are provided.
//
// See internal.Label for the reference implementation.
type Label func(
	assignment AssignmentSpec,
	table FeatureTableSpec,
) ([]SegmentProfileSpec, error)

// Recommend maps a labeled segment profile to its fixed business action.
//
// This is a pure lookup keyed by label; no computation.
// Returns UnknownSegmentError for labels outside the closed set, which is
// unreachable for profiles produced by Label.
//
// See internal.Recommend for the reference implementation.
type Recommend func(profile SegmentProfileSpec) (RecommendationSpec, error)

// Analyze runs the whole pipeline: extract → segment → label → recommend.
//
// A pure function of its inputs: fixed transactions, config, and seed yield
// a reproducible report (up to cluster-index permutation, which labels
// absorb).
//
// See internal.Analyze for the reference implementation.
type Analyze func(
	transactions []TransactionSpec,
	config AnalysisConfigSpec,
) (AnalysisReportSpec, error)

// Behavior computes deterministic per-customer behavior scores: purchase
// cadence, expected next-purchase date, churn-risk bucket, and projected
// value. These are closed-form heuristics over the transaction history, not
// fitted models.
//
// See internal.Behavior for the reference implementation.
type Behavior func(
	transactions []TransactionSpec,
	config BehaviorConfigSpec,
) ([]CustomerBehaviorSpec, error)
