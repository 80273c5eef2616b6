package specs

// Feature subsets recognized by the segmentation engine.
//
//   - "rfm": recency, frequency, monetary (the default)
//   - "extended": rfm plus tenure days and unique products
const (
	FeatureSetRFM      = "rfm"
	FeatureSetExtended = "extended"
)

// Defaults applied when a config field is left at its zero value.
const (
	// DefaultSegments is the cluster count K used when Segments is zero.
	DefaultSegments = 4

	// DefaultRandomSeed keeps unconfigured runs reproducible.
	DefaultRandomSeed = 42

	// DefaultRestarts is the number of independent k-means initializations;
	// the run with the lowest within-cluster sum of squares wins.
	DefaultRestarts = 10

	// DefaultMaxIterations caps Lloyd iterations per initialization.
	DefaultMaxIterations = 300
)

// ExtractionConfigSpec controls feature extraction input validation.
type ExtractionConfigSpec struct {
	// Lenient switches malformed-row handling from strict (the default:
	// the first malformed row fails extraction with InvalidTransactionError)
	// to lenient (malformed rows are skipped and counted in
	// FeatureTableSpec.SkippedRows).
	//
	// Lenient mode is the only sanctioned partial-failure path in the core.
	Lenient bool `json:"lenient,omitempty"`
}

// SegmentationConfigSpec parameterizes the clustering run.
//
// Zero values take the Default* constants above, so the zero config is a
// valid reproducible 4-segment RFM run.
type SegmentationConfigSpec struct {
	// Target cluster count K. Must be ≥ 2 after defaulting, and no larger
	// than the number of distinct customers.
	Segments int `json:"segments,omitempty"`

	// Feature subset to cluster on: FeatureSetRFM or FeatureSetExtended.
	// Empty means FeatureSetRFM. Using the extended set is an explicit
	// caller choice, never a hidden default.
	FeatureSet string `json:"featureSet,omitempty"`

	// Seed for the clustering's random source. The seed is threaded through
	// the whole run explicitly; no ambient global random state is touched,
	// so concurrent runs with different seeds stay isolated.
	RandomSeed int64 `json:"randomSeed,omitempty"`

	// Number of independent initializations. Zero means DefaultRestarts.
	Restarts int `json:"restarts,omitempty"`

	// Iteration cap per initialization. Zero means DefaultMaxIterations.
	MaxIterations int `json:"maxIterations,omitempty"`
}

// AnalysisConfigSpec parameterizes a full pipeline run
// (extract → segment → label → recommend).
type AnalysisConfigSpec struct {
	// Extraction validation mode.
	Extraction ExtractionConfigSpec `json:"extraction,omitempty"`

	// Clustering parameters.
	Segmentation SegmentationConfigSpec `json:"segmentation,omitempty"`
}

// BehaviorConfigSpec parameterizes behavior scoring.
type BehaviorConfigSpec struct {
	// Days of inactivity after which a customer is considered at high risk
	// of churn. Zero means 60.
	ChurnThresholdDays int `json:"churnThresholdDays,omitempty"`

	// Months ahead to project customer value over. Zero means 12.
	HorizonMonths int `json:"horizonMonths,omitempty"`

	// Extraction validation mode for the underlying transactions.
	Extraction ExtractionConfigSpec `json:"extraction,omitempty"`
}
