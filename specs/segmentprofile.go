package specs

// Business labels assigned to segments by the labeling cascade.
//
// The label set is closed: every cluster receives exactly one of these five
// names, and the recommendation table is total over them.
const (
	LabelHighValue = "High Value"
	LabelLoyal     = "Loyal Customers"
	LabelAtRisk    = "At Risk"
	LabelNew       = "New Customers"
	LabelRegular   = "Regular Customers"
)

// Labels returns the closed set of segment labels in cascade priority order.
func Labels() []string {
	return []string{LabelHighValue, LabelLoyal, LabelAtRisk, LabelNew, LabelRegular}
}

// Urgency tags attached to segment recommendations.
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

// AssignmentSpec maps every customer to exactly one of K clusters.
//
// Cluster indices are opaque arena indices: partition-based clustering
// carries no inherent business meaning in its numbering and may permute
// indices between otherwise identical runs. Consumers must re-derive
// business identity through the statistics-based labeling cascade, never
// from a raw index.
type AssignmentSpec struct {
	// Number of clusters K. Every index in [0, Clusters) is populated.
	Clusters int `json:"clusters"`

	// Customer ID → cluster index in [0, Clusters).
	Assignments map[string]int `json:"assignments"`

	// Random seed the clustering ran with. For a fixed dataset, seed, and
	// K, cluster memberships are reproducible (up to index permutation).
	Seed int64 `json:"seed"`
}

// SegmentProfileSpec describes one cluster at the centroid level: its mean
// RFM statistics, its population, and the business label and recommendation
// derived from them.
//
// Profiles are derived data, read-only once computed. Mean monetary is a
// decimal string for precision; the remaining means are plain floats since
// they feed ranking comparisons only.
type SegmentProfileSpec struct {
	// Cluster index this profile describes.
	Cluster int `json:"cluster"`

	// Business label from the closed label set.
	Label string `json:"label"`

	// Mean of member customers' RecencyDays.
	MeanRecencyDays float64 `json:"meanRecencyDays"`

	// Mean of member customers' Frequency.
	MeanFrequency float64 `json:"meanFrequency"`

	// Mean of member customers' Monetary, as a decimal string.
	MeanMonetary string `json:"meanMonetary"`

	// Mean of member customers' TenureDays.
	MeanTenureDays float64 `json:"meanTenureDays"`

	// Number of customers assigned to this cluster.
	CustomerCount int `json:"customerCount"`

	// CustomerCount as a percentage of all customers.
	Percentage float64 `json:"percentage"`

	// Business action for this segment. Populated by the analysis pipeline;
	// empty when the profile comes straight from the labeler.
	Recommendation RecommendationSpec `json:"recommendation,omitzero"`
}

// RecommendationSpec is a fixed business action for a labeled segment.
//
// Recommendations are a pure lookup keyed by label; they carry no computed
// state beyond the label they were derived from.
type RecommendationSpec struct {
	// Label the recommendation applies to.
	Label string `json:"label"`

	// Natural-language action text.
	Action string `json:"action"`

	// One of the Urgency* constants.
	Urgency string `json:"urgency"`
}
