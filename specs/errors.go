package specs

import "fmt"

// The pipeline's error taxonomy. All are local validation failures surfaced
// immediately to the caller: the core has no I/O and therefore no transient
// failure modes, so nothing is retried internally. The calling layer decides
// whether to retry with adjusted parameters (typically a lower K) or report
// the failure.
//
// All types support errors.As matching.

// InvalidTransactionError reports a malformed input transaction in strict
// extraction mode.
type InvalidTransactionError struct {
	// Zero-based position of the offending row in the input slice.
	Index int

	// Underlying validation failure.
	Err error
}

func (e *InvalidTransactionError) Error() string {
	return fmt.Sprintf("invalid transaction at index %d: %v", e.Index, e.Err)
}

func (e *InvalidTransactionError) Unwrap() error {
	return e.Err
}

// InsufficientDataError reports that the dataset holds fewer distinct
// customers than the requested cluster count.
type InsufficientDataError struct {
	Customers int
	Segments  int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: %d distinct customers for %d segments", e.Customers, e.Segments)
}

// DegenerateClusterError reports that a cluster ended up empty after
// convergence. The caller is responsible for reducing K and retrying; the
// core does not auto-retry.
type DegenerateClusterError struct {
	// Index of the empty cluster.
	Cluster int
}

func (e *DegenerateClusterError) Error() string {
	return fmt.Sprintf("degenerate clustering: cluster %d is empty after convergence", e.Cluster)
}

// LabelingError reports that too few clusters were provided for the labeling
// cascade, which needs at least a high/low contrast to rank against.
type LabelingError struct {
	Clusters int
}

func (e *LabelingError) Error() string {
	return fmt.Sprintf("labeling requires at least 2 clusters, got %d", e.Clusters)
}

// UnknownSegmentError reports a label outside the closed label set. Given
// the labeler's closed output set this should be unreachable; it exists so
// the recommendation table's totality is checkable rather than assumed.
type UnknownSegmentError struct {
	Label string
}

func (e *UnknownSegmentError) Error() string {
	return fmt.Sprintf("unknown segment label %q", e.Label)
}
