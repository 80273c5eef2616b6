package internal

import (
	"fmt"

	"github.com/chrisconley/segmint/specs"
)

type ExtractionConfig struct {
	lenient bool
}

func NewExtractionConfig(spec specs.ExtractionConfigSpec) (ExtractionConfig, error) {
	return ExtractionConfig{lenient: spec.Lenient}, nil
}

func (c ExtractionConfig) IsLenient() bool {
	return c.lenient
}

type SegmentationConfig struct {
	segments      SegmentCount
	featureSet    FeatureSet
	seed          int64
	restarts      int
	maxIterations int
}

func NewSegmentationConfig(spec specs.SegmentationConfigSpec) (SegmentationConfig, error) {
	segmentsValue := spec.Segments
	if segmentsValue == 0 {
		segmentsValue = specs.DefaultSegments
	}
	segments, err := NewSegmentCount(segmentsValue)
	if err != nil {
		return SegmentationConfig{}, fmt.Errorf("invalid segments: %w", err)
	}

	featureSet, err := NewFeatureSet(spec.FeatureSet)
	if err != nil {
		return SegmentationConfig{}, fmt.Errorf("invalid feature set: %w", err)
	}

	seed := spec.RandomSeed
	if seed == 0 {
		seed = specs.DefaultRandomSeed
	}

	restarts := spec.Restarts
	if restarts == 0 {
		restarts = specs.DefaultRestarts
	}
	if restarts < 0 {
		return SegmentationConfig{}, fmt.Errorf("restarts cannot be negative")
	}

	maxIterations := spec.MaxIterations
	if maxIterations == 0 {
		maxIterations = specs.DefaultMaxIterations
	}
	if maxIterations < 0 {
		return SegmentationConfig{}, fmt.Errorf("max iterations cannot be negative")
	}

	return SegmentationConfig{
		segments:      segments,
		featureSet:    featureSet,
		seed:          seed,
		restarts:      restarts,
		maxIterations: maxIterations,
	}, nil
}

func (c SegmentationConfig) Segments() SegmentCount {
	return c.segments
}

func (c SegmentationConfig) FeatureSet() FeatureSet {
	return c.featureSet
}

func (c SegmentationConfig) Seed() int64 {
	return c.seed
}

func (c SegmentationConfig) Restarts() int {
	return c.restarts
}

func (c SegmentationConfig) MaxIterations() int {
	return c.maxIterations
}

type SegmentCount struct {
	value int
}

func NewSegmentCount(value int) (SegmentCount, error) {
	if value < 2 {
		return SegmentCount{}, fmt.Errorf("at least 2 segments are required, got %d", value)
	}
	return SegmentCount{value: value}, nil
}

func (s SegmentCount) ToInt() int {
	return s.value
}

type FeatureSet struct {
	value string
}

func NewFeatureSet(value string) (FeatureSet, error) {
	if value == "" {
		value = specs.FeatureSetRFM
	}

	switch value {
	case specs.FeatureSetRFM, specs.FeatureSetExtended:
		// Valid
	default:
		return FeatureSet{}, fmt.Errorf("invalid feature set: %q", value)
	}

	return FeatureSet{value: value}, nil
}

func (f FeatureSet) ToString() string {
	return f.value
}

func (f FeatureSet) IsExtended() bool {
	return f.value == specs.FeatureSetExtended
}

// Columns returns the number of feature columns this set clusters on.
func (f FeatureSet) Columns() int {
	if f.IsExtended() {
		return 5
	}
	return 3
}

type BehaviorConfig struct {
	churnThresholdDays int
	horizonMonths      int
	extraction         ExtractionConfig
}

func NewBehaviorConfig(spec specs.BehaviorConfigSpec) (BehaviorConfig, error) {
	threshold := spec.ChurnThresholdDays
	if threshold == 0 {
		threshold = 60
	}
	if threshold < 0 {
		return BehaviorConfig{}, fmt.Errorf("churn threshold cannot be negative")
	}

	horizon := spec.HorizonMonths
	if horizon == 0 {
		horizon = 12
	}
	if horizon < 0 {
		return BehaviorConfig{}, fmt.Errorf("horizon cannot be negative")
	}

	extraction, err := NewExtractionConfig(spec.Extraction)
	if err != nil {
		return BehaviorConfig{}, fmt.Errorf("invalid extraction config: %w", err)
	}

	return BehaviorConfig{
		churnThresholdDays: threshold,
		horizonMonths:      horizon,
		extraction:         extraction,
	}, nil
}

func (c BehaviorConfig) ChurnThresholdDays() int {
	return c.churnThresholdDays
}

func (c BehaviorConfig) HorizonMonths() int {
	return c.horizonMonths
}

func (c BehaviorConfig) Extraction() ExtractionConfig {
	return c.extraction
}
