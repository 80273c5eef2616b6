package internal

import (
	"fmt"
	"math"

	"github.com/chrisconley/segmint/specs"
)

type CustomerFeatures struct {
	CustomerID          TransactionCustomerID
	Recency             RecencyDays
	Frequency           Frequency
	Monetary            Monetary
	AvgTransactionValue Decimal
	Tenure              TenureDays
	UniqueProducts      UniqueProducts
}

func NewCustomerFeatures(spec specs.CustomerFeaturesSpec) (CustomerFeatures, error) {
	customerID, err := NewTransactionCustomerID(spec.CustomerID)
	if err != nil {
		return CustomerFeatures{}, fmt.Errorf("invalid customer ID: %w", err)
	}

	recency, err := NewRecencyDays(spec.RecencyDays)
	if err != nil {
		return CustomerFeatures{}, fmt.Errorf("invalid recency: %w", err)
	}

	frequency, err := NewFrequency(spec.Frequency)
	if err != nil {
		return CustomerFeatures{}, fmt.Errorf("invalid frequency: %w", err)
	}

	monetary, err := NewMonetary(spec.Monetary)
	if err != nil {
		return CustomerFeatures{}, fmt.Errorf("invalid monetary: %w", err)
	}

	avg, err := NewDecimal(spec.AvgTransactionValue)
	if err != nil {
		return CustomerFeatures{}, fmt.Errorf("invalid avg transaction value: %w", err)
	}

	tenure, err := NewTenureDays(spec.TenureDays)
	if err != nil {
		return CustomerFeatures{}, fmt.Errorf("invalid tenure: %w", err)
	}

	uniqueProducts, err := NewUniqueProducts(spec.UniqueProducts)
	if err != nil {
		return CustomerFeatures{}, fmt.Errorf("invalid unique products: %w", err)
	}

	return CustomerFeatures{
		CustomerID:          customerID,
		Recency:             recency,
		Frequency:           frequency,
		Monetary:            monetary,
		AvgTransactionValue: avg,
		Tenure:              tenure,
		UniqueProducts:      uniqueProducts,
	}, nil
}

// Vector returns the feature row as floats in the column order of the given
// feature set: recency, frequency, monetary, then (extended only) tenure and
// unique products.
func (f CustomerFeatures) Vector(set FeatureSet) []float64 {
	row := []float64{
		float64(f.Recency.ToInt()),
		float64(f.Frequency.ToInt()),
		f.Monetary.ToDecimal().Float64(),
	}
	if set.IsExtended() {
		row = append(row,
			float64(f.Tenure.ToInt()),
			float64(f.UniqueProducts.ToInt()),
		)
	}
	return row
}

type RecencyDays struct {
	value int
}

func NewRecencyDays(value int) (RecencyDays, error) {
	if value < 0 {
		return RecencyDays{}, fmt.Errorf("recency cannot be negative, got %d", value)
	}
	return RecencyDays{value: value}, nil
}

func (r RecencyDays) ToInt() int {
	return r.value
}

type Frequency struct {
	value int
}

func NewFrequency(value int) (Frequency, error) {
	if value < 1 {
		return Frequency{}, fmt.Errorf("frequency must be at least 1, got %d", value)
	}
	return Frequency{value: value}, nil
}

func (f Frequency) ToInt() int {
	return f.value
}

type Monetary struct {
	value Decimal
}

func NewMonetary(value string) (Monetary, error) {
	d, err := NewDecimal(value)
	if err != nil {
		return Monetary{}, err
	}
	if d.IsNegative() {
		return Monetary{}, fmt.Errorf("monetary cannot be negative, got %s", d.String())
	}
	return Monetary{value: d}, nil
}

func (m Monetary) ToDecimal() Decimal {
	return m.value
}

type TenureDays struct {
	value int
}

func NewTenureDays(value int) (TenureDays, error) {
	if value < 0 {
		return TenureDays{}, fmt.Errorf("tenure cannot be negative, got %d", value)
	}
	return TenureDays{value: value}, nil
}

func (t TenureDays) ToInt() int {
	return t.value
}

type UniqueProducts struct {
	value int
}

func NewUniqueProducts(value int) (UniqueProducts, error) {
	if value < 1 {
		return UniqueProducts{}, fmt.Errorf("unique products must be at least 1, got %d", value)
	}
	return UniqueProducts{value: value}, nil
}

func (u UniqueProducts) ToInt() int {
	return u.value
}

// featureMatrix builds the clustering input: one row per feature row, in
// input order, with the columns of the given feature set.
func featureMatrix(rows []CustomerFeatures, set FeatureSet) [][]float64 {
	matrix := make([][]float64, len(rows))
	for i, row := range rows {
		matrix[i] = row.Vector(set)
	}
	return matrix
}

// standardize rescales each column to zero mean and unit variance in place.
// A zero-variance column keeps scale 1 so constant features contribute
// nothing to distances instead of dividing by zero.
func standardize(matrix [][]float64) {
	if len(matrix) == 0 {
		return
	}

	columns := len(matrix[0])
	n := float64(len(matrix))

	for col := 0; col < columns; col++ {
		mean := 0.0
		for _, row := range matrix {
			mean += row[col]
		}
		mean /= n

		variance := 0.0
		for _, row := range matrix {
			d := row[col] - mean
			variance += d * d
		}
		variance /= n

		scale := 1.0
		if variance > 0 {
			scale = math.Sqrt(variance)
		}

		for _, row := range matrix {
			row[col] = (row[col] - mean) / scale
		}
	}
}
