package internal

import (
	"fmt"
	"sort"

	"github.com/chrisconley/segmint/specs"
)

// Extract implements specs.Extract.
// Converts specs to domain objects, aggregates per customer, and converts
// back to specs.
func Extract(transactions []specs.TransactionSpec, configSpec specs.ExtractionConfigSpec) (specs.FeatureTableSpec, error) {
	config, err := NewExtractionConfig(configSpec)
	if err != nil {
		return specs.FeatureTableSpec{}, fmt.Errorf("invalid config: %w", err)
	}

	if len(transactions) == 0 {
		return specs.FeatureTableSpec{}, fmt.Errorf("no transactions to extract features from")
	}

	// Convert transaction specs to domain objects. Strict mode fails on the
	// first malformed row; lenient mode skips and counts it.
	domainTransactions := make([]Transaction, 0, len(transactions))
	skipped := 0
	for i, spec := range transactions {
		tx, err := NewTransaction(spec)
		if err != nil {
			if config.IsLenient() {
				skipped++
				continue
			}
			return specs.FeatureTableSpec{}, &specs.InvalidTransactionError{Index: i, Err: err}
		}
		domainTransactions = append(domainTransactions, tx)
	}

	if len(domainTransactions) == 0 {
		return specs.FeatureTableSpec{}, fmt.Errorf("no valid transactions after skipping %d malformed rows", skipped)
	}

	rows, referenceDate := extract(domainTransactions)

	rowSpecs := make([]specs.CustomerFeaturesSpec, len(rows))
	for i, row := range rows {
		rowSpecs[i] = specs.CustomerFeaturesSpec{
			CustomerID:          row.CustomerID.ToString(),
			RecencyDays:         row.Recency.ToInt(),
			Frequency:           row.Frequency.ToInt(),
			Monetary:            row.Monetary.ToDecimal().String(),
			AvgTransactionValue: row.AvgTransactionValue.String(),
			TenureDays:          row.Tenure.ToInt(),
			UniqueProducts:      row.UniqueProducts.ToInt(),
		}
	}

	return specs.FeatureTableSpec{
		Rows:          rowSpecs,
		ReferenceDate: referenceDate.ToTime(),
		SkippedRows:   skipped,
	}, nil
}

// customerAccumulator collects one customer's transactions during grouping.
type customerAccumulator struct {
	first    TransactionDate
	last     TransactionDate
	count    int
	monetary Decimal
	products map[string]bool
}

// extract aggregates validated transactions into one feature row per
// distinct customer. The recency anchor is the maximum date across the whole
// input, so recency is comparable between customers regardless of when each
// was last active.
//
// Rows come back sorted by customer ID. Callers must not rely on the order;
// sorting only keeps downstream runs deterministic for a fixed dataset.
func extract(transactions []Transaction) ([]CustomerFeatures, TransactionDate) {
	referenceDate := transactions[0].Date
	byCustomer := make(map[string]*customerAccumulator)

	for _, tx := range transactions {
		if tx.Date.After(referenceDate) {
			referenceDate = tx.Date
		}

		key := tx.CustomerID.ToString()
		acc, ok := byCustomer[key]
		if !ok {
			acc = &customerAccumulator{
				first:    tx.Date,
				last:     tx.Date,
				monetary: NewDecimalFromInt64(0),
				products: make(map[string]bool),
			}
			byCustomer[key] = acc
		}

		if tx.Date.Before(acc.first) {
			acc.first = tx.Date
		}
		if tx.Date.After(acc.last) {
			acc.last = tx.Date
		}
		acc.count++
		acc.monetary = acc.monetary.Add(tx.Amount())
		acc.products[tx.Product.ToString()] = true
	}

	customerIDs := make([]string, 0, len(byCustomer))
	for id := range byCustomer {
		customerIDs = append(customerIDs, id)
	}
	sort.Strings(customerIDs)

	rows := make([]CustomerFeatures, 0, len(byCustomer))
	for _, id := range customerIDs {
		acc := byCustomer[id]

		customerID, _ := NewTransactionCustomerID(id)
		recency, _ := NewRecencyDays(referenceDate.DaysSince(acc.last))
		frequency, _ := NewFrequency(acc.count)
		monetary := Monetary{value: acc.monetary}
		tenure, _ := NewTenureDays(acc.last.DaysSince(acc.first))
		uniqueProducts, _ := NewUniqueProducts(len(acc.products))

		rows = append(rows, CustomerFeatures{
			CustomerID:          customerID,
			Recency:             recency,
			Frequency:           frequency,
			Monetary:            monetary,
			AvgTransactionValue: acc.monetary.DivInt(acc.count),
			Tenure:              tenure,
			UniqueProducts:      uniqueProducts,
		})
	}

	return rows, referenceDate
}
