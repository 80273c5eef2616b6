package internal

import (
	"fmt"
	"sort"

	"github.com/chrisconley/segmint/specs"
)

// Behavior implements specs.Behavior.
// Computes deterministic per-customer behavior scores from the transaction
// history: purchase cadence, an expected next-purchase date, a churn-risk
// bucket, and a projected value over the configured horizon. These are
// closed-form heuristics, not fitted models.
func Behavior(transactions []specs.TransactionSpec, configSpec specs.BehaviorConfigSpec) ([]specs.CustomerBehaviorSpec, error) {
	config, err := NewBehaviorConfig(configSpec)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if len(transactions) == 0 {
		return nil, fmt.Errorf("no transactions to score behavior from")
	}

	domainTransactions := make([]Transaction, 0, len(transactions))
	for i, spec := range transactions {
		tx, err := NewTransaction(spec)
		if err != nil {
			if config.Extraction().IsLenient() {
				continue
			}
			return nil, &specs.InvalidTransactionError{Index: i, Err: err}
		}
		domainTransactions = append(domainTransactions, tx)
	}

	if len(domainTransactions) == 0 {
		return nil, fmt.Errorf("no valid transactions to score behavior from")
	}

	rows, referenceDate := extract(domainTransactions)
	datesByCustomer := purchaseDates(domainTransactions)

	results := make([]specs.CustomerBehaviorSpec, len(rows))
	for i, row := range rows {
		customerID := row.CustomerID.ToString()
		dates := datesByCustomer[customerID]

		avgInterval := averageInterval(dates)
		lastPurchase := dates[len(dates)-1]
		recency := referenceDate.DaysSince(lastPurchase)

		results[i] = specs.CustomerBehaviorSpec{
			CustomerID:              customerID,
			AvgDaysBetweenPurchases: avgInterval,
			ExpectedNextPurchase:    lastPurchase.ToTime().AddDate(0, 0, int(avgInterval+0.5)),
			ChurnRisk:               churnRisk(recency, avgInterval, config.ChurnThresholdDays()),
			ProjectedValue:          projectedValue(row, config.HorizonMonths()).String(),
		}
	}

	return results, nil
}

// purchaseDates collects each customer's transaction dates in ascending
// order.
func purchaseDates(transactions []Transaction) map[string][]TransactionDate {
	dates := make(map[string][]TransactionDate)
	for _, tx := range transactions {
		key := tx.CustomerID.ToString()
		dates[key] = append(dates[key], tx.Date)
	}
	for _, ds := range dates {
		sort.Slice(ds, func(i, j int) bool { return ds[i].Before(ds[j]) })
	}
	return dates
}

// averageInterval returns the mean whole days between consecutive purchases,
// zero for a single-purchase customer.
func averageInterval(dates []TransactionDate) float64 {
	if len(dates) < 2 {
		return 0
	}
	totalDays := dates[len(dates)-1].DaysSince(dates[0])
	return float64(totalDays) / float64(len(dates)-1)
}

// churnRisk buckets a customer by how overdue they are.
//
// High: inactive past the churn threshold. Medium: inactive past half the
// threshold, or past twice their own purchase cadence. Low otherwise.
func churnRisk(recencyDays int, avgInterval float64, thresholdDays int) string {
	switch {
	case recencyDays >= thresholdDays:
		return specs.ChurnRiskHigh
	case recencyDays*2 >= thresholdDays,
		avgInterval > 0 && float64(recencyDays) >= 2*avgInterval:
		return specs.ChurnRiskMedium
	default:
		return specs.ChurnRiskLow
	}
}

// projectedValue estimates spend over the horizon: average order value ×
// purchase rate per day × horizon days. The rate divides by lifetime + 1 so
// single-day customers do not project infinite frequency.
func projectedValue(row CustomerFeatures, horizonMonths int) Decimal {
	horizonDays := NewDecimalFromInt64(int64(horizonMonths) * 30)
	lifetime := NewDecimalFromInt64(int64(row.Tenure.ToInt() + 1))
	frequency := NewDecimalFromInt64(int64(row.Frequency.ToInt()))

	ratePerDay := frequency.Div(lifetime)
	return row.AvgTransactionValue.Mul(ratePerDay).Mul(horizonDays)
}
