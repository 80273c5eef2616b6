package internal

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/chrisconley/segmint/specs"
)

var sampleProducts = []string{
	"Coffee Beans", "Espresso", "Latte", "Cappuccino",
	"Pastries", "Sandwiches", "Tea", "Merchandise",
}

// SampleTransactions generates a seeded synthetic transaction set spanning
// [start, end]. Customers, products, quantities, and prices are drawn
// uniformly, which is enough to exercise extraction and clustering in tests
// and benchmarks without fixture files.
func SampleTransactions(customers, transactions int, seed int64, start, end time.Time) []specs.TransactionSpec {
	rng := rand.New(rand.NewSource(seed))
	span := int(end.Sub(start).Hours() / 24)
	if span < 1 {
		span = 1
	}

	out := make([]specs.TransactionSpec, transactions)
	for i := range out {
		out[i] = specs.TransactionSpec{
			Date:       start.AddDate(0, 0, rng.Intn(span+1)),
			CustomerID: fmt.Sprintf("cust-%03d", rng.Intn(customers)+1),
			Product:    sampleProducts[rng.Intn(len(sampleProducts))],
			Quantity:   fmt.Sprintf("%d", rng.Intn(9)+1),
			Price:      fmt.Sprintf("%.2f", 2.5+rng.Float64()*22.5),
		}
	}
	return out
}
