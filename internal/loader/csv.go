// Package loader brings transaction histories in from the outside world:
// CSV exports, warehouse tables, and a directory watcher for fresh exports.
// Loaders produce specs.TransactionSpec rows only; validation stays with the
// analysis pipeline.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/chrisconley/segmint/specs"
)

// Columns maps the caller's export schema onto the fields a transaction
// needs. Zero values fall back to the conventional names.
type Columns struct {
	Date       string
	CustomerID string
	Quantity   string
	Price      string
	Product    string
}

func (c Columns) withDefaults() Columns {
	if c.Date == "" {
		c.Date = "date"
	}
	if c.CustomerID == "" {
		c.CustomerID = "customer_id"
	}
	if c.Quantity == "" {
		c.Quantity = "amount"
	}
	if c.Price == "" {
		c.Price = "price"
	}
	if c.Product == "" {
		c.Product = "product"
	}
	return c
}

// dateLayouts are tried in order when parsing the date column.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// LoadCSV reads a transaction history from a CSV export. The first record is
// the header; the price column is optional and left empty when absent.
func LoadCSV(path string, columns Columns) ([]specs.TransactionSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f, columns)
}

// ReadCSV reads transactions from an already-open CSV stream.
func ReadCSV(r io.Reader, columns Columns) ([]specs.TransactionSpec, error) {
	columns = columns.withDefaults()

	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	index := map[string]int{}
	for i, name := range header {
		index[name] = i
	}
	for _, required := range []string{columns.Date, columns.CustomerID, columns.Quantity} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing column %q in header %v", required, header)
		}
	}

	priceIdx, hasPrice := index[columns.Price]
	productIdx, hasProduct := index[columns.Product]

	var transactions []specs.TransactionSpec
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", line, err)
		}

		date, err := parseDate(record[index[columns.Date]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		tx := specs.TransactionSpec{
			Date:       date,
			CustomerID: record[index[columns.CustomerID]],
			Quantity:   record[index[columns.Quantity]],
		}
		if hasPrice {
			tx.Price = record[priceIdx]
		}
		if hasProduct {
			tx.Product = record[productIdx]
		}
		transactions = append(transactions, tx)
	}

	return transactions, nil
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, value); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", value)
}
