package specs

import "time"

// TransactionSpec represents a single point-of-sale transaction fact.
//
// Transactions are the immutable input to the segmentation pipeline. They are
// supplied by an external data-loading collaborator (CSV reader, warehouse
// query) and are read-only within this core: every analysis run recomputes
// its outputs fresh from the full transaction set.
//
// Numeric fields are stored as decimal strings to preserve precision across
// language and storage boundaries and avoid floating-point representation
// issues in monetary aggregation.
type TransactionSpec struct {
	// Calendar day the transaction occurred.
	//
	// Only the date component is significant for recency and tenure
	// computation; intra-day timestamps are normalized to UTC midnight.
	// Required: a zero time is rejected.
	Date time.Time `json:"date"`

	// Opaque identifier of the purchasing customer.
	//
	// All transactions sharing a customer ID are aggregated into a single
	// feature row. Required: an empty ID is rejected.
	CustomerID string `json:"customerID"`

	// Identifier of the purchased product.
	//
	// Used for the unique-products diversity feature. Required.
	Product string `json:"product"`

	// Purchased quantity as a decimal string.
	//
	// Must parse as a decimal and be strictly positive.
	// Examples: "1", "3", "2.5".
	Quantity string `json:"quantity"`

	// Unit price as a decimal string.
	//
	// Optional: an empty string defaults to "1.0", in which case the
	// transaction's monetary contribution equals its quantity. When present
	// it must parse as a non-negative decimal.
	Price string `json:"price,omitempty"`
}

// NewTransaction creates a transaction without an explicit unit price.
//
// The price defaults to "1.0" during feature extraction, so the monetary
// contribution of the transaction equals its quantity.
func NewTransaction(date time.Time, customerID, product, quantity string) TransactionSpec {
	return TransactionSpec{
		Date:       date,
		CustomerID: customerID,
		Product:    product,
		Quantity:   quantity,
	}
}

// NewPricedTransaction creates a transaction with an explicit unit price.
//
// The monetary contribution of the transaction is quantity × price.
func NewPricedTransaction(date time.Time, customerID, product, quantity, price string) TransactionSpec {
	return TransactionSpec{
		Date:       date,
		CustomerID: customerID,
		Product:    product,
		Quantity:   quantity,
		Price:      price,
	}
}
