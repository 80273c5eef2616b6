package internal

import (
	"fmt"
	"time"

	"github.com/chrisconley/segmint/specs"
)

type Transaction struct {
	CustomerID TransactionCustomerID
	Product    TransactionProduct
	Date       TransactionDate
	Quantity   Quantity
	UnitPrice  UnitPrice
}

func NewTransaction(spec specs.TransactionSpec) (Transaction, error) {
	customerID, err := NewTransactionCustomerID(spec.CustomerID)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid customer ID: %w", err)
	}

	product, err := NewTransactionProduct(spec.Product)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid product: %w", err)
	}

	date, err := NewTransactionDate(spec.Date)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid date: %w", err)
	}

	quantity, err := NewQuantity(spec.Quantity)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid quantity: %w", err)
	}

	unitPrice, err := NewUnitPrice(spec.Price)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid price: %w", err)
	}

	return Transaction{
		CustomerID: customerID,
		Product:    product,
		Date:       date,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
	}, nil
}

// Amount returns the transaction's monetary contribution: quantity × unit price.
func (t Transaction) Amount() Decimal {
	return t.Quantity.ToDecimal().Mul(t.UnitPrice.ToDecimal())
}

type TransactionCustomerID struct {
	value string
}

func NewTransactionCustomerID(value string) (TransactionCustomerID, error) {
	if value == "" {
		return TransactionCustomerID{}, fmt.Errorf("customer ID is required")
	}
	return TransactionCustomerID{value: value}, nil
}

func (id TransactionCustomerID) ToString() string {
	return id.value
}

type TransactionProduct struct {
	value string
}

func NewTransactionProduct(value string) (TransactionProduct, error) {
	if value == "" {
		return TransactionProduct{}, fmt.Errorf("product is required")
	}
	return TransactionProduct{value: value}, nil
}

func (p TransactionProduct) ToString() string {
	return p.value
}

// TransactionDate is a transaction's calendar day, normalized to UTC
// midnight. Recency and tenure are whole-day differences, so intra-day
// timestamps are discarded on construction.
type TransactionDate struct {
	value time.Time
}

func NewTransactionDate(value time.Time) (TransactionDate, error) {
	if value.IsZero() {
		return TransactionDate{}, fmt.Errorf("date is required")
	}
	utc := value.UTC()
	day := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	return TransactionDate{value: day}, nil
}

func (d TransactionDate) ToTime() time.Time {
	return d.value
}

func (d TransactionDate) Before(other TransactionDate) bool {
	return d.value.Before(other.value)
}

func (d TransactionDate) After(other TransactionDate) bool {
	return d.value.After(other.value)
}

// DaysSince returns the whole days between other and d (d - other).
func (d TransactionDate) DaysSince(other TransactionDate) int {
	return int(d.value.Sub(other.value).Hours() / 24)
}

type Quantity struct {
	value Decimal
}

func NewQuantity(value string) (Quantity, error) {
	if value == "" {
		return Quantity{}, fmt.Errorf("quantity is required")
	}
	d, err := NewDecimal(value)
	if err != nil {
		return Quantity{}, err
	}
	if d.IsZero() || d.IsNegative() {
		return Quantity{}, fmt.Errorf("quantity must be positive, got %s", d.String())
	}
	return Quantity{value: d}, nil
}

func (q Quantity) ToDecimal() Decimal {
	return q.value
}

type UnitPrice struct {
	value Decimal
}

// NewUnitPrice parses an optional unit price. An empty string defaults to
// "1.0" so that monetary equals quantity for unpriced data.
func NewUnitPrice(value string) (UnitPrice, error) {
	if value == "" {
		value = "1.0"
	}
	d, err := NewDecimal(value)
	if err != nil {
		return UnitPrice{}, err
	}
	if d.IsNegative() {
		return UnitPrice{}, fmt.Errorf("price cannot be negative, got %s", d.String())
	}
	return UnitPrice{value: d}, nil
}

func (p UnitPrice) ToDecimal() Decimal {
	return p.value
}
