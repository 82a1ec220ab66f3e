package inventory

import (
	"infocomm/internal/apperr"
)

// StockStatus is derived from a product quantity, never stored.
type StockStatus string

const (
	StatusNormal     StockStatus = "normal"
	StatusLow        StockStatus = "low"
	StatusOutOfStock StockStatus = "out_of_stock"
)

// DefaultLowStockThreshold is the quantity below which a product counts as
// low stock. A quantity exactly at the threshold is normal.
const DefaultLowStockThreshold = 30

// Classifier is the single place the low-stock comparison lives. Every
// component that needs a stock bucket goes through it.
type Classifier struct {
	threshold int
}

func NewClassifier(threshold int) Classifier {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return Classifier{threshold: threshold}
}

func (c Classifier) Threshold() int {
	return c.threshold
}

// Classify maps a quantity to its stock status. Negative quantities are
// malformed input and rejected.
func (c Classifier) Classify(quantity int) (StockStatus, error) {
	if quantity < 0 {
		return "", apperr.Validationf("quantity cannot be negative: %d", quantity)
	}
	switch {
	case quantity == 0:
		return StatusOutOfStock, nil
	case quantity < c.threshold:
		return StatusLow, nil
	default:
		return StatusNormal, nil
	}
}
