// Package inventory implements the query pipeline that turns a raw product
// collection plus a filter/sort configuration into an ordered, stock-annotated
// product list.
package inventory

import (
	"infocomm/internal/models"
)

// Item is one row of a query result: the product plus its derived status.
type Item struct {
	Product models.Product `json:"product"`
	Status  StockStatus    `json:"status"`
}

// Engine composes filter, sorter and classifier into one pure query
// operation. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	classifier Classifier
	sorter     Sorter
}

func NewEngine(classifier Classifier) *Engine {
	return &Engine{
		classifier: classifier,
		sorter:     NewSorter(),
	}
}

func (e *Engine) Classifier() Classifier {
	return e.classifier
}

// Query filters, sorts and annotates products according to cfg. Identical
// inputs always produce identical results, so callers may memoize freely.
func (e *Engine) Query(products []models.Product, cfg FilterConfig) ([]Item, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ordered := e.sorter.Sort(Filter(products, cfg, e.classifier), cfg.SortBy)

	items := make([]Item, 0, len(ordered))
	for _, p := range ordered {
		status, err := e.classifier.Classify(p.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, Item{Product: p, Status: status})
	}
	return items, nil
}
