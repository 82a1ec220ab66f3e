package inventory

import (
	"fmt"
	"strings"

	"infocomm/internal/apperr"
	"infocomm/internal/models"
)

// Availability is the stock bucket a caller can filter on.
type Availability string

const (
	AvailabilityAll        Availability = "all"
	AvailabilityInStock    Availability = "in_stock"
	AvailabilityLowStock   Availability = "low_stock"
	AvailabilityOutOfStock Availability = "out_of_stock"
)

// status maps an availability bucket to the classifier status it selects.
func (a Availability) status() (StockStatus, bool) {
	switch a {
	case AvailabilityInStock:
		return StatusNormal, true
	case AvailabilityLowStock:
		return StatusLow, true
	case AvailabilityOutOfStock:
		return StatusOutOfStock, true
	default:
		return "", false
	}
}

type SortBy string

const (
	SortByName      SortBy = "name"
	SortByPriceAsc  SortBy = "price_asc"
	SortByPriceDesc SortBy = "price_desc"
	SortByQuantity  SortBy = "quantity"
)

// FilterConfig is a value object; the engine never mutates it and works on a
// copy of whatever the caller passes in.
type FilterConfig struct {
	SearchTerm   string       `json:"search_term"`
	Category     string       `json:"category"`
	PriceMin     float64      `json:"price_min"`
	PriceMax     float64      `json:"price_max"` // zero means no upper bound
	Availability Availability `json:"availability"`
	SortBy       SortBy       `json:"sort_by"`
}

// NewFilterConfig returns the configuration matching everything.
func NewFilterConfig() FilterConfig {
	return FilterConfig{
		Availability: AvailabilityAll,
		SortBy:       SortByName,
	}
}

// Fingerprint renders a stable cache key for this configuration. Two configs
// with the same fields always produce the same fingerprint.
func (cfg FilterConfig) Fingerprint() string {
	return fmt.Sprintf("%s|%s|%g|%g|%s|%s",
		strings.ToLower(cfg.SearchTerm), cfg.Category,
		cfg.PriceMin, cfg.PriceMax, cfg.Availability, cfg.SortBy)
}

// Validate rejects malformed configurations instead of clamping them.
// An unknown SortBy is tolerated here because the sorter falls back to the
// name ordering.
func (cfg FilterConfig) Validate() error {
	if cfg.PriceMin < 0 {
		return apperr.Validationf("price_min cannot be negative: %g", cfg.PriceMin)
	}
	if cfg.PriceMax < 0 {
		return apperr.Validationf("price_max cannot be negative: %g", cfg.PriceMax)
	}
	if cfg.PriceMax > 0 && cfg.PriceMin > cfg.PriceMax {
		return apperr.Validationf("price_min (%g) cannot exceed price_max (%g)", cfg.PriceMin, cfg.PriceMax)
	}
	if cfg.Category != "" && cfg.Category != "all" && !models.IsValidCategory(cfg.Category) {
		return apperr.Validationf("unknown category: %s", cfg.Category)
	}
	switch cfg.Availability {
	case "", AvailabilityAll, AvailabilityInStock, AvailabilityLowStock, AvailabilityOutOfStock:
	default:
		return apperr.Validationf("unknown availability filter: %s", cfg.Availability)
	}
	return nil
}

// Filter returns the order-preserving subset of products matching cfg.
// It does not sort and has no side effects; an empty result is expected,
// not an error.
func Filter(products []models.Product, cfg FilterConfig, classifier Classifier) []models.Product {
	matched := make([]models.Product, 0, len(products))
	for _, p := range products {
		if matches(p, cfg, classifier) {
			matched = append(matched, p)
		}
	}
	return matched
}

func matches(p models.Product, cfg FilterConfig, classifier Classifier) bool {
	if term := strings.ToLower(cfg.SearchTerm); term != "" {
		if !strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Reference), term) {
			return false
		}
	}

	if cfg.Category != "" && cfg.Category != "all" && p.Category != cfg.Category {
		return false
	}

	if p.Price < cfg.PriceMin {
		return false
	}
	if cfg.PriceMax > 0 && p.Price > cfg.PriceMax {
		return false
	}

	if want, ok := cfg.Availability.status(); ok {
		status, err := classifier.Classify(p.Quantity)
		if err != nil || status != want {
			return false
		}
	}

	return true
}
