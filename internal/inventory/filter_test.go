package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"infocomm/internal/apperr"
	"infocomm/internal/models"
)

func demoProducts() []models.Product {
	return []models.Product{
		{Reference: "ABC12345678", Name: "Écran Samsung", Price: 125.99, Category: "Écran", Quantity: 10},
		{Reference: "ABC87654321", Name: "Écran Dell", Price: 135.99, Category: "Écran", Quantity: 45},
		{Reference: "DEF12345678", Name: "Ordinateur Asus", Price: 899.99, Category: "Ordinateur", Quantity: 0},
		{Reference: "GHI12345678", Name: "Clavier Logitech", Price: 79.99, Category: "Peripherique", Quantity: 62},
	}
}

func TestFilter_EmptyConfigMatchesEverything(t *testing.T) {
	products := demoProducts()
	got := Filter(products, NewFilterConfig(), NewClassifier(0))
	assert.Equal(t, products, got)
}

func TestFilter_SearchTerm(t *testing.T) {
	classifier := NewClassifier(0)
	products := demoProducts()

	tests := []struct {
		name      string
		term      string
		wantNames []string
	}{
		{"case-insensitive name match", "écran", []string{"Écran Samsung", "Écran Dell"}},
		{"reference match", "abc8765", []string{"Écran Dell"}},
		{"no match", "imprimante hp", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewFilterConfig()
			cfg.SearchTerm = tt.term
			got := Filter(products, cfg, classifier)
			var names []string
			for _, p := range got {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestFilter_Category(t *testing.T) {
	cfg := NewFilterConfig()
	cfg.Category = "Ordinateur"

	got := Filter(demoProducts(), cfg, NewClassifier(0))
	assert.Len(t, got, 1)
	assert.Equal(t, "Ordinateur Asus", got[0].Name)

	cfg.Category = "all"
	assert.Len(t, Filter(demoProducts(), cfg, NewClassifier(0)), 4)
}

func TestFilter_PriceRange(t *testing.T) {
	cfg := NewFilterConfig()
	cfg.PriceMin = 100
	cfg.PriceMax = 200

	got := Filter(demoProducts(), cfg, NewClassifier(0))
	assert.Len(t, got, 2)
	assert.Equal(t, "Écran Samsung", got[0].Name)
	assert.Equal(t, "Écran Dell", got[1].Name)
}

func TestFilter_ZeroPriceMaxIsUnbounded(t *testing.T) {
	cfg := NewFilterConfig()
	cfg.PriceMin = 500

	got := Filter(demoProducts(), cfg, NewClassifier(0))
	assert.Len(t, got, 1)
	assert.Equal(t, "Ordinateur Asus", got[0].Name)
}

func TestFilter_Availability(t *testing.T) {
	classifier := NewClassifier(DefaultLowStockThreshold)
	products := demoProducts()

	tests := []struct {
		availability Availability
		wantNames    []string
	}{
		{AvailabilityOutOfStock, []string{"Ordinateur Asus"}},
		{AvailabilityLowStock, []string{"Écran Samsung"}},
		{AvailabilityInStock, []string{"Écran Dell", "Clavier Logitech"}},
		{AvailabilityAll, []string{"Écran Samsung", "Écran Dell", "Ordinateur Asus", "Clavier Logitech"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.availability), func(t *testing.T) {
			cfg := NewFilterConfig()
			cfg.Availability = tt.availability
			got := Filter(products, cfg, classifier)
			var names []string
			for _, p := range got {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestFilter_PreservesInputOrder(t *testing.T) {
	products := demoProducts()
	cfg := NewFilterConfig()
	cfg.PriceMax = 200

	got := Filter(products, cfg, NewClassifier(0))
	assert.Equal(t, []models.Product{products[0], products[1], products[3]}, got)
}

func TestFilterConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*FilterConfig)
		wantErr bool
	}{
		{"defaults are valid", func(cfg *FilterConfig) {}, false},
		{"negative price_min", func(cfg *FilterConfig) { cfg.PriceMin = -1 }, true},
		{"negative price_max", func(cfg *FilterConfig) { cfg.PriceMax = -10 }, true},
		{"min above max", func(cfg *FilterConfig) { cfg.PriceMin = 50; cfg.PriceMax = 10 }, true},
		{"min above zero max is unbounded", func(cfg *FilterConfig) { cfg.PriceMin = 50 }, false},
		{"unknown category", func(cfg *FilterConfig) { cfg.Category = "Tablette" }, true},
		{"unknown availability", func(cfg *FilterConfig) { cfg.Availability = "backorder" }, true},
		{"unknown sort falls back, no error", func(cfg *FilterConfig) { cfg.SortBy = "reference" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewFilterConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, apperr.IsKind(err, apperr.KindValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
