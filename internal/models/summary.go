package models

// InventorySummary feeds the dashboard: totals, per-category counts and the
// latest stock alerts.
type InventorySummary struct {
	TotalProducts      int          `json:"total_products"`
	LowStockProducts   int          `json:"low_stock_products"`
	OutOfStockProducts int          `json:"out_of_stock_products"`
	Categories         []Category   `json:"categories"`
	RecentAlerts       []StockAlert `json:"recent_alerts"`
}
