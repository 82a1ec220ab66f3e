package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"infocomm/internal/common"
	"infocomm/internal/inventory"
	"infocomm/internal/services"
)

// InventoryHandlers serves the filtered catalog views and the dashboard.
type InventoryHandlers struct {
	inventorySvc services.InventoryService
}

func NewInventoryHandlers(inventorySvc services.InventoryService) *InventoryHandlers {
	return &InventoryHandlers{inventorySvc: inventorySvc}
}

func filterConfigFromQuery(c echo.Context) (inventory.FilterConfig, error) {
	cfg := inventory.NewFilterConfig()
	cfg.SearchTerm = c.QueryParam("search")
	if category := c.QueryParam("category"); category != "" {
		cfg.Category = category
	}
	if availability := c.QueryParam("availability"); availability != "" {
		cfg.Availability = inventory.Availability(availability)
	}
	if sortBy := c.QueryParam("sort_by"); sortBy != "" {
		cfg.SortBy = inventory.SortBy(sortBy)
	}

	if raw := c.QueryParam("price_min"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return cfg, echo.NewHTTPError(http.StatusBadRequest, "price_min must be a number")
		}
		cfg.PriceMin = v
	}
	if raw := c.QueryParam("price_max"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return cfg, echo.NewHTTPError(http.StatusBadRequest, "price_max must be a number")
		}
		cfg.PriceMax = v
	}
	return cfg, nil
}

// Browse lists the catalog through the query engine. An empty list is a
// normal 200; a backend failure is a 503 the client may retry.
func (h *InventoryHandlers) Browse(c echo.Context) error {
	cfg, err := filterConfigFromQuery(c)
	if err != nil {
		return err
	}

	items, err := h.inventorySvc.Browse(c.Request().Context(), cfg)
	if err != nil {
		return common.RespondError(c, err)
	}
	if items == nil {
		items = []inventory.Item{}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}

// Summary feeds the dashboard header.
func (h *InventoryHandlers) Summary(c echo.Context) error {
	summary, err := h.inventorySvc.Summary(c.Request().Context())
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// Categories returns the fixed category list with product counts.
func (h *InventoryHandlers) Categories(c echo.Context) error {
	categories, err := h.inventorySvc.Categories(c.Request().Context())
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}
