package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"infocomm/internal/common"
	"infocomm/internal/services"
)

// AlertHandlers serves the stock alert feed.
type AlertHandlers struct {
	alertSvc services.AlertService
}

func NewAlertHandlers(alertSvc services.AlertService) *AlertHandlers {
	return &AlertHandlers{alertSvc: alertSvc}
}

func (h *AlertHandlers) Recent(c echo.Context) error {
	limit := 20
	if raw := c.QueryParam("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return common.RespondValidationError(c, "limit must be a positive integer")
		}
		limit = v
	}

	alerts, err := h.alertSvc.Recent(c.Request().Context(), limit)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, alerts)
}
