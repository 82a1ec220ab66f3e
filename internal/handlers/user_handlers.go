package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"infocomm/internal/apperr"
	"infocomm/internal/common"
	"infocomm/internal/repositories"
)

// UserHandlers exposes the admin-only account listing.
type UserHandlers struct {
	userRepo repositories.UserRepository
}

func NewUserHandlers(userRepo repositories.UserRepository) *UserHandlers {
	return &UserHandlers{userRepo: userRepo}
}

func (h *UserHandlers) List(c echo.Context) error {
	users, err := h.userRepo.List(c.Request().Context())
	if err != nil {
		return common.RespondError(c, apperr.Wrap(apperr.KindRetrieval, "list users", err))
	}
	return c.JSON(http.StatusOK, users)
}
