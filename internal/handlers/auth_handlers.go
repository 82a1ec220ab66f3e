// Package handlers holds the echo HTTP layer.
package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"infocomm/internal/caching"
	"infocomm/internal/common"
	"infocomm/internal/services"
	"infocomm/internal/session"
)

const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

// AuthHandlers drives the login lifecycle through the session store.
type AuthHandlers struct {
	store    *session.Store
	authSvc  services.AuthService
	cacheSvc caching.CacheService
}

func NewAuthHandlers(store *session.Store, authSvc services.AuthService, cacheSvc caching.CacheService) *AuthHandlers {
	return &AuthHandlers{
		store:    store,
		authSvc:  authSvc,
		cacheSvc: cacheSvc,
	}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	State     string           `json:"state"`
	Restored  bool             `json:"restored"`
	Session   *session.Session `json:"session,omitempty"`
	LastError string           `json:"last_error,omitempty"`
}

func (h *AuthHandlers) sessionSnapshot() sessionResponse {
	return sessionResponse{
		State:     h.store.State().String(),
		Restored:  h.store.Restored(),
		Session:   h.store.Current(),
		LastError: h.store.LastError(),
	}
}

// Login validates credentials and issues a token pair.
func (h *AuthHandlers) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return common.RespondValidationError(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return common.RespondError(c, err)
	}

	ctx := c.Request().Context()

	if limited, err := h.cacheSvc.IsRateLimited(ctx, "login:"+c.RealIP(), loginRateLimit, loginRateWindow); err == nil && limited {
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts")
	}

	if err := h.store.Login(ctx, req.Username, req.Password); err != nil {
		return common.RespondError(c, err)
	}

	tokens, err := h.authSvc.GenerateTokens(ctx, h.store.Current())
	if err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"session": h.store.Current(),
		"tokens":  tokens,
	})
}

// Logout clears the session; calling it while logged out still succeeds.
func (h *AuthHandlers) Logout(c echo.Context) error {
	if err := h.store.Logout(c.Request().Context()); err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, h.sessionSnapshot())
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Refresh exchanges a refresh token for a new token pair.
func (h *AuthHandlers) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return common.RespondValidationError(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return common.RespondError(c, err)
	}

	tokens, err := h.authSvc.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, tokens)
}

// Session reports the store's current state, for the console to decide
// between loading, login and content views.
func (h *AuthHandlers) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, h.sessionSnapshot())
}

// DismissError acknowledges a failed login attempt.
func (h *AuthHandlers) DismissError(c echo.Context) error {
	h.store.DismissError()
	return c.JSON(http.StatusOK, h.sessionSnapshot())
}

// Me returns the identity attached to the request's token.
func (h *AuthHandlers) Me(c echo.Context) error {
	sess, ok := common.GetSessionFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return c.JSON(http.StatusOK, sess)
}
