package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/v4tech/servicedesk/internal/api/middleware"
	"github.com/v4tech/servicedesk/internal/core/ports"
)

// CookieConfig controls the session cookie written on login.
type CookieConfig struct {
	Secure bool
	MaxAge time.Duration
}

type AuthHandler struct {
	authService ports.AuthService
	cookie      CookieConfig
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, cookie CookieConfig, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie, log: log}
}

// LocalLogin exchanges the operator credential for a session.
//
// @Summary      Operator login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      localLoginRequest  true  "Operator credentials"
// @Success      200   {object}  localLoginResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /auth/local-login [post]
func (h *AuthHandler) LocalLogin(c echo.Context) error {
	var req localLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	res, err := h.authService.LocalLogin(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, res.Token)
	return c.JSON(http.StatusOK, localLoginResponse{Success: true, SessionToken: res.Token})
}

// Session exchanges an externally issued session id for a local session.
//
// @Summary      External session exchange
// @Tags         auth
// @Produce      json
// @Param        session_id  query     string  true  "External session id"
// @Success      200         {object}  sessionExchangeResponse
// @Failure      400         {object}  ErrorResponse
// @Failure      500         {object}  ErrorResponse
// @Router       /auth/session [post]
func (h *AuthHandler) Session(c echo.Context) error {
	res, err := h.authService.ExchangeSession(c.Request().Context(), c.QueryParam("session_id"))
	if err != nil {
		return err
	}

	h.setSessionCookie(c, res.Token)
	return c.JSON(http.StatusOK, sessionExchangeResponse{Success: true, User: res.External})
}

// Me returns the caller's identity.
//
// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.Identity
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     SessionCookie
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ident)
}

// Logout deletes the caller's session if there is one and clears the cookie.
// It always succeeds.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  successResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil {
		if err := h.authService.Logout(c.Request().Context(), cookie.Value); err != nil {
			h.log.Warn().Err(err).Msg("logout: session delete failed")
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteNoneMode,
	})
	return c.JSON(http.StatusOK, okResponse)
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookie.MaxAge / time.Second),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteNoneMode,
	})
}
