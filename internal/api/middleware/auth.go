package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/v4tech/servicedesk/internal/core/domain"
	"github.com/v4tech/servicedesk/internal/core/ports"
	"github.com/v4tech/servicedesk/internal/metrics"
)

const (
	// SessionCookie carries the session token set by the login endpoints.
	SessionCookie = "session_token"
	// IdentityKey is the echo.Context key holding the resolved *domain.Identity.
	IdentityKey = "identity"
)

// Auth resolves the caller's session from the cookie or, failing that, the
// Authorization header and injects the identity into context. Failures are
// returned as domain errors for the central error handler to map.
func Auth(auth ports.AuthService, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			creds := ports.Credentials{Bearer: c.Request().Header.Get(echo.HeaderAuthorization)}
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				creds.Cookie = cookie.Value
			}

			ident, err := auth.Resolve(c.Request().Context(), creds)
			if err != nil {
				reason := failureReason(err)
				metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
				log.Debug().Str("reason", reason).Str("path", c.Path()).Msg("request rejected")
				return err
			}

			c.Set(IdentityKey, ident)
			return next(c)
		}
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, domain.ErrInvalidSession):
		return "invalid_session"
	case errors.Is(err, domain.ErrSessionExpired):
		return "session_expired"
	case errors.Is(err, domain.ErrIdentityNotFound):
		return "identity_not_found"
	default:
		return "error"
	}
}
