package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/v4tech/servicedesk/internal/api/middleware"
	"github.com/v4tech/servicedesk/internal/core/domain"
)

// ctxIdentity returns the identity injected by the Auth middleware. Presence
// proves the middleware ran; a missing value means the route was mounted
// outside the guarded group.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	ident, _ := c.Get(middleware.IdentityKey).(*domain.Identity)
	if ident == nil {
		return nil, domain.ErrUnauthenticated
	}
	return ident, nil
}
