package ports

import (
	"context"

	"github.com/v4tech/servicedesk/internal/core/domain"
)

// ExternalIdentity is what the identity oracle returns for a verified session id.
type ExternalIdentity struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	Picture      *string `json:"picture,omitempty"`
	SessionToken string  `json:"session_token"`
}

// IdentityOracle exchanges an externally issued session id for a verified identity.
// Implementations return domain.ErrInvalidExternalSession when the oracle rejects it.
type IdentityOracle interface {
	Exchange(ctx context.Context, sessionID string) (*ExternalIdentity, error)
}

// Credentials carries the transport-level credentials of a request.
// Cookie takes precedence over Bearer.
type Credentials struct {
	Cookie string
	Bearer string
}

// LoginResult is returned by both login paths.
type LoginResult struct {
	Token    string
	Identity *domain.Identity
	External *ExternalIdentity // set by the external exchange only
}

// AuthService resolves identities and manages sessions.
type AuthService interface {
	LocalLogin(ctx context.Context, username, password string) (*LoginResult, error)
	ExchangeSession(ctx context.Context, sessionID string) (*LoginResult, error)
	Resolve(ctx context.Context, creds Credentials) (*domain.Identity, error)
	Logout(ctx context.Context, token string) error
}
