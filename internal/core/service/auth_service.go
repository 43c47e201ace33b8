package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/v4tech/servicedesk/internal/core/domain"
	"github.com/v4tech/servicedesk/internal/core/ports"
	"github.com/v4tech/servicedesk/internal/metrics"
)

const (
	defaultSessionTTL = 7 * 24 * time.Hour
	tokenBytes        = 32
	bearerPrefix      = "Bearer "
)

// AuthConfig carries the operator credential and session policy.
// AdminPass is hashed at construction and not retained.
type AuthConfig struct {
	AdminUser  string
	AdminPass  string
	SessionTTL time.Duration
	BcryptCost int
}

// AuthService resolves identities from local or external logins, mints
// sessions, and guards protected operations.
type AuthService struct {
	sessions   *SessionStore
	identities ports.RecordStore[domain.Identity]
	oracle     ports.IdentityOracle
	adminUser  string
	adminHash  []byte
	ttl        time.Duration
	now        func() time.Time
	log        zerolog.Logger
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(
	sessions *SessionStore,
	identities ports.RecordStore[domain.Identity],
	oracle ports.IdentityOracle,
	cfg AuthConfig,
	log zerolog.Logger,
) (*AuthService, error) {
	s := &AuthService{
		sessions:   sessions,
		identities: identities,
		oracle:     oracle,
		adminUser:  cfg.AdminUser,
		ttl:        cfg.SessionTTL,
		now:        utcNow,
		log:        log,
	}
	if s.ttl <= 0 {
		s.ttl = defaultSessionTTL
	}

	if cfg.AdminUser != "" && cfg.AdminPass != "" {
		cost := cfg.BcryptCost
		if cost == 0 {
			cost = bcrypt.DefaultCost
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPass), cost)
		if err != nil {
			return nil, fmt.Errorf("hash operator password: %w", err)
		}
		s.adminHash = hash
	} else {
		log.Warn().Msg("operator credentials not configured, local login disabled")
	}
	return s, nil
}

// LocalLogin checks the fixed operator credential and mints a session for the
// singleton admin identity.
func (s *AuthService) LocalLogin(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if s.adminHash == nil {
		return nil, s.rejectLogin("local", domain.ErrInvalidCredentials)
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.adminUser)) == 1
	passOK := bcrypt.CompareHashAndPassword(s.adminHash, []byte(password)) == nil
	if !userOK || !passOK {
		return nil, s.rejectLogin("local", domain.ErrInvalidCredentials)
	}

	// Find-then-insert is not atomic: two concurrent first logins may both
	// insert an admin document. Lookups by id take the first one.
	admin, err := s.identities.FindOne(ctx, ports.Filter{"id": domain.AdminIdentityID})
	if isNotFound(err) {
		admin = &domain.Identity{
			ID:        domain.AdminIdentityID,
			Email:     s.adminUser + "@local",
			Name:      s.adminUser,
			CreatedAt: s.now(),
		}
		if err := s.identities.Insert(ctx, admin); err != nil {
			return nil, fmt.Errorf("local login: create admin identity: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("local login: %w", err)
	}

	token, err := newSessionToken()
	if err != nil {
		return nil, fmt.Errorf("local login: %w", err)
	}
	if err := s.mint(ctx, admin.ID, token); err != nil {
		return nil, fmt.Errorf("local login: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("local").Inc()
	s.log.Info().Str("user_id", admin.ID).Str("method", "local").Msg("session created")
	return &ports.LoginResult{Token: token, Identity: admin}, nil
}

// ExchangeSession verifies sessionID with the identity oracle, creates the
// identity on first sight of its email, and stores the oracle's token locally
// with our own expiry.
func (s *AuthService) ExchangeSession(ctx context.Context, sessionID string) (*ports.LoginResult, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, s.rejectLogin("external", domain.ErrInvalidExternalSession)
	}

	ext, err := s.oracle.Exchange(ctx, sessionID)
	if errors.Is(err, domain.ErrInvalidExternalSession) {
		return nil, s.rejectLogin("external", fmt.Errorf("session exchange: %w", err))
	}
	if err != nil {
		return nil, fmt.Errorf("session exchange: %w", err)
	}

	ident, err := s.identities.FindOne(ctx, ports.Filter{"email": ext.Email})
	if isNotFound(err) {
		ident = &domain.Identity{
			ID:        ext.ID,
			Email:     ext.Email,
			Name:      ext.Name,
			Picture:   ext.Picture,
			CreatedAt: s.now(),
		}
		if err := s.identities.Insert(ctx, ident); err != nil {
			return nil, fmt.Errorf("session exchange: create identity: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("session exchange: %w", err)
	}

	if err := s.mint(ctx, ident.ID, ext.SessionToken); err != nil {
		return nil, fmt.Errorf("session exchange: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("external").Inc()
	s.log.Info().Str("user_id", ident.ID).Str("method", "external").Msg("session created")
	return &ports.LoginResult{Token: ext.SessionToken, Identity: ident, External: ext}, nil
}

// Resolve turns request credentials into an identity. The cookie wins over the
// bearer header. It has no side effects.
func (s *AuthService) Resolve(ctx context.Context, creds ports.Credentials) (*domain.Identity, error) {
	token := creds.Cookie
	if token == "" {
		token = strings.TrimPrefix(creds.Bearer, bearerPrefix)
	}
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	sess, err := s.sessions.FindByToken(ctx, token)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrInvalidSession
		}
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	if !sess.ValidAt(s.now()) {
		return nil, domain.ErrSessionExpired
	}

	ident, err := s.identities.FindOne(ctx, ports.Filter{"id": sess.UserID})
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("resolve identity: %w", err)
	}
	return ident, nil
}

// Logout deletes the session behind token. Unknown or empty tokens are not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.DeleteByToken(ctx, token); err != nil && !isNotFound(err) {
		return fmt.Errorf("logout: %w", err)
	}
	s.log.Info().Msg("session deleted")
	return nil
}

// SessionTTL is the lifetime given to every new session.
func (s *AuthService) SessionTTL() time.Duration {
	return s.ttl
}

// rejectLogin counts a refused login attempt and returns err unchanged.
func (s *AuthService) rejectLogin(method string, err error) error {
	reason := "invalid_credentials"
	if errors.Is(err, domain.ErrInvalidExternalSession) {
		reason = "invalid_external_session"
	}
	metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
	s.log.Debug().Str("method", method).Str("reason", reason).Msg("login rejected")
	return err
}

func (s *AuthService) mint(ctx context.Context, userID, token string) error {
	now := s.now()
	return s.sessions.Put(ctx, &domain.Session{
		UserID:    userID,
		Token:     token,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	})
}

// newSessionToken returns 256 bits from crypto/rand, hex encoded.
func newSessionToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// utcNow truncates to milliseconds, the precision the document store keeps.
func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
