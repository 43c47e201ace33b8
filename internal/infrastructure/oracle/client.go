// Package oracle talks to the external identity provider that turns a
// browser-side session id into a verified user plus a session token.
package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/v4tech/servicedesk/internal/core/domain"
	"github.com/v4tech/servicedesk/internal/core/ports"
)

const (
	sessionHeader  = "X-Session-ID"
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20
)

// Client implements ports.IdentityOracle over HTTP.
type Client struct {
	httpClient *http.Client
	endpoint   string
	log        zerolog.Logger
}

// NewClient builds a client for endpoint. A nil httpClient gets one with defaultTimeout.
func NewClient(endpoint string, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{httpClient: httpClient, endpoint: endpoint, log: log}
}

var _ ports.IdentityOracle = (*Client)(nil)

// Exchange forwards sessionID to the oracle. Any non-200 answer is reported as
// domain.ErrInvalidExternalSession; transport failures are returned wrapped.
func (c *Client) Exchange(ctx context.Context, sessionID string) (*ports.ExternalIdentity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("oracle request: %w", err)
	}
	req.Header.Set(sessionHeader, sessionID)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oracle call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn().Int("status", resp.StatusCode).Msg("identity oracle rejected session id")
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, domain.ErrInvalidExternalSession
	}

	var ident ports.ExternalIdentity
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&ident); err != nil {
		return nil, fmt.Errorf("oracle decode: %w", err)
	}
	if ident.ID == "" || ident.Email == "" || ident.SessionToken == "" {
		return nil, fmt.Errorf("oracle decode: %w", domain.ErrInvalidExternalSession)
	}
	return &ident, nil
}
