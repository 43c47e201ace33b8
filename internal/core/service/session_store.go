package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/v4tech/servicedesk/internal/core/domain"
	"github.com/v4tech/servicedesk/internal/core/ports"
)

// SessionStore maps opaque tokens to sessions on top of a record store.
// Expired sessions are not removed here; callers treat them as invalid.
type SessionStore struct {
	store ports.RecordStore[domain.Session]
}

func NewSessionStore(store ports.RecordStore[domain.Session]) *SessionStore {
	return &SessionStore{store: store}
}

// Put stores sess, replacing every session already held under its token. The
// identity oracle may hand back a token it issued before.
func (s *SessionStore) Put(ctx context.Context, sess *domain.Session) error {
	for {
		err := s.DeleteByToken(ctx, sess.Token)
		if isNotFound(err) {
			break
		}
		if err != nil {
			return fmt.Errorf("put session: replace: %w", err)
		}
	}
	if err := s.store.Insert(ctx, sess); err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

// FindByToken returns domain.ErrNotFound when no session carries token.
func (s *SessionStore) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	return s.store.FindOne(ctx, ports.Filter{"session_token": token})
}

func (s *SessionStore) DeleteByToken(ctx context.Context, token string) error {
	return s.store.Delete(ctx, ports.Filter{"session_token": token})
}

// DeleteExpired removes every session whose expiry is before now.
func (s *SessionStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	n, err := s.store.DeleteOlderThan(ctx, "expires_at", now)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return n, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
