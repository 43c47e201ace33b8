package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/v4tech/servicedesk/internal/core/domain"
	"github.com/v4tech/servicedesk/internal/core/ports"
	"github.com/v4tech/servicedesk/internal/metrics"
)

// listLimit bounds how many records a single list call materialises.
const listLimit = 1000

// lifecycle is the create/list/patch/delete pattern shared by every record
// kind. Records are addressed by their "id" field.
type lifecycle[T any] struct {
	store ports.RecordStore[T]
	kind  string
	log   zerolog.Logger
}

func newLifecycle[T any](store ports.RecordStore[T], kind string, log zerolog.Logger) lifecycle[T] {
	return lifecycle[T]{store: store, kind: kind, log: log.With().Str("kind", kind).Logger()}
}

func (l lifecycle[T]) create(ctx context.Context, id string, rec *T) error {
	if err := l.store.Insert(ctx, rec); err != nil {
		l.log.Error().Err(err).Msg("failed to store submission")
		return fmt.Errorf("submit %s: %w", l.kind, err)
	}
	metrics.SubmissionsTotal.WithLabelValues(l.kind).Inc()
	l.log.Info().Str("id", id).Msg("submission stored")
	return nil
}

func (l lifecycle[T]) list(ctx context.Context, filter ports.Filter) ([]T, error) {
	recs, err := l.store.List(ctx, filter, listLimit)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", l.kind, err)
	}
	return recs, nil
}

func (l lifecycle[T]) patchWhere(ctx context.Context, filter ports.Filter, set map[string]any) error {
	err := l.store.Update(ctx, filter, set)
	if isNotFound(err) {
		return l.notFound()
	}
	if err != nil {
		return fmt.Errorf("update %s: %w", l.kind, err)
	}
	return nil
}

func (l lifecycle[T]) removeWhere(ctx context.Context, filter ports.Filter) error {
	err := l.store.Delete(ctx, filter)
	if isNotFound(err) {
		return l.notFound()
	}
	if err != nil {
		return fmt.Errorf("delete %s: %w", l.kind, err)
	}
	return nil
}

func (l lifecycle[T]) patch(ctx context.Context, id string, set map[string]any) error {
	return l.patchWhere(ctx, byID(id), set)
}

func (l lifecycle[T]) remove(ctx context.Context, id string) error {
	return l.removeWhere(ctx, byID(id))
}

func (l lifecycle[T]) notFound() error {
	return &domain.NotFoundError{Kind: l.kind}
}

func byID(id string) ports.Filter {
	return ports.Filter{"id": id}
}

func newRecordID() string {
	return uuid.NewString()
}
