package ports

import (
	"context"
	"time"
)

// Filter selects documents by exact equality on stored field names
// (the bson names, e.g. "complaint_id"). An empty filter matches everything.
type Filter map[string]any

// RecordStore is the document-store contract every collection is accessed through.
// Mutations are single filter-and-update / filter-and-delete actions; concurrent
// writers to the same document are serialised by the store (last writer wins).
type RecordStore[T any] interface {
	Insert(ctx context.Context, rec *T) error
	// FindOne returns the first match in store order, or domain.ErrNotFound.
	FindOne(ctx context.Context, filter Filter) (*T, error)
	// List returns at most limit matches in store order.
	List(ctx context.Context, filter Filter, limit int) ([]T, error)
	// Update merges set into the first matching document, or returns domain.ErrNotFound.
	Update(ctx context.Context, filter Filter, set map[string]any) error
	// Delete removes the first matching document, or returns domain.ErrNotFound.
	Delete(ctx context.Context, filter Filter) error
	Count(ctx context.Context, filter Filter) (int64, error)
	// DeleteOlderThan removes every document whose time field is before t.
	DeleteOlderThan(ctx context.Context, field string, t time.Time) (int64, error)
}
