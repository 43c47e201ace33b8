// Package memory provides an in-process implementation of the record store.
// Documents are normalised through BSON so filters and partial updates behave
// like they do against MongoDB: field names are the bson tags and values are
// compared after encoding.
package memory

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/v4tech/servicedesk/internal/core/domain"
	"github.com/v4tech/servicedesk/internal/core/ports"
)

// Collection is a goroutine-safe, insertion-ordered document list.
type Collection[T any] struct {
	mu     sync.RWMutex
	docs   []bson.M
	unique []string
}

// NewCollection returns an empty collection. Inserts that repeat the value of
// any unique field fail with domain.ErrDuplicate, like a unique index would.
func NewCollection[T any](unique ...string) *Collection[T] {
	return &Collection[T]{unique: unique}
}

var _ ports.RecordStore[domain.Review] = (*Collection[domain.Review])(nil)

func (c *Collection[T]) Insert(_ context.Context, rec *T) error {
	doc, err := toDoc(rec)
	if err != nil {
		return fmt.Errorf("memory insert: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, field := range c.unique {
		v, ok := doc[field]
		if !ok {
			continue
		}
		for _, existing := range c.docs {
			if reflect.DeepEqual(existing[field], v) {
				return fmt.Errorf("memory insert %s: %w", field, domain.ErrDuplicate)
			}
		}
	}
	c.docs = append(c.docs, doc)
	return nil
}

func (c *Collection[T]) FindOne(_ context.Context, filter ports.Filter) (*T, error) {
	want, err := normalise(filter)
	if err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, doc := range c.docs {
		if matches(doc, want) {
			return fromDoc[T](doc)
		}
	}
	return nil, domain.ErrNotFound
}

func (c *Collection[T]) List(_ context.Context, filter ports.Filter, limit int) ([]T, error) {
	want, err := normalise(filter)
	if err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0)
	for _, doc := range c.docs {
		if limit > 0 && len(out) >= limit {
			break
		}
		if !matches(doc, want) {
			continue
		}
		rec, err := fromDoc[T](doc)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, nil
}

func (c *Collection[T]) Update(_ context.Context, filter ports.Filter, set map[string]any) error {
	want, err := normalise(filter)
	if err != nil {
		return err
	}
	patch, err := normalise(set)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, doc := range c.docs {
		if !matches(doc, want) {
			continue
		}
		for k, v := range patch {
			doc[k] = v
		}
		return nil
	}
	return domain.ErrNotFound
}

func (c *Collection[T]) Delete(_ context.Context, filter ports.Filter) error {
	want, err := normalise(filter)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, doc := range c.docs {
		if matches(doc, want) {
			c.docs = append(c.docs[:i], c.docs[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (c *Collection[T]) Count(_ context.Context, filter ports.Filter) (int64, error) {
	want, err := normalise(filter)
	if err != nil {
		return 0, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	var n int64
	for _, doc := range c.docs {
		if matches(doc, want) {
			n++
		}
	}
	return n, nil
}

func (c *Collection[T]) DeleteOlderThan(_ context.Context, field string, t time.Time) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.docs[:0]
	var removed int64
	for _, doc := range c.docs {
		if dt, ok := doc[field].(primitive.DateTime); ok && dt.Time().Before(t) {
			removed++
			continue
		}
		kept = append(kept, doc)
	}
	c.docs = kept
	return removed, nil
}

// Len reports the number of stored documents.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.docs)
}

func toDoc(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func fromDoc[T any](doc bson.M) (*T, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var rec T
	if err := bson.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func normalise(m map[string]any) (bson.M, error) {
	if len(m) == 0 {
		return bson.M{}, nil
	}
	doc, err := toDoc(bson.M(m))
	if err != nil {
		return nil, fmt.Errorf("memory filter: %w", err)
	}
	return doc, nil
}

func matches(doc, want bson.M) bool {
	for k, v := range want {
		if !reflect.DeepEqual(doc[k], v) {
			return false
		}
	}
	return true
}
