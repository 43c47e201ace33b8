package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/v4tech/servicedesk/internal/core/domain"
	"github.com/v4tech/servicedesk/internal/core/ports"
)

// Collection implements ports.RecordStore[T] on a single MongoDB collection.
// Documents are addressed by their own fields (e.g. "id"); the driver's _id is
// never exposed.
type Collection[T any] struct {
	col *mongo.Collection
}

// NewCollection binds a typed store to the named collection.
func NewCollection[T any](db *mongo.Database, name string) *Collection[T] {
	return &Collection[T]{col: db.Collection(name)}
}

var _ ports.RecordStore[domain.Review] = (*Collection[domain.Review])(nil)

// Insert adds a new document. A unique index violation is reported as
// domain.ErrDuplicate.
func (c *Collection[T]) Insert(ctx context.Context, rec *T) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := c.col.InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert %s: %w", c.col.Name(), domain.ErrDuplicate)
		}
		return fmt.Errorf("insert %s: %w", c.col.Name(), err)
	}
	return nil
}

// FindOne returns the first document matching filter in natural order.
func (c *Collection[T]) FindOne(ctx context.Context, filter ports.Filter) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rec T
	err := c.col.FindOne(ctx, toBSON(filter)).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find %s: %w", c.col.Name(), err)
	}
	return &rec, nil
}

// List returns up to limit documents matching filter.
func (c *Collection[T]) List(ctx context.Context, filter ports.Filter, limit int) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := c.col.Find(ctx, toBSON(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.col.Name(), err)
	}
	defer cur.Close(ctx)

	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.col.Name(), err)
	}
	return out, nil
}

// Update applies a $set of the given fields to the first matching document.
func (c *Collection[T]) Update(ctx context.Context, filter ports.Filter, set map[string]any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := c.col.UpdateOne(ctx, toBSON(filter), bson.M{"$set": bson.M(set)})
	if err != nil {
		return fmt.Errorf("update %s: %w", c.col.Name(), err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the first matching document.
func (c *Collection[T]) Delete(ctx context.Context, filter ports.Filter) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := c.col.DeleteOne(ctx, toBSON(filter))
	if err != nil {
		return fmt.Errorf("delete %s: %w", c.col.Name(), err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count returns the number of documents matching filter.
func (c *Collection[T]) Count(ctx context.Context, filter ports.Filter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := c.col.CountDocuments(ctx, toBSON(filter))
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", c.col.Name(), err)
	}
	return n, nil
}

// DeleteOlderThan removes every document whose field holds a time before t.
func (c *Collection[T]) DeleteOlderThan(ctx context.Context, field string, t time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := c.col.DeleteMany(ctx, bson.M{field: bson.M{"$lt": t.UTC()}})
	if err != nil {
		return 0, fmt.Errorf("delete expired %s: %w", c.col.Name(), err)
	}
	return res.DeletedCount, nil
}

func toBSON(f ports.Filter) bson.M {
	if f == nil {
		return bson.M{}
	}
	return bson.M(f)
}
