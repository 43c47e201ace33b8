package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/v4tech/servicedesk/internal/core/domain"
	"github.com/v4tech/servicedesk/internal/core/ports"
)

func seedReviews(t *testing.T, c *Collection[domain.Review]) {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Millisecond)
	for _, r := range []domain.Review{
		{ID: "r1", CustomerName: "Ana", Rating: 5, Approved: true, CreatedAt: now},
		{ID: "r2", CustomerName: "Luis", Rating: 3, Approved: false, CreatedAt: now},
		{ID: "r3", CustomerName: "Eva", Rating: 4, Approved: false, CreatedAt: now},
	} {
		r := r
		if err := c.Insert(context.Background(), &r); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
}

func TestCollection_FilterByBool(t *testing.T) {
	c := NewCollection[domain.Review]()
	seedReviews(t, c)

	got, err := c.List(context.Background(), ports.Filter{"approved": true}, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != "r1" {
		t.Fatalf("expected only r1, got %+v", got)
	}

	n, err := c.Count(context.Background(), ports.Filter{"approved": false})
	if err != nil || n != 2 {
		t.Fatalf("expected 2 unapproved, got %d (%v)", n, err)
	}
}

func TestCollection_ListPreservesInsertionOrderAndLimit(t *testing.T) {
	c := NewCollection[domain.Review]()
	seedReviews(t, c)

	got, _ := c.List(context.Background(), nil, 2)
	if len(got) != 2 || got[0].ID != "r1" || got[1].ID != "r2" {
		t.Fatalf("unexpected page: %+v", got)
	}
}

func TestCollection_UpdateMergesFields(t *testing.T) {
	c := NewCollection[domain.Review]()
	seedReviews(t, c)

	if err := c.Update(context.Background(), ports.Filter{"id": "r2"}, map[string]any{"approved": true}); err != nil {
		t.Fatalf("update: %v", err)
	}
	r, err := c.FindOne(context.Background(), ports.Filter{"id": "r2"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !r.Approved || r.CustomerName != "Luis" || r.Rating != 3 {
		t.Fatalf("partial merge lost fields: %+v", r)
	}
}

func TestCollection_MissingTargets(t *testing.T) {
	c := NewCollection[domain.Review]()
	seedReviews(t, c)
	ctx := context.Background()

	if err := c.Update(ctx, ports.Filter{"id": "nope"}, map[string]any{"approved": true}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("update: expected ErrNotFound, got %v", err)
	}
	if err := c.Delete(ctx, ports.Filter{"id": "nope"}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("delete: expected ErrNotFound, got %v", err)
	}
	if _, err := c.FindOne(ctx, ports.Filter{"id": "nope"}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("find: expected ErrNotFound, got %v", err)
	}
	if c.Len() != 3 {
		t.Errorf("collection changed: %d docs", c.Len())
	}
}

func TestCollection_DeleteOlderThan(t *testing.T) {
	c := NewCollection[domain.Session]()
	ctx := context.Background()
	now := time.Now().UTC()

	_ = c.Insert(ctx, &domain.Session{Token: "old", ExpiresAt: now.Add(-time.Hour)})
	_ = c.Insert(ctx, &domain.Session{Token: "new", ExpiresAt: now.Add(time.Hour)})

	n, err := c.DeleteOlderThan(ctx, "expires_at", now)
	if err != nil {
		t.Fatalf("delete older: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 removed, got %d", n)
	}
	if _, err := c.FindOne(ctx, ports.Filter{"session_token": "new"}); err != nil {
		t.Fatalf("live session removed: %v", err)
	}
}

func TestCollection_UniqueFieldRejectsRepeat(t *testing.T) {
	c := NewCollection[domain.Complaint]("complaint_id")
	ctx := context.Background()

	if err := c.Insert(ctx, &domain.Complaint{ID: "a", TicketCode: "CMP00000001", Phone: "1"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	err := c.Insert(ctx, &domain.Complaint{ID: "b", TicketCode: "CMP00000001", Phone: "1"})
	if !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if err := c.Insert(ctx, &domain.Complaint{ID: "c", TicketCode: "CMP00000002", Phone: "1"}); err != nil {
		t.Fatalf("non-unique field must allow repeats: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 docs, got %d", c.Len())
	}
}
