package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/v4tech/servicedesk/internal/core/domain"
	"github.com/v4tech/servicedesk/internal/core/ports"
	"github.com/v4tech/servicedesk/internal/infrastructure/db/memory"
)

var ticketPattern = regexp.MustCompile(`^CMP[0-9A-F]{8}$`)

func sampleComplaint(phone string) ports.ComplaintInput {
	return ports.ComplaintInput{
		CustomerName: "Dee",
		Email:        "dee@example.com",
		Phone:        phone,
		Subject:      "late",
		Description:  "technician was late",
	}
}

func TestNewTicketCode_Format(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := newTicketCode()
		if !ticketPattern.MatchString(code) {
			t.Fatalf("bad ticket code %q", code)
		}
		seen[code] = true
	}
	if len(seen) < 99 {
		t.Fatalf("ticket codes are not varying: %d distinct", len(seen))
	}
}

func TestComplaintService_Submit(t *testing.T) {
	svc := NewComplaintService(memory.NewCollection[domain.Complaint](), zerolog.Nop())

	rec, err := svc.Submit(context.Background(), sampleComplaint("5551234"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !ticketPattern.MatchString(rec.TicketCode) {
		t.Fatalf("bad ticket code %q", rec.TicketCode)
	}
	if rec.Status != domain.ComplaintPending {
		t.Fatalf("expected Pending, got %q", rec.Status)
	}
	if !rec.UpdatedAt.Equal(rec.CreatedAt) {
		t.Fatalf("updated_at should equal created_at on submit")
	}
}

func TestComplaintService_SearchByTicketThenPhone(t *testing.T) {
	svc := NewComplaintService(memory.NewCollection[domain.Complaint](), zerolog.Nop())
	ctx := context.Background()

	first, _ := svc.Submit(ctx, sampleComplaint("5551234"))
	second, _ := svc.Submit(ctx, sampleComplaint("5551234"))

	got, err := svc.Search(ctx, second.TicketCode)
	if err != nil {
		t.Fatalf("Search by ticket: %v", err)
	}
	if got.ID != second.ID {
		t.Fatalf("ticket search returned %s, want %s", got.ID, second.ID)
	}

	got, err = svc.Search(ctx, "5551234")
	if err != nil {
		t.Fatalf("Search by phone: %v", err)
	}
	if got.ID != first.ID {
		t.Fatalf("phone search should return the first match in store order")
	}

	for _, term := range []string{"CMPDEADBEEF", "", "   ", " 5551234 ", strings.ToLower(second.TicketCode)} {
		if _, err := svc.Search(ctx, term); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("%q: expected ErrNotFound, got %v", term, err)
		}
	}
}

func TestComplaintService_UpdateStatusByTicketOrID(t *testing.T) {
	svc := NewComplaintService(memory.NewCollection[domain.Complaint](), zerolog.Nop())
	ctx := context.Background()
	rec, _ := svc.Submit(ctx, sampleComplaint("5551234"))

	time.Sleep(2 * time.Millisecond)
	if err := svc.UpdateStatus(ctx, rec.TicketCode, domain.ComplaintInProgress); err != nil {
		t.Fatalf("UpdateStatus by ticket: %v", err)
	}
	got, _ := svc.Search(ctx, rec.TicketCode)
	if got.Status != domain.ComplaintInProgress {
		t.Fatalf("status not updated: %q", got.Status)
	}
	if !got.UpdatedAt.After(rec.CreatedAt) {
		t.Fatalf("expected updated_at to advance")
	}

	if err := svc.UpdateStatus(ctx, rec.ID, domain.ComplaintCompleted); err != nil {
		t.Fatalf("UpdateStatus by id: %v", err)
	}
	got, _ = svc.Search(ctx, rec.TicketCode)
	if got.Status != domain.ComplaintCompleted {
		t.Fatalf("status not updated by id: %q", got.Status)
	}

	if err := svc.UpdateStatus(ctx, rec.ID, "pending"); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus for wrong case, got %v", err)
	}
	if err := svc.UpdateStatus(ctx, "CMPDEADBEEF", domain.ComplaintCompleted); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestComplaintService_DeleteByTicket(t *testing.T) {
	svc := NewComplaintService(memory.NewCollection[domain.Complaint](), zerolog.Nop())
	ctx := context.Background()
	a, _ := svc.Submit(ctx, sampleComplaint("1"))
	b, _ := svc.Submit(ctx, sampleComplaint("2"))

	if err := svc.Delete(ctx, a.TicketCode); err != nil {
		t.Fatalf("Delete by ticket: %v", err)
	}
	if err := svc.Delete(ctx, b.ID); err != nil {
		t.Fatalf("Delete by id: %v", err)
	}
	if err := svc.Delete(ctx, a.TicketCode); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	list, _ := svc.List(ctx)
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}
}

// collidingStore reports the first collisions inserts as duplicate ticket codes.
type collidingStore struct {
	ports.RecordStore[domain.Complaint]
	collisions int
	codes      []string
}

func (s *collidingStore) Insert(ctx context.Context, rec *domain.Complaint) error {
	s.codes = append(s.codes, rec.TicketCode)
	if len(s.codes) <= s.collisions {
		return domain.ErrDuplicate
	}
	return s.RecordStore.Insert(ctx, rec)
}

func TestComplaintService_RetriesOnDuplicateTicket(t *testing.T) {
	store := &collidingStore{RecordStore: memory.NewCollection[domain.Complaint]("complaint_id"), collisions: 2}
	svc := NewComplaintService(store, zerolog.Nop())

	rec, err := svc.Submit(context.Background(), sampleComplaint("1"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(store.codes) != 3 {
		t.Fatalf("expected 3 insert attempts, got %d", len(store.codes))
	}
	if rec.TicketCode != store.codes[2] {
		t.Fatalf("returned ticket %q is not the stored one %q", rec.TicketCode, store.codes[2])
	}
	got, err := svc.Search(context.Background(), rec.TicketCode)
	if err != nil || got.ID != rec.ID {
		t.Fatalf("stored complaint not found by ticket: %v", err)
	}
}

func TestComplaintService_GivesUpOnPersistentCollision(t *testing.T) {
	store := &collidingStore{RecordStore: memory.NewCollection[domain.Complaint](), collisions: maxTicketAttempts}
	svc := NewComplaintService(store, zerolog.Nop())

	if _, err := svc.Submit(context.Background(), sampleComplaint("1")); err == nil {
		t.Fatalf("expected error when every ticket code collides")
	}
	if len(store.codes) != maxTicketAttempts {
		t.Fatalf("expected %d attempts, got %d", maxTicketAttempts, len(store.codes))
	}
}

func TestComplaintService_StoreErrorIsNotRetried(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewComplaintService(failingStore[domain.Complaint]{err: boom}, zerolog.Nop())

	if _, err := svc.Submit(context.Background(), sampleComplaint("1")); !errors.Is(err, boom) {
		t.Fatalf("expected the store error, got %v", err)
	}
}
