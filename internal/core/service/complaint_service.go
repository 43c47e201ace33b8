package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/v4tech/servicedesk/internal/core/domain"
	"github.com/v4tech/servicedesk/internal/core/ports"
	"github.com/v4tech/servicedesk/internal/metrics"
)

const (
	ticketFragmentLen = 8
	maxTicketAttempts = 5
)

// ComplaintService manages complaints and resolves ticket lookups.
type ComplaintService struct {
	records lifecycle[domain.Complaint]
	store   ports.RecordStore[domain.Complaint]
	log     zerolog.Logger
}

var _ ports.ComplaintService = (*ComplaintService)(nil)

func NewComplaintService(store ports.RecordStore[domain.Complaint], log zerolog.Logger) *ComplaintService {
	return &ComplaintService{
		records: newLifecycle(store, metrics.KindComplaint, log),
		store:   store,
		log:     log,
	}
}

// Submit stores a new pending complaint under a freshly generated ticket code.
// The store rejects a repeated code, in which case another one is drawn.
func (s *ComplaintService) Submit(ctx context.Context, in ports.ComplaintInput) (*domain.Complaint, error) {
	now := utcNow()
	rec := &domain.Complaint{
		ID:           newRecordID(),
		CustomerName: in.CustomerName,
		Email:        in.Email,
		Phone:        in.Phone,
		Subject:      in.Subject,
		Description:  in.Description,
		Status:       domain.ComplaintPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	for i := 0; i < maxTicketAttempts; i++ {
		rec.TicketCode = newTicketCode()
		err := s.records.create(ctx, rec.ID, rec)
		if err == nil {
			s.log.Info().Str("ticket", rec.TicketCode).Msg("complaint ticket issued")
			return rec, nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		s.log.Warn().Str("ticket", rec.TicketCode).Msg("ticket code collision, retrying")
	}
	return nil, fmt.Errorf("ticket code: no free code after %d attempts", maxTicketAttempts)
}

// Search matches term exactly against the ticket code first, then the phone
// number. Phone numbers are not unique; the first match in store order wins.
func (s *ComplaintService) Search(ctx context.Context, term string) (*domain.Complaint, error) {
	if term == "" {
		return nil, s.records.notFound()
	}
	for _, field := range []string{"complaint_id", "phone"} {
		rec, err := s.store.FindOne(ctx, ports.Filter{field: term})
		if err == nil {
			return rec, nil
		}
		if !isNotFound(err) {
			return nil, fmt.Errorf("search complaint: %w", err)
		}
	}
	return nil, s.records.notFound()
}

func (s *ComplaintService) List(ctx context.Context) ([]domain.Complaint, error) {
	return s.records.list(ctx, nil)
}

// UpdateStatus changes the status and stamps updated_at. key is a ticket code
// or, failing that, a record id.
func (s *ComplaintService) UpdateStatus(ctx context.Context, key string, status domain.ComplaintStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	set := map[string]any{"status": status, "updated_at": utcNow()}

	err := s.records.patchWhere(ctx, ports.Filter{"complaint_id": key}, set)
	if isNotFound(err) {
		return s.records.patch(ctx, key, set)
	}
	return err
}

// Delete removes a complaint by ticket code or, failing that, by record id.
func (s *ComplaintService) Delete(ctx context.Context, key string) error {
	err := s.records.removeWhere(ctx, ports.Filter{"complaint_id": key})
	if isNotFound(err) {
		return s.records.remove(ctx, key)
	}
	return err
}

// newTicketCode is the ticket prefix followed by the first eight hex digits of
// a random UUID, upper-cased.
func newTicketCode() string {
	return domain.TicketPrefix + strings.ToUpper(uuid.NewString()[:ticketFragmentLen])
}
