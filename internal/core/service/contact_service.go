package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/v4tech/servicedesk/internal/core/domain"
	"github.com/v4tech/servicedesk/internal/core/ports"
	"github.com/v4tech/servicedesk/internal/metrics"
)

// ContactService manages messages from the public contact form.
type ContactService struct {
	records lifecycle[domain.ContactMessage]
}

var _ ports.ContactService = (*ContactService)(nil)

func NewContactService(store ports.RecordStore[domain.ContactMessage], log zerolog.Logger) *ContactService {
	return &ContactService{records: newLifecycle(store, metrics.KindContact, log)}
}

func (s *ContactService) Submit(ctx context.Context, in ports.ContactInput) (*domain.ContactMessage, error) {
	rec := &domain.ContactMessage{
		ID:        newRecordID(),
		Name:      in.Name,
		Email:     in.Email,
		Message:   in.Message,
		CreatedAt: utcNow(),
	}
	if err := s.records.create(ctx, rec.ID, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *ContactService) List(ctx context.Context) ([]domain.ContactMessage, error) {
	return s.records.list(ctx, nil)
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	return s.records.remove(ctx, id)
}
