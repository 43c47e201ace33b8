package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/v4tech/servicedesk/internal/core/domain"
	"github.com/v4tech/servicedesk/internal/core/ports"
	"github.com/v4tech/servicedesk/internal/metrics"
)

// ReviewService manages customer reviews and their approval.
type ReviewService struct {
	records lifecycle[domain.Review]
}

var _ ports.ReviewService = (*ReviewService)(nil)

func NewReviewService(store ports.RecordStore[domain.Review], log zerolog.Logger) *ReviewService {
	return &ReviewService{records: newLifecycle(store, metrics.KindReview, log)}
}

// Submit stores a new, unapproved review.
func (s *ReviewService) Submit(ctx context.Context, in domain.ReviewFields) (*domain.Review, error) {
	rec := &domain.Review{
		ID:           newRecordID(),
		CustomerName: in.CustomerName,
		Email:        in.Email,
		ServiceTaken: in.ServiceTaken,
		Rating:       in.Rating,
		ReviewText:   in.ReviewText,
		Approved:     false,
		CreatedAt:    utcNow(),
	}
	if err := s.records.create(ctx, rec.ID, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns approved reviews, or every review when includeUnapproved is set.
// The caller decides; no authorisation is applied here.
func (s *ReviewService) List(ctx context.Context, includeUnapproved bool) ([]domain.Review, error) {
	filter := ports.Filter{"approved": true}
	if includeUnapproved {
		filter = nil
	}
	return s.records.list(ctx, filter)
}

func (s *ReviewService) Approve(ctx context.Context, id string) error {
	return s.records.patch(ctx, id, map[string]any{"approved": true})
}

// Update overwrites the customer-supplied fields; approval is kept.
func (s *ReviewService) Update(ctx context.Context, id string, in domain.ReviewFields) error {
	return s.records.patch(ctx, id, map[string]any{
		"customer_name": in.CustomerName,
		"email":         in.Email,
		"service_taken": in.ServiceTaken,
		"rating":        in.Rating,
		"review_text":   in.ReviewText,
	})
}

func (s *ReviewService) Delete(ctx context.Context, id string) error {
	return s.records.remove(ctx, id)
}
