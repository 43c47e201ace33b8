package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/v4tech/servicedesk/internal/core/domain"
	"github.com/v4tech/servicedesk/internal/core/ports"
	"github.com/v4tech/servicedesk/internal/metrics"
)

// ServiceRequestService manages customer service requests.
type ServiceRequestService struct {
	records lifecycle[domain.ServiceRequest]
}

var _ ports.ServiceRequestService = (*ServiceRequestService)(nil)

func NewServiceRequestService(store ports.RecordStore[domain.ServiceRequest], log zerolog.Logger) *ServiceRequestService {
	return &ServiceRequestService{records: newLifecycle(store, metrics.KindServiceRequest, log)}
}

// Submit stores a new request in the pending state.
func (s *ServiceRequestService) Submit(ctx context.Context, in domain.ServiceRequestFields) (*domain.ServiceRequest, error) {
	rec := &domain.ServiceRequest{
		ID:            newRecordID(),
		Name:          in.Name,
		Address:       in.Address,
		Email:         in.Email,
		Phone:         in.Phone,
		ServiceNeeded: in.ServiceNeeded,
		Description:   in.Description,
		ImageData:     in.ImageData,
		Status:        domain.ServiceRequestPending,
		CreatedAt:     utcNow(),
	}
	if err := s.records.create(ctx, rec.ID, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *ServiceRequestService) List(ctx context.Context) ([]domain.ServiceRequest, error) {
	return s.records.list(ctx, nil)
}

func (s *ServiceRequestService) UpdateStatus(ctx context.Context, id string, status domain.ServiceRequestStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	return s.records.patch(ctx, id, map[string]any{"status": status})
}

// Update overwrites the customer-supplied fields; status and timestamps are kept.
func (s *ServiceRequestService) Update(ctx context.Context, id string, in domain.ServiceRequestFields) error {
	return s.records.patch(ctx, id, map[string]any{
		"name":           in.Name,
		"address":        in.Address,
		"email":          in.Email,
		"phone":          in.Phone,
		"service_needed": in.ServiceNeeded,
		"description":    in.Description,
		"image_data":     in.ImageData,
	})
}

func (s *ServiceRequestService) Delete(ctx context.Context, id string) error {
	return s.records.remove(ctx, id)
}
