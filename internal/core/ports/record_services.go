package ports

import (
	"context"

	"github.com/v4tech/servicedesk/internal/core/domain"
)

// ServiceRequestService is the lifecycle of customer service requests.
type ServiceRequestService interface {
	Submit(ctx context.Context, in domain.ServiceRequestFields) (*domain.ServiceRequest, error)
	List(ctx context.Context) ([]domain.ServiceRequest, error)
	UpdateStatus(ctx context.Context, id string, status domain.ServiceRequestStatus) error
	Update(ctx context.Context, id string, in domain.ServiceRequestFields) error
	Delete(ctx context.Context, id string) error
}

// ReviewService is the lifecycle of customer reviews.
type ReviewService interface {
	Submit(ctx context.Context, in domain.ReviewFields) (*domain.Review, error)
	// List returns only approved reviews unless includeUnapproved is set.
	List(ctx context.Context, includeUnapproved bool) ([]domain.Review, error)
	Approve(ctx context.Context, id string) error
	Update(ctx context.Context, id string, in domain.ReviewFields) error
	Delete(ctx context.Context, id string) error
}

// ComplaintInput is the public complaint submission.
type ComplaintInput struct {
	CustomerName string
	Email        string
	Phone        string
	Subject      string
	Description  string
}

// ComplaintService is the lifecycle of complaints plus ticket lookup.
// key arguments accept either the ticket code or the record id.
type ComplaintService interface {
	Submit(ctx context.Context, in ComplaintInput) (*domain.Complaint, error)
	Search(ctx context.Context, term string) (*domain.Complaint, error)
	List(ctx context.Context) ([]domain.Complaint, error)
	UpdateStatus(ctx context.Context, key string, status domain.ComplaintStatus) error
	Delete(ctx context.Context, key string) error
}

// ContactInput is the public contact form submission.
type ContactInput struct {
	Name    string
	Email   string
	Message string
}

// ContactService is the lifecycle of contact messages.
type ContactService interface {
	Submit(ctx context.Context, in ContactInput) (*domain.ContactMessage, error)
	List(ctx context.Context) ([]domain.ContactMessage, error)
	Delete(ctx context.Context, id string) error
}

// StatsService computes dashboard counters.
type StatsService interface {
	Get(ctx context.Context) (*domain.Stats, error)
}

// StatsCache is an optional short-lived cache in front of StatsService.
type StatsCache interface {
	Get(ctx context.Context) (*domain.Stats, bool, error)
	Set(ctx context.Context, stats *domain.Stats) error
}
