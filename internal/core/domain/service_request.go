package domain

import "time"

// ServiceRequestStatus is the triage state of a customer service request.
type ServiceRequestStatus string

const (
	ServiceRequestPending    ServiceRequestStatus = "pending"
	ServiceRequestContacted  ServiceRequestStatus = "contacted"
	ServiceRequestInProgress ServiceRequestStatus = "in_progress"
	ServiceRequestCompleted  ServiceRequestStatus = "completed"
)

// Valid reports whether s is one of the known service request states.
func (s ServiceRequestStatus) Valid() bool {
	switch s {
	case ServiceRequestPending, ServiceRequestContacted, ServiceRequestInProgress, ServiceRequestCompleted:
		return true
	}
	return false
}

// ServiceRequest is a customer's request for on-site service.
type ServiceRequest struct {
	ID            string               `json:"id"             bson:"id"`
	Name          string               `json:"name"           bson:"name"`
	Address       string               `json:"address"        bson:"address"`
	Email         string               `json:"email"          bson:"email"`
	Phone         string               `json:"phone"          bson:"phone"`
	ServiceNeeded string               `json:"service_needed" bson:"service_needed"`
	Description   string               `json:"description"    bson:"description"`
	ImageData     *string              `json:"image_data"     bson:"image_data"`
	Status        ServiceRequestStatus `json:"status"         bson:"status"`
	CreatedAt     time.Time            `json:"created_at"     bson:"created_at"`
}

// ServiceRequestFields is the customer-editable shape of a service request.
type ServiceRequestFields struct {
	Name          string
	Address       string
	Email         string
	Phone         string
	ServiceNeeded string
	Description   string
	ImageData     *string
}
