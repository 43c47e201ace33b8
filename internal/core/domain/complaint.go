package domain

import "time"

// TicketPrefix starts every complaint ticket code.
const TicketPrefix = "CMP"

// ComplaintStatus is the resolution state of a complaint.
type ComplaintStatus string

const (
	ComplaintPending    ComplaintStatus = "Pending"
	ComplaintInProgress ComplaintStatus = "In Progress"
	ComplaintCompleted  ComplaintStatus = "Completed"
)

// Valid reports whether s is one of the known complaint states.
func (s ComplaintStatus) Valid() bool {
	switch s {
	case ComplaintPending, ComplaintInProgress, ComplaintCompleted:
		return true
	}
	return false
}

// Complaint is a customer grievance tracked under a shareable ticket code.
// TicketCode is assigned once at creation and never rewritten.
type Complaint struct {
	ID           string          `json:"id"            bson:"id"`
	TicketCode   string          `json:"complaint_id"  bson:"complaint_id"`
	CustomerName string          `json:"customer_name" bson:"customer_name"`
	Email        string          `json:"email"         bson:"email"`
	Phone        string          `json:"phone"         bson:"phone"`
	Subject      string          `json:"subject"       bson:"subject"`
	Description  string          `json:"description"   bson:"description"`
	Status       ComplaintStatus `json:"status"        bson:"status"`
	CreatedAt    time.Time       `json:"created_at"    bson:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"    bson:"updated_at"`
}
