package domain

// Stats holds the dashboard counters. Counts per kind are read independently
// and may be slightly stale relative to each other.
type Stats struct {
	TotalCustomers    int64 `json:"total_customers"`
	PendingCustomers  int64 `json:"pending_customers"`
	TotalReviews      int64 `json:"total_reviews"`
	PendingReviews    int64 `json:"pending_reviews"`
	TotalComplaints   int64 `json:"total_complaints"`
	PendingComplaints int64 `json:"pending_complaints"`
	TotalMessages     int64 `json:"total_messages"`
}
