package domain

import "time"

// Review is a customer testimonial. Only approved reviews are shown publicly.
type Review struct {
	ID           string    `json:"id"            bson:"id"`
	CustomerName string    `json:"customer_name" bson:"customer_name"`
	Email        string    `json:"email"         bson:"email"`
	ServiceTaken string    `json:"service_taken" bson:"service_taken"`
	Rating       int       `json:"rating"        bson:"rating"`
	ReviewText   string    `json:"review_text"   bson:"review_text"`
	Approved     bool      `json:"approved"      bson:"approved"`
	CreatedAt    time.Time `json:"created_at"    bson:"created_at"`
}

// ReviewFields is the customer-editable shape of a review.
type ReviewFields struct {
	CustomerName string
	Email        string
	ServiceTaken string
	Rating       int
	ReviewText   string
}
