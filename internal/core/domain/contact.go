package domain

import "time"

// ContactMessage is a free-text message left through the public contact form.
type ContactMessage struct {
	ID        string    `json:"id"         bson:"id"`
	Name      string    `json:"name"       bson:"name"`
	Email     string    `json:"email"      bson:"email"`
	Message   string    `json:"message"    bson:"message"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
