package domain

import "time"

// AdminIdentityID is the fixed id of the operator identity minted by local login.
const AdminIdentityID = "admin"

// Identity is a resolved caller: the local operator or an externally verified user.
type Identity struct {
	ID        string    `json:"id"                bson:"id"`
	Email     string    `json:"email"             bson:"email"`
	Name      string    `json:"name"              bson:"name"`
	Picture   *string   `json:"picture,omitempty" bson:"picture"`
	CreatedAt time.Time `json:"created_at"        bson:"created_at"`
}
