package mongo

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names shared by the API and the maintenance jobs.
const (
	CollectionUsers           = "users"
	CollectionSessions        = "user_sessions"
	CollectionServiceRequests = "customer_details"
	CollectionReviews         = "reviews"
	CollectionComplaints      = "complaints"
	CollectionContact         = "contact_messages"
)

// UniqueFields lists, per collection, the fields a store must keep unique.
// Identity documents and phone numbers are deliberately absent: the
// admin-identity upsert race and repeated phone numbers are tolerated.
var UniqueFields = map[string][]string{
	CollectionSessions:   {"session_token"},
	CollectionComplaints: {"complaint_id"},
}

// EnsureIndexes creates the lookup indexes, marking UniqueFields unique.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	plan := map[string][]string{
		CollectionUsers:           {"id", "email"},
		CollectionSessions:        {"session_token", "expires_at"},
		CollectionServiceRequests: {"id", "status"},
		CollectionReviews:         {"id", "approved"},
		CollectionComplaints:      {"id", "complaint_id", "phone", "status"},
		CollectionContact:         {"id"},
	}

	for name, fields := range plan {
		models := make([]mongo.IndexModel, 0, len(fields))
		for _, f := range fields {
			model := mongo.IndexModel{Keys: bson.D{{Key: f, Value: 1}}}
			if slices.Contains(UniqueFields[name], f) {
				model.Options = options.Index().SetUnique(true)
			}
			models = append(models, model)
		}
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", name, err)
		}
	}
	return nil
}
