package seeders

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/repwear/app/models"
	"github.com/shashiranjanraj/repwear/pkg/auth"
)

func init() {
	Register("users", seedUsers)
}

// seedUsers upserts a default admin account. Change the password after
// first login.
func seedUsers(ctx context.Context, db *mongo.Database) error {
	hash, err := auth.HashPassword("changeme123")
	if err != nil {
		return err
	}

	now := time.Now()
	_, err = db.Collection("users").UpdateOne(ctx,
		bson.M{"email": "admin@repwear.com"},
		bson.M{"$setOnInsert": bson.M{
			"name":      "RepWear Admin",
			"email":     "admin@repwear.com",
			"password":  hash,
			"role":      models.RoleAdmin,
			"createdAt": now,
			"updatedAt": now,
		}},
		options.Update().SetUpsert(true),
	)
	return err
}
