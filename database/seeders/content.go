package seeders

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/repwear/pkg/slug"
)

func init() {
	Register("content", seedContent)
}

// seedContent upserts the CMS baseline: site settings, a default active
// theme, a hero slide, and a couple of trainers with a class each.
func seedContent(ctx context.Context, db *mongo.Database) error {
	now := time.Now()

	_, err := db.Collection("settings").UpdateOne(ctx,
		bson.M{},
		bson.M{"$setOnInsert": bson.M{
			"siteName":     "RepWear",
			"supportEmail": "support@repwear.com",
			"updatedAt":    now,
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return err
	}

	_, err = db.Collection("themes").UpdateOne(ctx,
		bson.M{"name": "Midnight"},
		bson.M{"$setOnInsert": bson.M{
			"name": "Midnight",
			"colors": bson.M{
				"primary":    "#0f172a",
				"accent":     "#f97316",
				"background": "#020617",
			},
			"active":    true,
			"createdAt": now,
			"updatedAt": now,
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return err
	}

	_, err = db.Collection("hero_slides").UpdateOne(ctx,
		bson.M{"title": "New Season. New PRs."},
		bson.M{"$setOnInsert": bson.M{
			"title":     "New Season. New PRs.",
			"subtitle":  "Gear engineered for heavy sessions.",
			"imageUrl":  "/storage/hero/season-drop.jpg",
			"linkUrl":   "/products",
			"order":     1,
			"createdAt": now,
			"updatedAt": now,
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return err
	}

	trainers := []bson.M{
		{"name": "Maya Lindqvist", "speciality": "Olympic lifting", "bio": "Former national-level weightlifter coaching technique-first strength."},
		{"name": "Dre Okafor", "speciality": "Conditioning", "bio": "HIIT and engine work for athletes who hate treadmills."},
	}
	for _, t := range trainers {
		t["slug"] = slug.Make(t["name"].(string))
		t["createdAt"] = now
		t["updatedAt"] = now
		_, err = db.Collection("trainers").UpdateOne(ctx,
			bson.M{"slug": t["slug"]},
			bson.M{"$setOnInsert": t},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return err
		}
	}

	classes := []bson.M{
		{"name": "Barbell Basics", "description": "Squat, bench, deadlift fundamentals.", "schedule": "Mon/Wed 18:00"},
		{"name": "Engine Room", "description": "45 minutes of intervals and regret.", "schedule": "Tue/Thu 07:00"},
	}
	for _, g := range classes {
		g["slug"] = slug.Make(g["name"].(string))
		g["createdAt"] = now
		g["updatedAt"] = now
		_, err = db.Collection("gym_classes").UpdateOne(ctx,
			bson.M{"slug": g["slug"]},
			bson.M{"$setOnInsert": g},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return err
		}
	}

	return nil
}
