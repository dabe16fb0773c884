package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/repwear/app/models"
)

// CartRepository persists the single per-user cart document.
type CartRepository interface {
	// FindByUser returns the user's cart, or an empty cart when none
	// exists yet (carts are created lazily on first write).
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	// Save upserts the cart keyed by userId.
	Save(ctx context.Context, cart *models.Cart) error
	Clear(ctx context.Context, userID primitive.ObjectID) error
	// PruneProduct removes every cart line referencing productID across
	// all carts (used when a product is unpublished).
	PruneProduct(ctx context.Context, productID primitive.ObjectID) (int64, error)
}

type cartRepo struct {
	col *mongo.Collection
}

func NewCartRepository(db *mongo.Database) CartRepository {
	return &cartRepo{col: db.Collection("carts")}
}

func (r *cartRepo) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := r.col.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
	}
	if err != nil {
		return nil, translate(err)
	}
	return &cart, nil
}

func (r *cartRepo) Save(ctx context.Context, cart *models.Cart) error {
	now := time.Now()
	cart.UpdatedAt = now

	update := bson.M{
		"$set":         bson.M{"items": cart.Items, "updatedAt": now},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	_, err := r.col.UpdateOne(ctx,
		bson.M{"userId": cart.UserID},
		update,
		options.Update().SetUpsert(true),
	)
	return translate(err)
}

func (r *cartRepo) Clear(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"items": []models.CartItem{}, "updatedAt": time.Now()}},
	)
	return translate(err)
}

func (r *cartRepo) PruneProduct(ctx context.Context, productID primitive.ObjectID) (int64, error) {
	res, err := r.col.UpdateMany(ctx,
		bson.M{"items.productId": productID},
		bson.M{
			"$pull": bson.M{"items": bson.M{"productId": productID}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return 0, translate(err)
	}
	return res.ModifiedCount, nil
}
