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

// WishlistRepository persists the single per-user wishlist document.
type WishlistRepository interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Wishlist, error)
	// AddProduct appends productID unless it is already present.
	AddProduct(ctx context.Context, userID, productID primitive.ObjectID) error
	RemoveProduct(ctx context.Context, userID, productID primitive.ObjectID) error
}

type wishlistRepo struct {
	col *mongo.Collection
}

func NewWishlistRepository(db *mongo.Database) WishlistRepository {
	return &wishlistRepo{col: db.Collection("wishlists")}
}

func (r *wishlistRepo) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Wishlist, error) {
	var w models.Wishlist
	err := r.col.FindOne(ctx, bson.M{"userId": userID}).Decode(&w)
	if err == mongo.ErrNoDocuments {
		return &models.Wishlist{UserID: userID, Products: []models.WishlistEntry{}}, nil
	}
	if err != nil {
		return nil, translate(err)
	}
	return &w, nil
}

func (r *wishlistRepo) AddProduct(ctx context.Context, userID, productID primitive.ObjectID) error {
	now := time.Now()
	// The productId guard in the filter makes re-adding a no-op upsert
	// conflict, which we swallow: adds are idempotent.
	_, err := r.col.UpdateOne(ctx,
		bson.M{"userId": userID, "products.productId": bson.M{"$ne": productID}},
		bson.M{
			"$push":        bson.M{"products": models.WishlistEntry{ProductID: productID, AddedAt: now}},
			"$set":         bson.M{"updatedAt": now},
			"$setOnInsert": bson.M{"createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil && mongo.IsDuplicateKeyError(err) {
		// Wishlist exists and already contains the product.
		return nil
	}
	return translate(err)
}

func (r *wishlistRepo) RemoveProduct(ctx context.Context, userID, productID primitive.ObjectID) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{
			"$pull": bson.M{"products": bson.M{"productId": productID}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	return translate(err)
}
