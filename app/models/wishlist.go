package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WishlistEntry is one saved product on a wishlist.
type WishlistEntry struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	AddedAt   time.Time          `bson:"addedAt" json:"addedAt"`
}

// Wishlist is the single per-user wishlist document (unique userId).
type Wishlist struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Products  []WishlistEntry    `bson:"products" json:"products"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
