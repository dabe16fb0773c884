package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VariantSelector identifies which variant a cart line refers to.
type VariantSelector struct {
	VariantID  string `bson:"variantId" json:"variantId"`
	VariantSKU string `bson:"variantSku,omitempty" json:"variantSku,omitempty"`
}

// CartItem is one line of a cart.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Variant   *VariantSelector   `bson:"variant,omitempty" json:"variant,omitempty"`
}

// Cart is the single per-user cart document (unique userId).
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Items     []CartItem         `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CartLine is a cart item joined with its (variant-projected) product,
// as returned by the cart read path.
type CartLine struct {
	Item    CartItem `json:"item"`
	Product *Product `json:"product,omitempty"`
}
