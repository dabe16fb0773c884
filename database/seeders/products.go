package seeders

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/repwear/app/models"
	"github.com/shashiranjanraj/repwear/pkg/slug"
)

func init() {
	Register("products", seedProducts)
}

// seedProducts upserts a small starter catalog: one variant product
// with color media and one single product.
func seedProducts(ctx context.Context, db *mongo.Database) error {
	now := time.Now()

	hoodie := models.Product{
		Name:        "Power Hoodie",
		Slug:        slug.Make("Power Hoodie"),
		Description: "Heavyweight fleece hoodie built for cold warm-ups.",
		Status:      models.ProductPublished,
		ProductType: models.ProductTypeVariant,
		Price:       59.00,
		Variants: []models.Variant{
			{VariantID: primitive.NewObjectID().Hex(), Color: "Black", Size: "M", SKU: "PH-BLK-M", Price: 59.00, Stock: 25},
			{VariantID: primitive.NewObjectID().Hex(), Color: "Black", Size: "L", SKU: "PH-BLK-L", Price: 59.00, Stock: 20},
			{VariantID: primitive.NewObjectID().Hex(), Color: "Sand", Size: "M", SKU: "PH-SND-M", Price: 59.00, Stock: 15},
		},
		ColorMedia: map[string]models.ColorMedia{
			"black": {ThumbnailURL: "/storage/products/power-hoodie/black/thumb.jpg", BannerURLs: []string{"/storage/products/power-hoodie/black/banner-1.jpg"}},
			"sand":  {ThumbnailURL: "/storage/products/power-hoodie/sand/thumb.jpg", BannerURLs: []string{"/storage/products/power-hoodie/sand/banner-1.jpg"}},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	hoodie.Stock = hoodie.VariantStockSum()

	shaker := models.Product{
		Name:        "RepWear Shaker 700ml",
		Slug:        slug.Make("RepWear Shaker 700ml"),
		Description: "Leak-proof shaker with steel mixing ball.",
		Status:      models.ProductPublished,
		ProductType: models.ProductTypeSingle,
		Price:       12.50,
		Stock:       100,
		SKU:         "RW-SHK-700",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	coll := db.Collection("products")
	for _, p := range []models.Product{hoodie, shaker} {
		_, err := coll.UpdateOne(ctx,
			bson.M{"slug": p.Slug},
			bson.M{"$setOnInsert": p},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
