package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product status values.
const (
	ProductPublished  = "published"
	ProductDraft      = "draft"
	ProductOutOfStock = "out_of_stock"
)

// Product type values.
const (
	ProductTypeSingle  = "single"
	ProductTypeVariant = "variant"
)

// Variant is one purchasable combination of a variant product.
type Variant struct {
	VariantID       string  `bson:"variantId" json:"variantId"`
	Color           string  `bson:"color" json:"color"`
	Size            string  `bson:"size" json:"size"`
	SKU             string  `bson:"sku" json:"sku"`
	Price           float64 `bson:"price" json:"price"`
	DiscountedPrice float64 `bson:"discountedPrice,omitempty" json:"discountedPrice,omitempty"`
	Stock           int     `bson:"stock" json:"stock"`
}

// ColorMedia holds the imagery for one product color. Map keys in
// Product.ColorMedia are stored lower-cased so lookups are a single
// map access regardless of how the variant spells its color.
type ColorMedia struct {
	ThumbnailURL string   `bson:"thumbnailUrl" json:"thumbnailUrl"`
	BannerURLs   []string `bson:"bannerUrls" json:"bannerUrls"`
}

// Product is a catalog entry. Single products sell from the top-level
// Price/Stock; variant products sell from Variants, and the top-level
// Stock mirrors the sum of variant stocks.
type Product struct {
	ID              primitive.ObjectID    `bson:"_id,omitempty" json:"id"`
	Name            string                `bson:"name" json:"name"`
	Slug            string                `bson:"slug" json:"slug"`
	Description     string                `bson:"description" json:"description"`
	Category        primitive.ObjectID    `bson:"category,omitempty" json:"category,omitempty"`
	Price           float64               `bson:"price" json:"price"`
	DiscountedPrice float64               `bson:"discountedPrice,omitempty" json:"discountedPrice,omitempty"`
	Stock           int                   `bson:"stock" json:"stock"`
	SKU             string                `bson:"sku,omitempty" json:"sku,omitempty"`
	Status          string                `bson:"status" json:"status"`
	ProductType     string                `bson:"productType" json:"productType"`
	Variants        []Variant             `bson:"variants,omitempty" json:"variants,omitempty"`
	ColorMedia      map[string]ColorMedia `bson:"colorMedia,omitempty" json:"colorMedia,omitempty"`
	MetaTitle       string                `bson:"metaTitle,omitempty" json:"metaTitle,omitempty"`
	MetaDescription string                `bson:"metaDescription,omitempty" json:"metaDescription,omitempty"`
	CreatedAt       time.Time             `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time             `bson:"updatedAt" json:"updatedAt"`
}

// FindVariant returns the variant with the given id, or nil.
func (p *Product) FindVariant(variantID string) *Variant {
	for i := range p.Variants {
		if p.Variants[i].VariantID == variantID {
			return &p.Variants[i]
		}
	}
	return nil
}

// VariantStockSum returns the total stock across all variants.
func (p *Product) VariantStockSum() int {
	total := 0
	for _, v := range p.Variants {
		total += v.Stock
	}
	return total
}
