package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/repwear/app/models"
	"github.com/shashiranjanraj/repwear/app/services"
)

func variantProduct() *models.Product {
	return &models.Product{
		ID:          primitive.NewObjectID(),
		Name:        "Flex Tee",
		Slug:        "flex-tee",
		Status:      models.ProductPublished,
		ProductType: models.ProductTypeVariant,
		Stock:       15,
		Variants: []models.Variant{
			{VariantID: "v-red-m", Color: "Red", Size: "M", SKU: "FT-RED-M", Price: 29.99, Stock: 10},
			{VariantID: "v-blue-l", Color: "Blue", Size: "L", SKU: "FT-BLU-L", Price: 29.99, Stock: 5},
		},
		ColorMedia: map[string]models.ColorMedia{
			"red":  {ThumbnailURL: "https://cdn.test/red.jpg", BannerURLs: []string{"https://cdn.test/red-1.jpg"}},
			"blue": {ThumbnailURL: "https://cdn.test/blue.jpg"},
		},
	}
}

func singleProduct(stock int) *models.Product {
	return &models.Product{
		ID:          primitive.NewObjectID(),
		Name:        "Shaker Bottle",
		Slug:        "shaker-bottle",
		Status:      models.ProductPublished,
		ProductType: models.ProductTypeSingle,
		Price:       12.50,
		Stock:       stock,
	}
}

func TestCartAdd_MergesSameVariant(t *testing.T) {
	p := variantProduct()
	svc := services.NewCartService(newFakeCartRepo(), newFakeProductRepo(p))
	userID := primitive.NewObjectID()
	sel := &models.VariantSelector{VariantID: "v-red-m"}

	_, err := svc.Add(context.Background(), userID, services.AddToCartInput{
		ProductID: p.ID.Hex(), Quantity: 2, Variant: sel,
	})
	require.NoError(t, err)

	cart, err := svc.Add(context.Background(), userID, services.AddToCartInput{
		ProductID: p.ID.Hex(), Quantity: 3, Variant: sel,
	})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartAdd_SeparateLinesPerVariant(t *testing.T) {
	p := variantProduct()
	svc := services.NewCartService(newFakeCartRepo(), newFakeProductRepo(p))
	userID := primitive.NewObjectID()

	_, err := svc.Add(context.Background(), userID, services.AddToCartInput{
		ProductID: p.ID.Hex(), Quantity: 1, Variant: &models.VariantSelector{VariantID: "v-red-m"},
	})
	require.NoError(t, err)

	cart, err := svc.Add(context.Background(), userID, services.AddToCartInput{
		ProductID: p.ID.Hex(), Quantity: 1, Variant: &models.VariantSelector{VariantID: "v-blue-l"},
	})
	require.NoError(t, err)

	assert.Len(t, cart.Items, 2)
}

func TestCartAdd_InsufficientStock(t *testing.T) {
	p := variantProduct()
	svc := services.NewCartService(newFakeCartRepo(), newFakeProductRepo(p))
	userID := primitive.NewObjectID()

	_, err := svc.Add(context.Background(), userID, services.AddToCartInput{
		ProductID: p.ID.Hex(), Quantity: 6, Variant: &models.VariantSelector{VariantID: "v-blue-l"},
	})
	assert.ErrorIs(t, err, services.ErrInsufficientStock)
}

func TestCartAdd_MergeCannotExceedStock(t *testing.T) {
	p := singleProduct(5)
	svc := services.NewCartService(newFakeCartRepo(), newFakeProductRepo(p))
	userID := primitive.NewObjectID()

	_, err := svc.Add(context.Background(), userID, services.AddToCartInput{
		ProductID: p.ID.Hex(), Quantity: 4,
	})
	require.NoError(t, err)

	// 4 already in the cart + 2 more would exceed stock of 5.
	_, err = svc.Add(context.Background(), userID, services.AddToCartInput{
		ProductID: p.ID.Hex(), Quantity: 2,
	})
	assert.ErrorIs(t, err, services.ErrInsufficientStock)
}

func TestCartAdd_UnpublishedProductRejected(t *testing.T) {
	p := singleProduct(10)
	p.Status = models.ProductDraft
	svc := services.NewCartService(newFakeCartRepo(), newFakeProductRepo(p))

	_, err := svc.Add(context.Background(), primitive.NewObjectID(), services.AddToCartInput{
		ProductID: p.ID.Hex(), Quantity: 1,
	})
	assert.ErrorIs(t, err, services.ErrProductUnavailable)
}

func TestCartAdd_VariantRequiredForVariantProduct(t *testing.T) {
	p := variantProduct()
	svc := services.NewCartService(newFakeCartRepo(), newFakeProductRepo(p))

	_, err := svc.Add(context.Background(), primitive.NewObjectID(), services.AddToCartInput{
		ProductID: p.ID.Hex(), Quantity: 1,
	})
	assert.ErrorIs(t, err, services.ErrVariantRequired)
}

func TestCartUpdateItem_ZeroQuantityRemovesLine(t *testing.T) {
	p := singleProduct(10)
	svc := services.NewCartService(newFakeCartRepo(), newFakeProductRepo(p))
	userID := primitive.NewObjectID()

	_, err := svc.Add(context.Background(), userID, services.AddToCartInput{
		ProductID: p.ID.Hex(), Quantity: 2,
	})
	require.NoError(t, err)

	cart, err := svc.UpdateItem(context.Background(), userID, services.UpdateCartItemInput{
		ProductID: p.ID.Hex(), Quantity: 0,
	})
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartUpdateItem_RejectsOverStock(t *testing.T) {
	p := singleProduct(3)
	svc := services.NewCartService(newFakeCartRepo(), newFakeProductRepo(p))
	userID := primitive.NewObjectID()

	_, err := svc.Add(context.Background(), userID, services.AddToCartInput{
		ProductID: p.ID.Hex(), Quantity: 1,
	})
	require.NoError(t, err)

	_, err = svc.UpdateItem(context.Background(), userID, services.UpdateCartItemInput{
		ProductID: p.ID.Hex(), Quantity: 4,
	})
	assert.ErrorIs(t, err, services.ErrInsufficientStock)
}

func TestCartGet_ProjectsSingleVariantAndColorMedia(t *testing.T) {
	p := variantProduct()
	svc := services.NewCartService(newFakeCartRepo(), newFakeProductRepo(p))
	userID := primitive.NewObjectID()

	_, err := svc.Add(context.Background(), userID, services.AddToCartInput{
		ProductID: p.ID.Hex(), Quantity: 1, Variant: &models.VariantSelector{VariantID: "v-red-m"},
	})
	require.NoError(t, err)

	lines, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.NotNil(t, lines[0].Product)

	// Exactly the selected variant, and only its color media.
	require.Len(t, lines[0].Product.Variants, 1)
	assert.Equal(t, "v-red-m", lines[0].Product.Variants[0].VariantID)
	require.Len(t, lines[0].Product.ColorMedia, 1)
	assert.Contains(t, lines[0].Product.ColorMedia, "red")
}

func TestCartGet_LegacyMixedCaseColorMediaKey(t *testing.T) {
	p := variantProduct()
	// Legacy document: key stored with the original casing.
	p.ColorMedia = map[string]models.ColorMedia{
		"Red": {ThumbnailURL: "https://cdn.test/red.jpg"},
	}
	svc := services.NewCartService(newFakeCartRepo(), newFakeProductRepo(p))
	userID := primitive.NewObjectID()

	_, err := svc.Add(context.Background(), userID, services.AddToCartInput{
		ProductID: p.ID.Hex(), Quantity: 1, Variant: &models.VariantSelector{VariantID: "v-red-m"},
	})
	require.NoError(t, err)

	lines, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Len(t, lines[0].Product.ColorMedia, 1)
	assert.Contains(t, lines[0].Product.ColorMedia, "red")
}

func TestCartGet_MissingVariantYieldsEmptyProjection(t *testing.T) {
	p := variantProduct()
	repo := newFakeProductRepo(p)
	svc := services.NewCartService(newFakeCartRepo(), repo)
	userID := primitive.NewObjectID()

	_, err := svc.Add(context.Background(), userID, services.AddToCartInput{
		ProductID: p.ID.Hex(), Quantity: 1, Variant: &models.VariantSelector{VariantID: "v-red-m"},
	})
	require.NoError(t, err)

	// The variant disappears from the catalog after the line was added.
	p.Variants = []models.Variant{{VariantID: "v-blue-l", Color: "Blue", Size: "L", Stock: 5}}

	lines, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.NotNil(t, lines[0].Product)
	assert.Empty(t, lines[0].Product.Variants)
	assert.Empty(t, lines[0].Product.ColorMedia)
}
