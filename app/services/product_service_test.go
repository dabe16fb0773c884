package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/repwear/app/models"
	"github.com/shashiranjanraj/repwear/app/services"
)

func validVariantInput() services.ProductInput {
	return services.ProductInput{
		Name:        "Power Hoodie",
		Status:      models.ProductPublished,
		ProductType: models.ProductTypeVariant,
		Stock:       12,
		Variants: []services.VariantInput{
			{Color: "Black", Size: "M", SKU: "PH-BLK-M", Price: 59, Stock: 7},
			{Color: "Black", Size: "L", SKU: "PH-BLK-L", Price: 59, Stock: 5},
		},
		ColorMedia: map[string]services.ColorMediaInput{
			"Black": {ThumbnailURL: "https://cdn.test/black.jpg"},
		},
	}
}

func TestProductCreate_StockSumInvariant(t *testing.T) {
	svc := services.NewProductService(newFakeProductRepo(), nil)

	in := validVariantInput()
	in.Stock = 10 // variants sum to 12

	_, err := svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, services.ErrStockSumMismatch)
}

func TestProductCreate_VariantProductNeedsVariants(t *testing.T) {
	svc := services.NewProductService(newFakeProductRepo(), nil)

	in := validVariantInput()
	in.Variants = nil
	in.Stock = 0

	_, err := svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, services.ErrVariantRequired)
}

func TestProductCreate_NormalizesColorMediaKeys(t *testing.T) {
	svc := services.NewProductService(newFakeProductRepo(), nil)

	p, err := svc.Create(context.Background(), validVariantInput())
	require.NoError(t, err)

	assert.Contains(t, p.ColorMedia, "black")
	assert.NotContains(t, p.ColorMedia, "Black")
}

func TestProductCreate_GeneratesSlugAndVariantIDs(t *testing.T) {
	svc := services.NewProductService(newFakeProductRepo(), nil)

	p, err := svc.Create(context.Background(), validVariantInput())
	require.NoError(t, err)

	assert.Equal(t, "power-hoodie", p.Slug)
	for _, v := range p.Variants {
		assert.NotEmpty(t, v.VariantID)
	}
}

func TestProductCreate_SlugCollisionGetsSuffix(t *testing.T) {
	repo := newFakeProductRepo(&models.Product{
		Name: "Power Hoodie", Slug: "power-hoodie", Status: models.ProductPublished,
	})
	svc := services.NewProductService(repo, nil)

	p, err := svc.Create(context.Background(), validVariantInput())
	require.NoError(t, err)
	assert.Equal(t, "power-hoodie-2", p.Slug)
}

func TestProductSetStatus_UnpublishDispatchesCartPrune(t *testing.T) {
	p := singleProduct(10)
	repo := newFakeProductRepo(p)

	var pruned []string
	svc := services.NewProductService(repo, func(productID string) {
		pruned = append(pruned, productID)
	})

	require.NoError(t, svc.SetStatus(context.Background(), p.ID, models.ProductDraft))
	require.Len(t, pruned, 1)
	assert.Equal(t, p.ID.Hex(), pruned[0])

	// Publishing again must not prune.
	require.NoError(t, svc.SetStatus(context.Background(), p.ID, models.ProductPublished))
	assert.Len(t, pruned, 1)
}
