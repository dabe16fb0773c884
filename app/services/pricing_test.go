package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/repwear/app/models"
)

func TestToCentsRoundsInsteadOfTruncating(t *testing.T) {
	// 19.99 has no exact float64 representation; plain int64 conversion
	// truncates it to 1998 cents.
	assert.Equal(t, int64(1999), toCents(19.99))
	assert.Equal(t, int64(1250), toCents(12.50))
	assert.Equal(t, int64(2999), toCents(29.99))
	assert.Equal(t, int64(100), toCents(1))
	assert.Equal(t, int64(0), toCents(0))
}

func TestLineItemPricing(t *testing.T) {
	variant := models.CartLine{
		Item: models.CartItem{
			Quantity: 1,
			Variant:  &models.VariantSelector{VariantID: "v-1"},
		},
		Product: &models.Product{
			Name:        "Flex Tee",
			ProductType: models.ProductTypeVariant,
			Price:       99.0, // must not be used for variant lines
			Variants: []models.Variant{
				{VariantID: "v-1", Color: "Red", Size: "M", Price: 29.99, DiscountedPrice: 24.99},
			},
		},
	}
	name, price, err := lineItemPricing(variant)
	assert.NoError(t, err)
	assert.Equal(t, "Flex Tee (Red / M)", name)
	assert.InDelta(t, 24.99, price, 0.001)

	single := models.CartLine{
		Item:    models.CartItem{Quantity: 2},
		Product: &models.Product{Name: "Shaker Bottle", ProductType: models.ProductTypeSingle, Price: 12.50},
	}
	name, price, err = lineItemPricing(single)
	assert.NoError(t, err)
	assert.Equal(t, "Shaker Bottle", name)
	assert.InDelta(t, 12.50, price, 0.001)

	gone := models.CartLine{
		Item: models.CartItem{
			Quantity: 1,
			Variant:  &models.VariantSelector{VariantID: "v-removed"},
		},
		Product: &models.Product{
			Name:        "Flex Tee",
			ProductType: models.ProductTypeVariant,
			Variants:    []models.Variant{},
		},
	}
	_, _, err = lineItemPricing(gone)
	assert.ErrorIs(t, err, ErrVariantNotFound)
}
