package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/repwear/app/models"
	"github.com/shashiranjanraj/repwear/app/repositories"
	"github.com/shashiranjanraj/repwear/pkg/collection"
)

// WishlistLine is a wishlist entry joined with its product.
type WishlistLine struct {
	Entry   models.WishlistEntry `json:"entry"`
	Product *models.Product      `json:"product,omitempty"`
}

// WishlistService owns wishlist business rules.
type WishlistService struct {
	wishlists repositories.WishlistRepository
	products  repositories.ProductRepository
}

func NewWishlistService(wishlists repositories.WishlistRepository, products repositories.ProductRepository) *WishlistService {
	return &WishlistService{wishlists: wishlists, products: products}
}

// Add saves a product to the wishlist. Adding a product twice is a
// no-op, not an error.
func (s *WishlistService) Add(ctx context.Context, userID primitive.ObjectID, productID string) error {
	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return ErrNotFound
	}

	if _, err := s.products.FindByID(ctx, pid); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.wishlists.AddProduct(ctx, userID, pid)
}

func (s *WishlistService) Remove(ctx context.Context, userID primitive.ObjectID, productID string) error {
	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return ErrNotFound
	}
	return s.wishlists.RemoveProduct(ctx, userID, pid)
}

// List returns the wishlist joined with product documents. Entries
// whose product has been deleted are skipped.
func (s *WishlistService) List(ctx context.Context, userID primitive.ObjectID) ([]WishlistLine, error) {
	w, err := s.wishlists.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(w.Products) == 0 {
		return []WishlistLine{}, nil
	}

	ids := collection.Map(w.Products, func(e models.WishlistEntry) primitive.ObjectID {
		return e.ProductID
	})

	products, err := s.products.FindManyByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	lines := make([]WishlistLine, 0, len(w.Products))
	for _, e := range w.Products {
		p, ok := byID[e.ProductID]
		if !ok {
			continue
		}
		lines = append(lines, WishlistLine{Entry: e, Product: p})
	}
	return lines, nil
}
