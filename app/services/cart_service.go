package services

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/repwear/app/models"
	"github.com/shashiranjanraj/repwear/app/repositories"
	"github.com/shashiranjanraj/repwear/pkg/collection"
)

// AddToCartInput is the payload for adding a line to the cart.
type AddToCartInput struct {
	ProductID string                  `json:"productId" validate:"required,objectid"`
	Quantity  int                     `json:"quantity" validate:"required,gte=1"`
	Variant   *models.VariantSelector `json:"variant"`
}

// UpdateCartItemInput changes the quantity of an existing line.
// Quantity zero or below removes the line.
type UpdateCartItemInput struct {
	ProductID string                  `json:"productId" validate:"required,objectid"`
	Quantity  int                     `json:"quantity"`
	Variant   *models.VariantSelector `json:"variant"`
}

// CartService owns cart business rules.
type CartService struct {
	carts    repositories.CartRepository
	products repositories.ProductRepository
}

func NewCartService(carts repositories.CartRepository, products repositories.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

// Add puts qty of a product (or one of its variants) in the user's
// cart. Existing lines for the same product+variant are merged.
func (s *CartService) Add(ctx context.Context, userID primitive.ObjectID, in AddToCartInput) (*models.Cart, error) {
	pid, err := primitive.ObjectIDFromHex(in.ProductID)
	if err != nil {
		return nil, ErrNotFound
	}

	product, err := s.products.FindByID(ctx, pid)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if product.Status != models.ProductPublished {
		return nil, ErrProductUnavailable
	}

	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	newQty := in.Quantity
	if line := findLine(cart.Items, pid, in.Variant); line != nil {
		newQty += line.Quantity
	}

	if err := checkStock(product, in.Variant, newQty); err != nil {
		return nil, err
	}

	if line := findLine(cart.Items, pid, in.Variant); line != nil {
		line.Quantity = newQty
	} else {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: pid,
			Quantity:  in.Quantity,
			Variant:   in.Variant,
		})
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateItem sets the quantity of an existing line. qty <= 0 removes it.
func (s *CartService) UpdateItem(ctx context.Context, userID primitive.ObjectID, in UpdateCartItemInput) (*models.Cart, error) {
	pid, err := primitive.ObjectIDFromHex(in.ProductID)
	if err != nil {
		return nil, ErrNotFound
	}

	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	line := findLine(cart.Items, pid, in.Variant)
	if line == nil {
		return nil, ErrNotFound
	}

	if in.Quantity <= 0 {
		cart.Items = removeLine(cart.Items, pid, in.Variant)
	} else {
		product, err := s.products.FindByID(ctx, pid)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if err := checkStock(product, in.Variant, in.Quantity); err != nil {
			return nil, err
		}
		line.Quantity = in.Quantity
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Remove deletes a line from the cart.
func (s *CartService) Remove(ctx context.Context, userID primitive.ObjectID, productID string, variant *models.VariantSelector) (*models.Cart, error) {
	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, ErrNotFound
	}

	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.Items = removeLine(cart.Items, pid, variant)
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context, userID primitive.ObjectID) error {
	return s.carts.Clear(ctx, userID)
}

// Get returns the cart joined with products, each product narrowed to
// the line's variant and that variant's color media. Lines whose
// variant no longer exists come back with empty variants/colorMedia
// rather than failing the whole cart.
func (s *CartService) Get(ctx context.Context, userID primitive.ObjectID) ([]models.CartLine, error) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return []models.CartLine{}, nil
	}

	ids := make([]primitive.ObjectID, 0, len(cart.Items))
	seen := make(map[primitive.ObjectID]bool)
	for _, item := range cart.Items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	products, err := s.products.FindManyByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	lines := make([]models.CartLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		line := models.CartLine{Item: item}
		if p, ok := byID[item.ProductID]; ok {
			line.Product = projectVariant(p, item.Variant)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// projectVariant returns a copy of p narrowed to the selected variant:
// exactly one entry in Variants and at most one colorMedia entry, keyed
// by the variant's lower-cased color. Single products pass through
// unchanged.
func projectVariant(p *models.Product, sel *models.VariantSelector) *models.Product {
	out := *p
	if sel == nil || p.ProductType != models.ProductTypeVariant {
		return &out
	}

	v := p.FindVariant(sel.VariantID)
	if v == nil {
		out.Variants = []models.Variant{}
		out.ColorMedia = map[string]models.ColorMedia{}
		return &out
	}

	out.Variants = []models.Variant{*v}
	out.ColorMedia = map[string]models.ColorMedia{}

	key := strings.ToLower(v.Color)
	if media, ok := p.ColorMedia[key]; ok {
		out.ColorMedia[key] = media
		return &out
	}
	// Legacy documents may still carry mixed-case keys.
	for k, media := range p.ColorMedia {
		if strings.EqualFold(k, v.Color) {
			out.ColorMedia[key] = media
			break
		}
	}
	return &out
}

// checkStock validates qty against the variant's stock (variant
// products) or the product's stock (single products).
func checkStock(p *models.Product, sel *models.VariantSelector, qty int) error {
	if p.ProductType == models.ProductTypeVariant {
		if sel == nil {
			return ErrVariantRequired
		}
		v := p.FindVariant(sel.VariantID)
		if v == nil {
			return ErrVariantNotFound
		}
		if v.Stock < qty {
			return ErrInsufficientStock
		}
		return nil
	}
	if p.Stock < qty {
		return ErrInsufficientStock
	}
	return nil
}

// findLine matches by productId + variantId; carts written before
// variant ids were stamped are matched by deep-equal selector.
func findLine(items []models.CartItem, pid primitive.ObjectID, sel *models.VariantSelector) *models.CartItem {
	for i := range items {
		if items[i].ProductID != pid {
			continue
		}
		if selectorsMatch(items[i].Variant, sel) {
			return &items[i]
		}
	}
	return nil
}

func removeLine(items []models.CartItem, pid primitive.ObjectID, sel *models.VariantSelector) []models.CartItem {
	return collection.Filter(items, func(item models.CartItem) bool {
		return item.ProductID != pid || !selectorsMatch(item.Variant, sel)
	})
}

func selectorsMatch(a, b *models.VariantSelector) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.VariantID != "" && b.VariantID != "" {
		return a.VariantID == b.VariantID
	}
	return reflect.DeepEqual(*a, *b)
}
