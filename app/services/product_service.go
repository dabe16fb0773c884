package services

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/repwear/app/models"
	"github.com/shashiranjanraj/repwear/app/repositories"
	"github.com/shashiranjanraj/repwear/pkg/logger"
	"github.com/shashiranjanraj/repwear/pkg/slug"
)

// VariantInput is one variant row of a product payload.
type VariantInput struct {
	VariantID       string  `json:"variantId"`
	Color           string  `json:"color" validate:"required"`
	Size            string  `json:"size" validate:"required"`
	SKU             string  `json:"sku" validate:"required"`
	Price           float64 `json:"price" validate:"required,gte=0"`
	DiscountedPrice float64 `json:"discountedPrice" validate:"nullable,gte=0"`
	Stock           int     `json:"stock" validate:"gte=0"`
}

// ColorMediaInput is the imagery for one color.
type ColorMediaInput struct {
	ThumbnailURL string   `json:"thumbnailUrl" validate:"nullable,url"`
	BannerURLs   []string `json:"bannerUrls"`
}

// ProductInput is the create/update payload for a product.
type ProductInput struct {
	Name            string                     `json:"name" validate:"required,min=2,max=200"`
	Slug            string                     `json:"slug" validate:"nullable,alpha_dash"`
	Description     string                     `json:"description"`
	Category        string                     `json:"category" validate:"nullable,objectid"`
	Price           float64                    `json:"price" validate:"gte=0"`
	DiscountedPrice float64                    `json:"discountedPrice" validate:"nullable,gte=0"`
	Stock           int                        `json:"stock" validate:"gte=0"`
	SKU             string                     `json:"sku"`
	Status          string                     `json:"status" validate:"required,in=published,draft,out_of_stock"`
	ProductType     string                     `json:"productType" validate:"required,in=single,variant"`
	Variants        []VariantInput             `json:"variants"`
	ColorMedia      map[string]ColorMediaInput `json:"colorMedia"`
	MetaTitle       string                     `json:"metaTitle"`
	MetaDescription string                     `json:"metaDescription"`
}

// ProductService owns catalog business rules.
type ProductService struct {
	products repositories.ProductRepository
	dispatch func(productID string) // enqueues the cart-prune job
}

// NewProductService builds the catalog service. dispatchPrune is called
// with a product id whenever that product is unpublished; pass nil to
// disable pruning (tests).
func NewProductService(products repositories.ProductRepository, dispatchPrune func(productID string)) *ProductService {
	return &ProductService{products: products, dispatch: dispatchPrune}
}

// Create inserts a new product. Variant products must declare at least
// one variant and their top-level stock must equal the sum of variant
// stocks; violations reject the creation.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	p, err := s.fromInput(in)
	if err != nil {
		return nil, err
	}

	if p.ProductType == models.ProductTypeVariant {
		if len(p.Variants) == 0 {
			return nil, ErrVariantRequired
		}
		if p.Stock != p.VariantStockSum() {
			return nil, ErrStockSumMismatch
		}
	}

	p.Slug, err = s.uniqueSlug(ctx, firstNonEmpty(in.Slug, in.Name))
	if err != nil {
		return nil, err
	}

	if err := s.products.Create(ctx, p); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateSlug
		}
		return nil, err
	}
	return p, nil
}

// Update applies a full-document update. Unpublishing a published
// product dispatches a cart-prune job so stale cart lines disappear.
func (s *ProductService) Update(ctx context.Context, id primitive.ObjectID, in ProductInput) (*models.Product, error) {
	existing, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	p, err := s.fromInput(in)
	if err != nil {
		return nil, err
	}

	if p.ProductType == models.ProductTypeVariant && len(p.Variants) > 0 && p.Stock != p.VariantStockSum() {
		return nil, ErrStockSumMismatch
	}

	update := bson.M{
		"name":            p.Name,
		"description":     p.Description,
		"price":           p.Price,
		"discountedPrice": p.DiscountedPrice,
		"stock":           p.Stock,
		"sku":             p.SKU,
		"status":          p.Status,
		"productType":     p.ProductType,
		"variants":        p.Variants,
		"colorMedia":      p.ColorMedia,
		"metaTitle":       p.MetaTitle,
		"metaDescription": p.MetaDescription,
	}
	if !p.Category.IsZero() {
		update["category"] = p.Category
	}
	if in.Slug != "" && in.Slug != existing.Slug {
		newSlug, err := s.uniqueSlug(ctx, in.Slug)
		if err != nil {
			return nil, err
		}
		update["slug"] = newSlug
	}

	if err := s.products.Update(ctx, id, update); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if existing.Status == models.ProductPublished && p.Status != models.ProductPublished {
		s.pruneCarts(id)
	}

	return s.products.FindByID(ctx, id)
}

// SetStatus changes just the publication status.
func (s *ProductService) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	existing, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.products.Update(ctx, id, bson.M{"status": status}); err != nil {
		return err
	}

	if existing.Status == models.ProductPublished && status != models.ProductPublished {
		s.pruneCarts(id)
	}
	return nil
}

func (s *ProductService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.pruneCarts(id)
	return nil
}

func (s *ProductService) GetBySlug(ctx context.Context, slugStr string) (*models.Product, error) {
	p, err := s.products.FindBySlug(ctx, slugStr)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *ProductService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *ProductService) List(ctx context.Context, f repositories.ProductFilter) ([]models.Product, int64, error) {
	return s.products.List(ctx, f)
}

func (s *ProductService) pruneCarts(id primitive.ObjectID) {
	if s.dispatch == nil {
		return
	}
	s.dispatch(id.Hex())
	logger.Info("product: cart prune dispatched", "product_id", id.Hex())
}

// fromInput converts a payload to a model, lower-casing every
// colorMedia key so reads are a single map access.
func (s *ProductService) fromInput(in ProductInput) (*models.Product, error) {
	p := &models.Product{
		Name:            strings.TrimSpace(in.Name),
		Description:     in.Description,
		Price:           in.Price,
		DiscountedPrice: in.DiscountedPrice,
		Stock:           in.Stock,
		SKU:             in.SKU,
		Status:          in.Status,
		ProductType:     in.ProductType,
		MetaTitle:       in.MetaTitle,
		MetaDescription: in.MetaDescription,
	}

	if in.Category != "" {
		cid, err := primitive.ObjectIDFromHex(in.Category)
		if err != nil {
			return nil, ErrNotFound
		}
		p.Category = cid
	}

	for _, v := range in.Variants {
		vid := v.VariantID
		if vid == "" {
			vid = primitive.NewObjectID().Hex()
		}
		p.Variants = append(p.Variants, models.Variant{
			VariantID:       vid,
			Color:           v.Color,
			Size:            v.Size,
			SKU:             v.SKU,
			Price:           v.Price,
			DiscountedPrice: v.DiscountedPrice,
			Stock:           v.Stock,
		})
	}

	if len(in.ColorMedia) > 0 {
		p.ColorMedia = make(map[string]models.ColorMedia, len(in.ColorMedia))
		for color, media := range in.ColorMedia {
			p.ColorMedia[strings.ToLower(color)] = models.ColorMedia{
				ThumbnailURL: media.ThumbnailURL,
				BannerURLs:   media.BannerURLs,
			}
		}
	}

	return p, nil
}

func (s *ProductService) uniqueSlug(ctx context.Context, source string) (string, error) {
	var checkErr error
	result := slug.MakeUnique(source, func(candidate string) bool {
		exists, err := s.products.SlugExists(ctx, candidate)
		if err != nil {
			checkErr = err
			return false
		}
		return exists
	})
	if checkErr != nil {
		return "", checkErr
	}
	return result, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
