package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/repwear/app/models"
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	Status   string
	Category primitive.ObjectID
	Search   string
	Page     int64
	PerPage  int64
}

// ProductRepository is the catalog persistence interface.
type ProductRepository interface {
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, id primitive.ObjectID, update bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, f ProductFilter) ([]models.Product, int64, error)
	FindManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
	DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
	DecrementVariantStock(ctx context.Context, id primitive.ObjectID, variantID string, qty int) error
	IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
	IncrementVariantStock(ctx context.Context, id primitive.ObjectID, variantID string, qty int) error
}

type productRepo struct {
	col *mongo.Collection
}

// NewProductRepository builds the mongo-backed catalog repository.
func NewProductRepository(db *mongo.Database) ProductRepository {
	return &productRepo{col: db.Collection("products")}
}

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return translate(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (r *productRepo) Update(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	update["updatedAt"] = time.Now()
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": update})
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *productRepo) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var p models.Product
	err := r.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&p)
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *productRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"slug": slug}, options.Count().SetLimit(1))
	if err != nil {
		return false, translate(err)
	}
	return n > 0, nil
}

func (r *productRepo) List(ctx context.Context, f ProductFilter) ([]models.Product, int64, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if !f.Category.IsZero() {
		filter["category"] = f.Category
	}
	if f.Search != "" {
		filter["name"] = bson.M{"$regex": f.Search, "$options": "i"}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, translate(err)
	}

	perPage := f.PerPage
	if perPage <= 0 {
		perPage = 20
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * perPage).
		SetLimit(perPage)

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, translate(err)
	}
	defer cur.Close(ctx)

	var out []models.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, translate(err)
	}
	return out, total, nil
}

func (r *productRepo) FindManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, translate(err)
	}
	defer cur.Close(ctx)

	var out []models.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// DecrementStock subtracts qty from a single product's stock only when
// enough stock remains. The filter and $inc run as one atomic update,
// so concurrent checkouts cannot oversell.
func (r *productRepo) DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": qty}},
		bson.M{
			"$inc": bson.M{"stock": -qty},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementStock gives qty back to a single product's stock. Used to
// undo a decrement when order creation fails mid-settlement.
func (r *productRepo) IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"stock": qty},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementVariantStock gives qty back to one variant's stock and the
// top-level mirror.
func (r *productRepo) IncrementVariantStock(ctx context.Context, id primitive.ObjectID, variantID string, qty int) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "variants.variantId": variantID},
		bson.M{
			"$inc": bson.M{"variants.$.stock": qty, "stock": qty},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementVariantStock atomically subtracts qty from one variant's
// stock and mirrors the change on the top-level stock.
func (r *productRepo) DecrementVariantStock(ctx context.Context, id primitive.ObjectID, variantID string, qty int) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{
			"_id": id,
			"variants": bson.M{"$elemMatch": bson.M{
				"variantId": variantID,
				"stock":     bson.M{"$gte": qty},
			}},
		},
		bson.M{
			"$inc": bson.M{"variants.$.stock": -qty, "stock": -qty},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
