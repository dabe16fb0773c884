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

// BlogRepository persists blogs, blog categories, and authors.
type BlogRepository interface {
	CreateBlog(ctx context.Context, b *models.Blog) error
	UpdateBlog(ctx context.Context, id primitive.ObjectID, update bson.M) error
	DeleteBlog(ctx context.Context, id primitive.ObjectID) error
	FindBlogBySlug(ctx context.Context, slug string) (*models.Blog, error)
	BlogSlugExists(ctx context.Context, slug string) (bool, error)
	ListBlogs(ctx context.Context, publishedOnly bool, category primitive.ObjectID) ([]models.Blog, error)

	CreateCategory(ctx context.Context, c *models.BlogCategory) error
	UpdateCategory(ctx context.Context, id primitive.ObjectID, update bson.M) error
	DeleteCategory(ctx context.Context, id primitive.ObjectID) error
	CategorySlugExists(ctx context.Context, slug string) (bool, error)
	ListCategories(ctx context.Context) ([]models.BlogCategory, error)

	CreateAuthor(ctx context.Context, a *models.Author) error
	UpdateAuthor(ctx context.Context, id primitive.ObjectID, update bson.M) error
	DeleteAuthor(ctx context.Context, id primitive.ObjectID) error
	ListAuthors(ctx context.Context) ([]models.Author, error)
}

type blogRepo struct {
	blogs      crud[models.Blog]
	categories crud[models.BlogCategory]
	authors    crud[models.Author]
}

func NewBlogRepository(db *mongo.Database) BlogRepository {
	return &blogRepo{
		blogs:      crud[models.Blog]{col: db.Collection("blogs")},
		categories: crud[models.BlogCategory]{col: db.Collection("blog_categories")},
		authors:    crud[models.Author]{col: db.Collection("authors")},
	}
}

func (r *blogRepo) CreateBlog(ctx context.Context, b *models.Blog) error {
	now := time.Now()
	b.CreatedAt, b.UpdatedAt = now, now
	id, err := r.blogs.insert(ctx, b)
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

func (r *blogRepo) UpdateBlog(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	update["updatedAt"] = time.Now()
	return r.blogs.updateByID(ctx, id, update)
}

func (r *blogRepo) DeleteBlog(ctx context.Context, id primitive.ObjectID) error {
	return r.blogs.deleteByID(ctx, id)
}

func (r *blogRepo) FindBlogBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	return r.blogs.findOne(ctx, bson.M{"slug": slug})
}

func (r *blogRepo) BlogSlugExists(ctx context.Context, slug string) (bool, error) {
	return r.blogs.exists(ctx, bson.M{"slug": slug})
}

func (r *blogRepo) ListBlogs(ctx context.Context, publishedOnly bool, category primitive.ObjectID) ([]models.Blog, error) {
	filter := bson.M{}
	if publishedOnly {
		filter["published"] = true
	}
	if !category.IsZero() {
		filter["category"] = category
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.blogs.list(ctx, filter, opts)
}

func (r *blogRepo) CreateCategory(ctx context.Context, c *models.BlogCategory) error {
	now := time.Now()
	c.CreatedAt, c.UpdatedAt = now, now
	id, err := r.categories.insert(ctx, c)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (r *blogRepo) UpdateCategory(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	update["updatedAt"] = time.Now()
	return r.categories.updateByID(ctx, id, update)
}

func (r *blogRepo) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	return r.categories.deleteByID(ctx, id)
}

func (r *blogRepo) CategorySlugExists(ctx context.Context, slug string) (bool, error) {
	return r.categories.exists(ctx, bson.M{"slug": slug})
}

func (r *blogRepo) ListCategories(ctx context.Context) ([]models.BlogCategory, error) {
	return r.categories.list(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

func (r *blogRepo) CreateAuthor(ctx context.Context, a *models.Author) error {
	now := time.Now()
	a.CreatedAt, a.UpdatedAt = now, now
	id, err := r.authors.insert(ctx, a)
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

func (r *blogRepo) UpdateAuthor(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	update["updatedAt"] = time.Now()
	return r.authors.updateByID(ctx, id, update)
}

func (r *blogRepo) DeleteAuthor(ctx context.Context, id primitive.ObjectID) error {
	return r.authors.deleteByID(ctx, id)
}

func (r *blogRepo) ListAuthors(ctx context.Context) ([]models.Author, error) {
	return r.authors.list(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}
