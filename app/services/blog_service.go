package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/repwear/app/models"
	"github.com/shashiranjanraj/repwear/app/repositories"
	"github.com/shashiranjanraj/repwear/pkg/slug"
)

// BlogInput is the create/update payload for a blog article.
type BlogInput struct {
	Title           string `json:"title" validate:"required,min=2,max=200"`
	Slug            string `json:"slug" validate:"nullable,alpha_dash"`
	Excerpt         string `json:"excerpt"`
	Content         string `json:"content" validate:"required"`
	CoverImageURL   string `json:"coverImageUrl" validate:"nullable,url"`
	Category        string `json:"category" validate:"nullable,objectid"`
	Author          string `json:"author" validate:"nullable,objectid"`
	Published       bool   `json:"published"`
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
}

// BlogCategoryInput is the payload for a blog category.
type BlogCategoryInput struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description"`
}

// AuthorInput is the payload for an author profile.
type AuthorInput struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatarUrl" validate:"nullable,url"`
}

// BlogService owns the blog side of the CMS.
type BlogService struct {
	repo repositories.BlogRepository
}

func NewBlogService(repo repositories.BlogRepository) *BlogService {
	return &BlogService{repo: repo}
}

func (s *BlogService) CreateBlog(ctx context.Context, in BlogInput) (*models.Blog, error) {
	b := &models.Blog{
		Title:           in.Title,
		Excerpt:         in.Excerpt,
		Content:         in.Content,
		CoverImageURL:   in.CoverImageURL,
		Published:       in.Published,
		MetaTitle:       in.MetaTitle,
		MetaDescription: in.MetaDescription,
	}

	var err error
	if b.Category, err = optionalID(in.Category); err != nil {
		return nil, ErrNotFound
	}
	if b.Author, err = optionalID(in.Author); err != nil {
		return nil, ErrNotFound
	}

	b.Slug, err = uniqueSlugFor(firstNonEmpty(in.Slug, in.Title), func(c string) (bool, error) {
		return s.repo.BlogSlugExists(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateBlog(ctx, b); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateSlug
		}
		return nil, err
	}
	return b, nil
}

func (s *BlogService) UpdateBlog(ctx context.Context, id primitive.ObjectID, in BlogInput) error {
	update := bson.M{
		"title":           in.Title,
		"excerpt":         in.Excerpt,
		"content":         in.Content,
		"coverImageUrl":   in.CoverImageURL,
		"published":       in.Published,
		"metaTitle":       in.MetaTitle,
		"metaDescription": in.MetaDescription,
	}
	if cid, err := optionalID(in.Category); err == nil && !cid.IsZero() {
		update["category"] = cid
	}
	if aid, err := optionalID(in.Author); err == nil && !aid.IsZero() {
		update["author"] = aid
	}
	if in.Slug != "" {
		update["slug"] = slug.Make(in.Slug)
	}

	if err := s.repo.UpdateBlog(ctx, id, update); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		if errors.Is(err, repositories.ErrDuplicate) {
			return ErrDuplicateSlug
		}
		return err
	}
	return nil
}

func (s *BlogService) DeleteBlog(ctx context.Context, id primitive.ObjectID) error {
	if err := s.repo.DeleteBlog(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *BlogService) GetBlogBySlug(ctx context.Context, slugStr string) (*models.Blog, error) {
	b, err := s.repo.FindBlogBySlug(ctx, slugStr)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// ListBlogs returns articles; publishedOnly is true for the public
// storefront, false for admin.
func (s *BlogService) ListBlogs(ctx context.Context, publishedOnly bool, category string) ([]models.Blog, error) {
	cid, err := optionalID(category)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.repo.ListBlogs(ctx, publishedOnly, cid)
}

func (s *BlogService) CreateCategory(ctx context.Context, in BlogCategoryInput) (*models.BlogCategory, error) {
	c := &models.BlogCategory{Name: in.Name, Description: in.Description}

	var err error
	c.Slug, err = uniqueSlugFor(in.Name, func(cand string) (bool, error) {
		return s.repo.CategorySlugExists(ctx, cand)
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateCategory(ctx, c); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateSlug
		}
		return nil, err
	}
	return c, nil
}

func (s *BlogService) UpdateCategory(ctx context.Context, id primitive.ObjectID, in BlogCategoryInput) error {
	err := s.repo.UpdateCategory(ctx, id, bson.M{
		"name":        in.Name,
		"description": in.Description,
	})
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *BlogService) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	err := s.repo.DeleteCategory(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *BlogService) ListCategories(ctx context.Context) ([]models.BlogCategory, error) {
	return s.repo.ListCategories(ctx)
}

func (s *BlogService) CreateAuthor(ctx context.Context, in AuthorInput) (*models.Author, error) {
	a := &models.Author{Name: in.Name, Bio: in.Bio, AvatarURL: in.AvatarURL}
	if err := s.repo.CreateAuthor(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *BlogService) UpdateAuthor(ctx context.Context, id primitive.ObjectID, in AuthorInput) error {
	err := s.repo.UpdateAuthor(ctx, id, bson.M{
		"name":      in.Name,
		"bio":       in.Bio,
		"avatarUrl": in.AvatarURL,
	})
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *BlogService) DeleteAuthor(ctx context.Context, id primitive.ObjectID) error {
	err := s.repo.DeleteAuthor(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *BlogService) ListAuthors(ctx context.Context) ([]models.Author, error) {
	return s.repo.ListAuthors(ctx)
}

func optionalID(hex string) (primitive.ObjectID, error) {
	if hex == "" {
		return primitive.NilObjectID, nil
	}
	return primitive.ObjectIDFromHex(hex)
}

// uniqueSlugFor wraps slug.MakeUnique over an error-returning existence
// check.
func uniqueSlugFor(source string, exists func(string) (bool, error)) (string, error) {
	var checkErr error
	result := slug.MakeUnique(source, func(candidate string) bool {
		ok, err := exists(candidate)
		if err != nil {
			checkErr = err
			return false
		}
		return ok
	})
	if checkErr != nil {
		return "", checkErr
	}
	return result, nil
}
