package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog is a CMS article.
type Blog struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Slug            string             `bson:"slug" json:"slug"`
	Excerpt         string             `bson:"excerpt,omitempty" json:"excerpt,omitempty"`
	Content         string             `bson:"content" json:"content"`
	CoverImageURL   string             `bson:"coverImageUrl,omitempty" json:"coverImageUrl,omitempty"`
	Category        primitive.ObjectID `bson:"category,omitempty" json:"category,omitempty"`
	Author          primitive.ObjectID `bson:"author,omitempty" json:"author,omitempty"`
	Published       bool               `bson:"published" json:"published"`
	MetaTitle       string             `bson:"metaTitle,omitempty" json:"metaTitle,omitempty"`
	MetaDescription string             `bson:"metaDescription,omitempty" json:"metaDescription,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// BlogCategory groups blog articles.
type BlogCategory struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Author writes blog articles.
type Author struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Bio       string             `bson:"bio,omitempty" json:"bio,omitempty"`
	AvatarURL string             `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
