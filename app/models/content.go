package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trainer is a gym trainer profile.
type Trainer struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Slug       string             `bson:"slug" json:"slug"`
	Speciality string             `bson:"speciality,omitempty" json:"speciality,omitempty"`
	Bio        string             `bson:"bio,omitempty" json:"bio,omitempty"`
	PhotoURL   string             `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	Socials    map[string]string  `bson:"socials,omitempty" json:"socials,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// GymClass is a scheduled class offering.
type GymClass struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Trainer     primitive.ObjectID `bson:"trainer,omitempty" json:"trainer,omitempty"`
	Schedule    string             `bson:"schedule,omitempty" json:"schedule,omitempty"`
	ImageURL    string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Theme is a storefront color/asset theme. At most one theme is active.
type Theme struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Colors    map[string]string  `bson:"colors,omitempty" json:"colors,omitempty"`
	Active    bool               `bson:"active" json:"active"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HeroSlide is one slide of the landing carousel, ordered by Order.
type HeroSlide struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Subtitle  string             `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	ImageURL  string             `bson:"imageUrl" json:"imageUrl"`
	LinkURL   string             `bson:"linkUrl,omitempty" json:"linkUrl,omitempty"`
	Order     int                `bson:"order" json:"order"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Settings is the singleton site settings document.
type Settings struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SiteName     string             `bson:"siteName" json:"siteName"`
	LogoURL      string             `bson:"logoUrl,omitempty" json:"logoUrl,omitempty"`
	SupportEmail string             `bson:"supportEmail,omitempty" json:"supportEmail,omitempty"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address      string             `bson:"address,omitempty" json:"address,omitempty"`
	Socials      map[string]string  `bson:"socials,omitempty" json:"socials,omitempty"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Newsletter is one subscription (unique email).
type Newsletter struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Contact is a contact-form submission.
type Contact struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Subject   string             `bson:"subject,omitempty" json:"subject,omitempty"`
	Message   string             `bson:"message" json:"message"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
