package services

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/repwear/app/models"
	"github.com/shashiranjanraj/repwear/app/repositories"
)

// TrainerInput is the payload for a trainer profile.
type TrainerInput struct {
	Name       string            `json:"name" validate:"required,min=2,max=100"`
	Speciality string            `json:"speciality"`
	Bio        string            `json:"bio"`
	PhotoURL   string            `json:"photoUrl" validate:"nullable,url"`
	Socials    map[string]string `json:"socials"`
}

// GymClassInput is the payload for a gym class.
type GymClassInput struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description"`
	Trainer     string `json:"trainer" validate:"nullable,objectid"`
	Schedule    string `json:"schedule"`
	ImageURL    string `json:"imageUrl" validate:"nullable,url"`
}

// ThemeInput is the payload for a theme.
type ThemeInput struct {
	Name   string            `json:"name" validate:"required,min=2,max=100"`
	Colors map[string]string `json:"colors"`
}

// HeroSlideInput is the payload for a hero slide. Order zero means
// "append after the current last slide".
type HeroSlideInput struct {
	Title    string `json:"title" validate:"required,max=200"`
	Subtitle string `json:"subtitle"`
	ImageURL string `json:"imageUrl" validate:"required,url"`
	LinkURL  string `json:"linkUrl" validate:"nullable,url"`
	Order    int    `json:"order" validate:"gte=0"`
}

// SettingsInput is the payload for site settings.
type SettingsInput struct {
	SiteName     string            `json:"siteName" validate:"required,max=100"`
	LogoURL      string            `json:"logoUrl" validate:"nullable,url"`
	SupportEmail string            `json:"supportEmail" validate:"nullable,email"`
	Phone        string            `json:"phone"`
	Address      string            `json:"address"`
	Socials      map[string]string `json:"socials"`
}

// SubscribeInput is the newsletter signup payload.
type SubscribeInput struct {
	Email string `json:"email" validate:"required,email"`
}

// ContactInput is the contact form payload.
type ContactInput struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"nullable,max=200"`
	Message string `json:"message" validate:"required,min=5,max=5000"`
}

// ContentService owns the remaining CMS surfaces: trainers, classes,
// themes, hero slides, settings, newsletter, contact form.
type ContentService struct {
	repo      repositories.ContentRepository
	onWelcome func(email string) // newsletter welcome mail dispatch
}

func NewContentService(repo repositories.ContentRepository, onWelcome func(email string)) *ContentService {
	return &ContentService{repo: repo, onWelcome: onWelcome}
}

func (s *ContentService) CreateTrainer(ctx context.Context, in TrainerInput) (*models.Trainer, error) {
	t := &models.Trainer{
		Name:       in.Name,
		Speciality: in.Speciality,
		Bio:        in.Bio,
		PhotoURL:   in.PhotoURL,
		Socials:    in.Socials,
	}

	var err error
	t.Slug, err = uniqueSlugFor(in.Name, func(c string) (bool, error) {
		return s.repo.TrainerSlugExists(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateTrainer(ctx, t); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateSlug
		}
		return nil, err
	}
	return t, nil
}

func (s *ContentService) UpdateTrainer(ctx context.Context, id primitive.ObjectID, in TrainerInput) error {
	err := s.repo.UpdateTrainer(ctx, id, bson.M{
		"name":       in.Name,
		"speciality": in.Speciality,
		"bio":        in.Bio,
		"photoUrl":   in.PhotoURL,
		"socials":    in.Socials,
	})
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *ContentService) DeleteTrainer(ctx context.Context, id primitive.ObjectID) error {
	err := s.repo.DeleteTrainer(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *ContentService) GetTrainerBySlug(ctx context.Context, slugStr string) (*models.Trainer, error) {
	t, err := s.repo.FindTrainerBySlug(ctx, slugStr)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *ContentService) ListTrainers(ctx context.Context) ([]models.Trainer, error) {
	return s.repo.ListTrainers(ctx)
}

func (s *ContentService) CreateGymClass(ctx context.Context, in GymClassInput) (*models.GymClass, error) {
	g := &models.GymClass{
		Name:        in.Name,
		Description: in.Description,
		Schedule:    in.Schedule,
		ImageURL:    in.ImageURL,
	}

	var err error
	if g.Trainer, err = optionalID(in.Trainer); err != nil {
		return nil, ErrNotFound
	}

	g.Slug, err = uniqueSlugFor(in.Name, func(c string) (bool, error) {
		return s.repo.GymClassSlugExists(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateGymClass(ctx, g); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateSlug
		}
		return nil, err
	}
	return g, nil
}

func (s *ContentService) UpdateGymClass(ctx context.Context, id primitive.ObjectID, in GymClassInput) error {
	update := bson.M{
		"name":        in.Name,
		"description": in.Description,
		"schedule":    in.Schedule,
		"imageUrl":    in.ImageURL,
	}
	if tid, err := optionalID(in.Trainer); err == nil && !tid.IsZero() {
		update["trainer"] = tid
	}
	err := s.repo.UpdateGymClass(ctx, id, update)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *ContentService) DeleteGymClass(ctx context.Context, id primitive.ObjectID) error {
	err := s.repo.DeleteGymClass(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *ContentService) GetGymClassBySlug(ctx context.Context, slugStr string) (*models.GymClass, error) {
	g, err := s.repo.FindGymClassBySlug(ctx, slugStr)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

func (s *ContentService) ListGymClasses(ctx context.Context) ([]models.GymClass, error) {
	return s.repo.ListGymClasses(ctx)
}

func (s *ContentService) CreateTheme(ctx context.Context, in ThemeInput) (*models.Theme, error) {
	t := &models.Theme{Name: in.Name, Colors: in.Colors}
	if err := s.repo.CreateTheme(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *ContentService) UpdateTheme(ctx context.Context, id primitive.ObjectID, in ThemeInput) error {
	err := s.repo.UpdateTheme(ctx, id, bson.M{"name": in.Name, "colors": in.Colors})
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *ContentService) DeleteTheme(ctx context.Context, id primitive.ObjectID) error {
	err := s.repo.DeleteTheme(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *ContentService) ListThemes(ctx context.Context) ([]models.Theme, error) {
	return s.repo.ListThemes(ctx)
}

// ActivateTheme makes one theme active; any previously active theme is
// deactivated.
func (s *ContentService) ActivateTheme(ctx context.Context, id primitive.ObjectID) error {
	err := s.repo.ActivateTheme(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *ContentService) ActiveTheme(ctx context.Context) (*models.Theme, error) {
	t, err := s.repo.ActiveTheme(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *ContentService) CreateHeroSlide(ctx context.Context, in HeroSlideInput) (*models.HeroSlide, error) {
	order := in.Order
	if order == 0 {
		max, err := s.repo.MaxHeroSlideOrder(ctx)
		if err != nil {
			return nil, err
		}
		order = max + 1
	}

	h := &models.HeroSlide{
		Title:    in.Title,
		Subtitle: in.Subtitle,
		ImageURL: in.ImageURL,
		LinkURL:  in.LinkURL,
		Order:    order,
	}
	if err := s.repo.CreateHeroSlide(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *ContentService) UpdateHeroSlide(ctx context.Context, id primitive.ObjectID, in HeroSlideInput) error {
	err := s.repo.UpdateHeroSlide(ctx, id, bson.M{
		"title":    in.Title,
		"subtitle": in.Subtitle,
		"imageUrl": in.ImageURL,
		"linkUrl":  in.LinkURL,
		"order":    in.Order,
	})
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *ContentService) DeleteHeroSlide(ctx context.Context, id primitive.ObjectID) error {
	err := s.repo.DeleteHeroSlide(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *ContentService) ListHeroSlides(ctx context.Context) ([]models.HeroSlide, error) {
	return s.repo.ListHeroSlides(ctx)
}

func (s *ContentService) GetSettings(ctx context.Context) (*models.Settings, error) {
	return s.repo.GetSettings(ctx)
}

func (s *ContentService) UpdateSettings(ctx context.Context, in SettingsInput) (*models.Settings, error) {
	return s.repo.UpdateSettings(ctx, bson.M{
		"siteName":     in.SiteName,
		"logoUrl":      in.LogoURL,
		"supportEmail": in.SupportEmail,
		"phone":        in.Phone,
		"address":      in.Address,
		"socials":      in.Socials,
	})
}

// Subscribe registers a newsletter email and queues the welcome mail.
// A duplicate email returns ErrAlreadySubscribed.
func (s *ContentService) Subscribe(ctx context.Context, in SubscribeInput) error {
	n := &models.Newsletter{Email: strings.ToLower(strings.TrimSpace(in.Email))}
	if err := s.repo.Subscribe(ctx, n); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return ErrAlreadySubscribed
		}
		return err
	}
	if s.onWelcome != nil {
		s.onWelcome(n.Email)
	}
	return nil
}

func (s *ContentService) ListSubscribers(ctx context.Context) ([]models.Newsletter, error) {
	return s.repo.ListSubscribers(ctx)
}

func (s *ContentService) CreateContact(ctx context.Context, in ContactInput) (*models.Contact, error) {
	c := &models.Contact{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
	}
	if err := s.repo.CreateContact(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ContentService) ListContacts(ctx context.Context) ([]models.Contact, error) {
	return s.repo.ListContacts(ctx)
}
