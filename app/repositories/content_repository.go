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

// ContentRepository persists the remaining CMS collections: trainers,
// gym classes, themes, hero slides, settings, newsletter subscriptions,
// and contact messages.
type ContentRepository interface {
	CreateTrainer(ctx context.Context, t *models.Trainer) error
	UpdateTrainer(ctx context.Context, id primitive.ObjectID, update bson.M) error
	DeleteTrainer(ctx context.Context, id primitive.ObjectID) error
	TrainerSlugExists(ctx context.Context, slug string) (bool, error)
	FindTrainerBySlug(ctx context.Context, slug string) (*models.Trainer, error)
	ListTrainers(ctx context.Context) ([]models.Trainer, error)

	CreateGymClass(ctx context.Context, g *models.GymClass) error
	UpdateGymClass(ctx context.Context, id primitive.ObjectID, update bson.M) error
	DeleteGymClass(ctx context.Context, id primitive.ObjectID) error
	GymClassSlugExists(ctx context.Context, slug string) (bool, error)
	FindGymClassBySlug(ctx context.Context, slug string) (*models.GymClass, error)
	ListGymClasses(ctx context.Context) ([]models.GymClass, error)

	CreateTheme(ctx context.Context, t *models.Theme) error
	UpdateTheme(ctx context.Context, id primitive.ObjectID, update bson.M) error
	DeleteTheme(ctx context.Context, id primitive.ObjectID) error
	ListThemes(ctx context.Context) ([]models.Theme, error)
	// ActivateTheme marks one theme active and deactivates all others.
	ActivateTheme(ctx context.Context, id primitive.ObjectID) error
	ActiveTheme(ctx context.Context) (*models.Theme, error)

	CreateHeroSlide(ctx context.Context, h *models.HeroSlide) error
	UpdateHeroSlide(ctx context.Context, id primitive.ObjectID, update bson.M) error
	DeleteHeroSlide(ctx context.Context, id primitive.ObjectID) error
	ListHeroSlides(ctx context.Context) ([]models.HeroSlide, error)
	MaxHeroSlideOrder(ctx context.Context) (int, error)

	// GetSettings returns the singleton settings document, inserting a
	// default row on first access.
	GetSettings(ctx context.Context) (*models.Settings, error)
	UpdateSettings(ctx context.Context, update bson.M) (*models.Settings, error)

	Subscribe(ctx context.Context, n *models.Newsletter) error
	ListSubscribers(ctx context.Context) ([]models.Newsletter, error)

	CreateContact(ctx context.Context, c *models.Contact) error
	ListContacts(ctx context.Context) ([]models.Contact, error)
}

type contentRepo struct {
	trainers    crud[models.Trainer]
	classes     crud[models.GymClass]
	themes      crud[models.Theme]
	slides      crud[models.HeroSlide]
	settings    *mongo.Collection
	newsletters crud[models.Newsletter]
	contacts    crud[models.Contact]
}

func NewContentRepository(db *mongo.Database) ContentRepository {
	return &contentRepo{
		trainers:    crud[models.Trainer]{col: db.Collection("trainers")},
		classes:     crud[models.GymClass]{col: db.Collection("gym_classes")},
		themes:      crud[models.Theme]{col: db.Collection("themes")},
		slides:      crud[models.HeroSlide]{col: db.Collection("hero_slides")},
		settings:    db.Collection("settings"),
		newsletters: crud[models.Newsletter]{col: db.Collection("newsletters")},
		contacts:    crud[models.Contact]{col: db.Collection("contacts")},
	}
}

func (r *contentRepo) CreateTrainer(ctx context.Context, t *models.Trainer) error {
	now := time.Now()
	t.CreatedAt, t.UpdatedAt = now, now
	id, err := r.trainers.insert(ctx, t)
	if err != nil {
		return err
	}
	t.ID = id
	return nil
}

func (r *contentRepo) UpdateTrainer(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	update["updatedAt"] = time.Now()
	return r.trainers.updateByID(ctx, id, update)
}

func (r *contentRepo) DeleteTrainer(ctx context.Context, id primitive.ObjectID) error {
	return r.trainers.deleteByID(ctx, id)
}

func (r *contentRepo) TrainerSlugExists(ctx context.Context, slug string) (bool, error) {
	return r.trainers.exists(ctx, bson.M{"slug": slug})
}

func (r *contentRepo) FindTrainerBySlug(ctx context.Context, slug string) (*models.Trainer, error) {
	return r.trainers.findOne(ctx, bson.M{"slug": slug})
}

func (r *contentRepo) ListTrainers(ctx context.Context) ([]models.Trainer, error) {
	return r.trainers.list(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

func (r *contentRepo) CreateGymClass(ctx context.Context, g *models.GymClass) error {
	now := time.Now()
	g.CreatedAt, g.UpdatedAt = now, now
	id, err := r.classes.insert(ctx, g)
	if err != nil {
		return err
	}
	g.ID = id
	return nil
}

func (r *contentRepo) UpdateGymClass(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	update["updatedAt"] = time.Now()
	return r.classes.updateByID(ctx, id, update)
}

func (r *contentRepo) DeleteGymClass(ctx context.Context, id primitive.ObjectID) error {
	return r.classes.deleteByID(ctx, id)
}

func (r *contentRepo) GymClassSlugExists(ctx context.Context, slug string) (bool, error) {
	return r.classes.exists(ctx, bson.M{"slug": slug})
}

func (r *contentRepo) FindGymClassBySlug(ctx context.Context, slug string) (*models.GymClass, error) {
	return r.classes.findOne(ctx, bson.M{"slug": slug})
}

func (r *contentRepo) ListGymClasses(ctx context.Context) ([]models.GymClass, error) {
	return r.classes.list(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

func (r *contentRepo) CreateTheme(ctx context.Context, t *models.Theme) error {
	now := time.Now()
	t.CreatedAt, t.UpdatedAt = now, now
	id, err := r.themes.insert(ctx, t)
	if err != nil {
		return err
	}
	t.ID = id
	return nil
}

func (r *contentRepo) UpdateTheme(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	update["updatedAt"] = time.Now()
	return r.themes.updateByID(ctx, id, update)
}

func (r *contentRepo) DeleteTheme(ctx context.Context, id primitive.ObjectID) error {
	return r.themes.deleteByID(ctx, id)
}

func (r *contentRepo) ListThemes(ctx context.Context) ([]models.Theme, error) {
	return r.themes.list(ctx, bson.M{})
}

func (r *contentRepo) ActivateTheme(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	_, err := r.themes.col.UpdateMany(ctx,
		bson.M{"active": true},
		bson.M{"$set": bson.M{"active": false, "updatedAt": now}},
	)
	if err != nil {
		return translate(err)
	}
	return r.themes.updateByID(ctx, id, bson.M{"active": true, "updatedAt": now})
}

func (r *contentRepo) ActiveTheme(ctx context.Context) (*models.Theme, error) {
	return r.themes.findOne(ctx, bson.M{"active": true})
}

func (r *contentRepo) CreateHeroSlide(ctx context.Context, h *models.HeroSlide) error {
	now := time.Now()
	h.CreatedAt, h.UpdatedAt = now, now
	id, err := r.slides.insert(ctx, h)
	if err != nil {
		return err
	}
	h.ID = id
	return nil
}

func (r *contentRepo) UpdateHeroSlide(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	update["updatedAt"] = time.Now()
	return r.slides.updateByID(ctx, id, update)
}

func (r *contentRepo) DeleteHeroSlide(ctx context.Context, id primitive.ObjectID) error {
	return r.slides.deleteByID(ctx, id)
}

func (r *contentRepo) ListHeroSlides(ctx context.Context) ([]models.HeroSlide, error) {
	return r.slides.list(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
}

func (r *contentRepo) MaxHeroSlideOrder(ctx context.Context) (int, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "order", Value: -1}})
	var h models.HeroSlide
	err := r.slides.col.FindOne(ctx, bson.M{}, opts).Decode(&h)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, translate(err)
	}
	return h.Order, nil
}

func (r *contentRepo) GetSettings(ctx context.Context) (*models.Settings, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var s models.Settings
	err := r.settings.FindOneAndUpdate(ctx,
		bson.M{},
		bson.M{"$setOnInsert": bson.M{"siteName": "RepWear", "updatedAt": time.Now()}},
		opts,
	).Decode(&s)
	if err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *contentRepo) UpdateSettings(ctx context.Context, update bson.M) (*models.Settings, error) {
	update["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var s models.Settings
	err := r.settings.FindOneAndUpdate(ctx, bson.M{}, bson.M{"$set": update}, opts).Decode(&s)
	if err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *contentRepo) Subscribe(ctx context.Context, n *models.Newsletter) error {
	n.CreatedAt = time.Now()
	id, err := r.newsletters.insert(ctx, n)
	if err != nil {
		return err
	}
	n.ID = id
	return nil
}

func (r *contentRepo) ListSubscribers(ctx context.Context) ([]models.Newsletter, error) {
	return r.newsletters.list(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *contentRepo) CreateContact(ctx context.Context, c *models.Contact) error {
	c.CreatedAt = time.Now()
	id, err := r.contacts.insert(ctx, c)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (r *contentRepo) ListContacts(ctx context.Context) ([]models.Contact, error) {
	return r.contacts.list(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}
