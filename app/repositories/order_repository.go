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

// OrderFilter narrows admin order listings.
type OrderFilter struct {
	OrderStatus   string
	PaymentStatus string
	Page          int64
	PerPage       int64
}

// OrderRepository is the order persistence interface.
type OrderRepository interface {
	Create(ctx context.Context, o *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByOrderNumber(ctx context.Context, number string) (*models.Order, error)
	FindBySessionID(ctx context.Context, sessionID string) (*models.Order, error)
	FindByPaymentIntentID(ctx context.Context, intentID string) (*models.Order, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	List(ctx context.Context, f OrderFilter) ([]models.Order, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, update bson.M) error
	// NextSequence atomically increments and returns the named counter.
	NextSequence(ctx context.Context, name string) (int64, error)
}

type orderRepo struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) OrderRepository {
	return &orderRepo{
		col:      db.Collection("orders"),
		counters: db.Collection("counters"),
	}
}

func (r *orderRepo) Create(ctx context.Context, o *models.Order) error {
	now := time.Now()
	o.CreatedAt, o.UpdatedAt = now, now
	res, err := r.col.InsertOne(ctx, o)
	if err != nil {
		return translate(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		o.ID = oid
	}
	return nil
}

func (r *orderRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *orderRepo) FindByOrderNumber(ctx context.Context, number string) (*models.Order, error) {
	return r.findOne(ctx, bson.M{"orderNumber": number})
}

func (r *orderRepo) FindBySessionID(ctx context.Context, sessionID string) (*models.Order, error) {
	return r.findOne(ctx, bson.M{"stripeSessionId": sessionID})
}

func (r *orderRepo) FindByPaymentIntentID(ctx context.Context, intentID string) (*models.Order, error) {
	return r.findOne(ctx, bson.M{"stripePaymentIntentId": intentID})
}

func (r *orderRepo) findOne(ctx context.Context, filter bson.M) (*models.Order, error) {
	var o models.Order
	err := r.col.FindOne(ctx, filter).Decode(&o)
	if err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (r *orderRepo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, translate(err)
	}
	defer cur.Close(ctx)

	var out []models.Order
	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *orderRepo) List(ctx context.Context, f OrderFilter) ([]models.Order, int64, error) {
	filter := bson.M{}
	if f.OrderStatus != "" {
		filter["orderStatus"] = f.OrderStatus
	}
	if f.PaymentStatus != "" {
		filter["paymentStatus"] = f.PaymentStatus
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

	var out []models.Order
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, translate(err)
	}
	return out, total, nil
}

func (r *orderRepo) Update(ctx context.Context, id primitive.ObjectID, update bson.M) error {
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

// NextSequence uses findOneAndUpdate with $inc + upsert so two
// concurrent callers can never observe the same value.
func (r *orderRepo) NextSequence(ctx context.Context, name string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var c models.Counter
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&c)
	if err != nil {
		return 0, translate(err)
	}
	return c.Seq, nil
}
