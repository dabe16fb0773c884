package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/repwear/app/models"
)

// TopProduct is one row of the best-sellers aggregation.
type TopProduct struct {
	ProductID string  `bson:"_id" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	Quantity  int64   `bson:"quantity" json:"quantity"`
	Revenue   float64 `bson:"revenue" json:"revenue"`
}

// StatusCount is one row of the orders-by-status aggregation.
type StatusCount struct {
	Status string `bson:"_id" json:"status"`
	Count  int64  `bson:"count" json:"count"`
}

// CustomerSplit reports new vs returning customers over a window.
type CustomerSplit struct {
	New       int64 `json:"new"`
	Returning int64 `json:"returning"`
}

// DashboardRepository runs the admin dashboard aggregations.
type DashboardRepository interface {
	RevenueSince(ctx context.Context, since time.Time) (float64, error)
	OrdersByStatus(ctx context.Context, since time.Time) ([]StatusCount, error)
	TopProducts(ctx context.Context, since time.Time, limit int) ([]TopProduct, error)
	CustomerSplit(ctx context.Context, since time.Time) (CustomerSplit, error)
}

type dashboardRepo struct {
	orders *mongo.Collection
}

func NewDashboardRepository(db *mongo.Database) DashboardRepository {
	return &dashboardRepo{orders: db.Collection("orders")}
}

// paidFilter matches orders whose payment actually completed. Revenue
// and best-seller numbers only count paid orders.
func paidFilter(since time.Time) bson.M {
	return bson.M{
		"paymentStatus": models.PaymentCompleted,
		"createdAt":     bson.M{"$gte": since},
	}
}

func (r *dashboardRepo) RevenueSince(ctx context.Context, since time.Time) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: paidFilter(since)}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$totalAmount"},
		}}},
	}

	cur, err := r.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, translate(err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, translate(err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

func (r *dashboardRepo) OrdersByStatus(ctx context.Context, since time.Time) ([]StatusCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"createdAt": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$orderStatus",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}

	cur, err := r.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, translate(err)
	}
	defer cur.Close(ctx)

	var out []StatusCount
	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *dashboardRepo) TopProducts(ctx context.Context, since time.Time, limit int) ([]TopProduct, error) {
	if limit <= 0 {
		limit = 10
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: paidFilter(since)}},
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$group", Value: bson.M{
			"_id":      "$items.productId",
			"name":     bson.M{"$first": "$items.name"},
			"quantity": bson.M{"$sum": "$items.quantity"},
			"revenue": bson.M{"$sum": bson.M{
				"$multiply": bson.A{"$items.unitPrice", "$items.quantity"},
			}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "quantity", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cur, err := r.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, translate(err)
	}
	defer cur.Close(ctx)

	var out []TopProduct
	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// CustomerSplit groups paid orders per user and splits users by whether
// their first-ever order falls inside the window.
func (r *dashboardRepo) CustomerSplit(ctx context.Context, since time.Time) (CustomerSplit, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"paymentStatus": models.PaymentCompleted}}},
		{{Key: "$group", Value: bson.M{
			"_id":        "$userId",
			"firstOrder": bson.M{"$min": "$createdAt"},
			"lastOrder":  bson.M{"$max": "$createdAt"},
		}}},
		{{Key: "$match", Value: bson.M{"lastOrder": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id": nil,
			"new": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$gte": bson.A{"$firstOrder", since}}, 1, 0,
			}}},
			"returning": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$lt": bson.A{"$firstOrder", since}}, 1, 0,
			}}},
		}}},
	}

	cur, err := r.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return CustomerSplit{}, translate(err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		New       int64 `bson:"new"`
		Returning int64 `bson:"returning"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return CustomerSplit{}, translate(err)
	}
	if len(rows) == 0 {
		return CustomerSplit{}, nil
	}
	return CustomerSplit{New: rows[0].New, Returning: rows[0].Returning}, nil
}
