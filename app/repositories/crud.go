package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// crud is the shared mongo CRUD base the CMS repositories embed. The
// type parameter is the document model; documents are decoded by value
// and returned by pointer.
type crud[T any] struct {
	col *mongo.Collection
}

func (c *crud[T]) insert(ctx context.Context, doc *T) (primitive.ObjectID, error) {
	res, err := c.col.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, translate(err)
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid, nil
}

func (c *crud[T]) findByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return c.findOne(ctx, bson.M{"_id": id})
}

func (c *crud[T]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	if err := c.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	return &doc, nil
}

func (c *crud[T]) list(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	cur, err := c.col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, translate(err)
	}
	defer cur.Close(ctx)

	var out []T
	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (c *crud[T]) updateByID(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	res, err := c.col.UpdateByID(ctx, id, bson.M{"$set": update})
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *crud[T]) deleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := c.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *crud[T]) exists(ctx context.Context, filter bson.M) (bool, error) {
	n, err := c.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, translate(err)
	}
	return n > 0, nil
}
