package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/repwear/app/services"
)

func TestWishlistAdd_Idempotent(t *testing.T) {
	p := singleProduct(5)
	svc := services.NewWishlistService(newFakeWishlistRepo(), newFakeProductRepo(p))
	userID := primitive.NewObjectID()

	require.NoError(t, svc.Add(context.Background(), userID, p.ID.Hex()))
	require.NoError(t, svc.Add(context.Background(), userID, p.ID.Hex()))

	lines, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestWishlistAdd_UnknownProduct(t *testing.T) {
	svc := services.NewWishlistService(newFakeWishlistRepo(), newFakeProductRepo())

	err := svc.Add(context.Background(), primitive.NewObjectID(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestWishlistRemove(t *testing.T) {
	p := singleProduct(5)
	svc := services.NewWishlistService(newFakeWishlistRepo(), newFakeProductRepo(p))
	userID := primitive.NewObjectID()

	require.NoError(t, svc.Add(context.Background(), userID, p.ID.Hex()))
	require.NoError(t, svc.Remove(context.Background(), userID, p.ID.Hex()))

	lines, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}
