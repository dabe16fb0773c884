package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/repwear/app/models"
	"github.com/shashiranjanraj/repwear/app/services"
)

func TestOrderNumberFormatAndUniqueness(t *testing.T) {
	svc := services.NewOrderService(newFakeOrderRepo())

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		n, err := svc.NextOrderNumber(context.Background())
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(n, "RW-"), "unexpected format: %s", n)
		assert.False(t, seen[n], "duplicate order number %s", n)
		seen[n] = true
	}
}

func TestOrderTransition_ValidPath(t *testing.T) {
	o := &models.Order{
		OrderNumber: "RW-260830-1",
		UserID:      primitive.NewObjectID(),
		OrderStatus: models.OrderProcessing,
	}
	repo := newFakeOrderRepo(o)
	svc := services.NewOrderService(repo)

	updated, err := svc.Transition(context.Background(), o.ID, models.OrderShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderShipped, updated.OrderStatus)

	updated, err = svc.Transition(context.Background(), o.ID, models.OrderDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.OrderDelivered, updated.OrderStatus)
}

func TestOrderTransition_InvalidMoveRejected(t *testing.T) {
	o := &models.Order{OrderStatus: models.OrderPending, UserID: primitive.NewObjectID()}
	svc := services.NewOrderService(newFakeOrderRepo(o))

	// pending cannot jump straight to delivered.
	_, err := svc.Transition(context.Background(), o.ID, models.OrderDelivered)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
}

func TestOrderTransition_TerminalStatesAreFinal(t *testing.T) {
	for _, terminal := range []string{models.OrderCancelled, models.OrderRefunded} {
		o := &models.Order{OrderStatus: terminal, UserID: primitive.NewObjectID()}
		svc := services.NewOrderService(newFakeOrderRepo(o))

		_, err := svc.Transition(context.Background(), o.ID, models.OrderProcessing)
		assert.ErrorIs(t, err, services.ErrInvalidTransition, "from %s", terminal)
	}
}

func TestOrderTransition_RefundStampsPaymentStatus(t *testing.T) {
	o := &models.Order{OrderStatus: models.OrderProcessing, PaymentStatus: models.PaymentCompleted, UserID: primitive.NewObjectID()}
	svc := services.NewOrderService(newFakeOrderRepo(o))

	updated, err := svc.Transition(context.Background(), o.ID, models.OrderRefunded)
	require.NoError(t, err)
	assert.Equal(t, models.OrderRefunded, updated.OrderStatus)
	assert.Equal(t, models.PaymentRefunded, updated.PaymentStatus)
}

func TestGetForUser_EnforcesOwnership(t *testing.T) {
	owner := primitive.NewObjectID()
	o := &models.Order{UserID: owner, OrderStatus: models.OrderProcessing}
	svc := services.NewOrderService(newFakeOrderRepo(o))

	_, err := svc.GetForUser(context.Background(), primitive.NewObjectID(), o.ID, false)
	assert.ErrorIs(t, err, services.ErrNotFound)

	got, err := svc.GetForUser(context.Background(), owner, o.ID, false)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)

	// Admin may read any order.
	got, err = svc.GetForUser(context.Background(), primitive.NewObjectID(), o.ID, true)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)
}
