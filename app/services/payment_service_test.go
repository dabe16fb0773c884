package services_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/repwear/app/models"
	"github.com/shashiranjanraj/repwear/app/repositories"
	"github.com/shashiranjanraj/repwear/app/services"
)

type paymentFixture struct {
	svc      *services.PaymentService
	carts    *services.CartService
	cartRepo *fakeCartRepo
	products *fakeProductRepo
	orders   *fakeOrderRepo
	userID   primitive.ObjectID
	ordered  []string
	seen     map[string]bool
}

// newPaymentFixture wires a payment service over fakes, with a cart
// holding 2 units of a single product. The verifier passes events
// through unchanged; the replay guard is an in-memory set.
func newPaymentFixture(t *testing.T, product *models.Product, qty int) *paymentFixture {
	t.Helper()

	f := &paymentFixture{
		cartRepo: newFakeCartRepo(),
		products: newFakeProductRepo(product),
		orders:   newFakeOrderRepo(),
		userID:   primitive.NewObjectID(),
		seen:     map[string]bool{},
	}
	f.carts = services.NewCartService(f.cartRepo, f.products)

	guard := &services.ReplayGuard{
		Claim: func(_ context.Context, id string) (bool, error) {
			if f.seen[id] {
				return false, nil
			}
			f.seen[id] = true
			return true, nil
		},
		Release: func(_ context.Context, id string) error {
			delete(f.seen, id)
			return nil
		},
	}

	f.svc = services.NewPaymentService(
		f.carts, f.cartRepo, f.products, f.orders,
		services.NewOrderService(f.orders),
		guard,
		func(orderNumber, _ string) { f.ordered = append(f.ordered, orderNumber) },
	)
	f.svc.SetVerifier(func(payload []byte, _ string) (stripe.Event, error) {
		var ev stripe.Event
		err := json.Unmarshal(payload, &ev)
		return ev, err
	})

	if qty > 0 {
		_, err := f.carts.Add(context.Background(), f.userID, services.AddToCartInput{
			ProductID: product.ID.Hex(), Quantity: qty,
		})
		require.NoError(t, err)
	}
	return f
}

func sessionCompletedEvent(t *testing.T, eventID, sessionID string, userID primitive.ObjectID) []byte {
	t.Helper()
	shipping, _ := json.Marshal(models.Address{FullName: "Jo Lifts", Line1: "1 Gym St", City: "Austin", State: "TX", PostalCode: "73301", Country: "US"})
	raw := fmt.Sprintf(`{"id":%q,"payment_intent":"pi_100","metadata":{"userId":%q,"shippingAddress":%q,"billingAddress":%q}}`,
		sessionID, userID.Hex(), shipping, shipping)

	payload, err := json.Marshal(map[string]any{
		"id":   eventID,
		"type": "checkout.session.completed",
		"data": map[string]any{"object": json.RawMessage(raw)},
	})
	require.NoError(t, err)
	return payload
}

func intentEvent(t *testing.T, eventID, eventType, intentID string) []byte {
	t.Helper()
	payload, err := json.Marshal(map[string]any{
		"id":   eventID,
		"type": eventType,
		"data": map[string]any{"object": map[string]any{"id": intentID}},
	})
	require.NoError(t, err)
	return payload
}

func TestWebhook_SessionCompletedCreatesOrder(t *testing.T) {
	p := singleProduct(10)
	f := newPaymentFixture(t, p, 2)

	payload := sessionCompletedEvent(t, "evt_1", "cs_1", f.userID)
	require.NoError(t, f.svc.HandleWebhook(context.Background(), payload, "sig"))

	order, err := f.orders.FindBySessionID(context.Background(), "cs_1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentCompleted, order.PaymentStatus)
	assert.Equal(t, models.OrderProcessing, order.OrderStatus)
	assert.Equal(t, "pi_100", order.StripePaymentIntentID)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.InDelta(t, 25.0, order.TotalAmount, 0.001)

	// Stock decremented, cart cleared, confirmation queued.
	updated, err := f.products.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, updated.Stock)

	cart, err := f.cartRepo.FindByUser(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	require.Len(t, f.ordered, 1)
	assert.Equal(t, order.OrderNumber, f.ordered[0])
}

func TestWebhook_DuplicateEventIDSkipped(t *testing.T) {
	p := singleProduct(10)
	f := newPaymentFixture(t, p, 2)

	payload := sessionCompletedEvent(t, "evt_dup", "cs_2", f.userID)
	require.NoError(t, f.svc.HandleWebhook(context.Background(), payload, "sig"))
	require.NoError(t, f.svc.HandleWebhook(context.Background(), payload, "sig"))

	orders, _, err := f.orders.List(context.Background(), repositories.OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Len(t, f.ordered, 1)
}

func TestWebhook_RedeliveredSessionWithoutGuardStillIdempotent(t *testing.T) {
	p := singleProduct(10)
	f := newPaymentFixture(t, p, 2)

	// Distinct event ids for the same session (guard cannot help).
	require.NoError(t, f.svc.HandleWebhook(context.Background(), sessionCompletedEvent(t, "evt_a", "cs_3", f.userID), "sig"))
	require.NoError(t, f.svc.HandleWebhook(context.Background(), sessionCompletedEvent(t, "evt_b", "cs_3", f.userID), "sig"))

	orders, _, err := f.orders.List(context.Background(), repositories.OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestWebhook_BadSignatureRejected(t *testing.T) {
	f := newPaymentFixture(t, singleProduct(10), 0)
	f.svc.SetVerifier(func(_ []byte, _ string) (stripe.Event, error) {
		return stripe.Event{}, fmt.Errorf("signature mismatch")
	})

	err := f.svc.HandleWebhook(context.Background(), []byte("{}"), "bad")
	assert.ErrorIs(t, err, services.ErrBadSignature)
}

func TestWebhook_PaymentFailedCancelsOrder(t *testing.T) {
	f := newPaymentFixture(t, singleProduct(10), 0)

	o := &models.Order{
		UserID:                primitive.NewObjectID(),
		OrderStatus:           models.OrderPending,
		PaymentStatus:         models.PaymentPending,
		StripePaymentIntentID: "pi_fail",
	}
	require.NoError(t, f.orders.Create(context.Background(), o))

	payload := intentEvent(t, "evt_fail", "payment_intent.payment_failed", "pi_fail")
	require.NoError(t, f.svc.HandleWebhook(context.Background(), payload, "sig"))

	updated, err := f.orders.FindByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, updated.OrderStatus)
	assert.Equal(t, models.PaymentFailed, updated.PaymentStatus)
}

func TestWebhook_ChargeRefundedMarksOrderRefunded(t *testing.T) {
	f := newPaymentFixture(t, singleProduct(10), 0)

	o := &models.Order{
		UserID:                primitive.NewObjectID(),
		OrderStatus:           models.OrderProcessing,
		PaymentStatus:         models.PaymentCompleted,
		StripePaymentIntentID: "pi_refund",
	}
	require.NoError(t, f.orders.Create(context.Background(), o))

	payload, err := json.Marshal(map[string]any{
		"id":   "evt_refund",
		"type": "charge.refunded",
		"data": map[string]any{"object": map[string]any{
			"id":             "ch_1",
			"payment_intent": "pi_refund",
		}},
	})
	require.NoError(t, err)
	require.NoError(t, f.svc.HandleWebhook(context.Background(), payload, "sig"))

	updated, err := f.orders.FindByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderRefunded, updated.OrderStatus)
	assert.Equal(t, models.PaymentRefunded, updated.PaymentStatus)
}

func TestWebhook_FailedSettlementRecoversOnRedelivery(t *testing.T) {
	p := singleProduct(10)
	f := newPaymentFixture(t, p, 2)
	f.orders.failCreates = 1

	// First delivery hits a transient order-write failure. The claim
	// must be released and the decremented stock restored, otherwise
	// the payment is captured but the order is lost forever.
	payload := sessionCompletedEvent(t, "evt_retry", "cs_retry", f.userID)
	require.Error(t, f.svc.HandleWebhook(context.Background(), payload, "sig"))

	restored, err := f.products.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, restored.Stock)

	// Redelivery carries the same event id and must be processed.
	require.NoError(t, f.svc.HandleWebhook(context.Background(), payload, "sig"))

	order, err := f.orders.FindBySessionID(context.Background(), "cs_retry")
	require.NoError(t, err)
	assert.Equal(t, models.OrderProcessing, order.OrderStatus)

	updated, err := f.products.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, updated.Stock)

	orders, _, err := f.orders.List(context.Background(), repositories.OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Len(t, f.ordered, 1)
}

func TestWebhook_RemovedVariantFailsSettlement(t *testing.T) {
	p := variantProduct()
	f := newPaymentFixture(t, p, 0)

	_, err := f.carts.Add(context.Background(), f.userID, services.AddToCartInput{
		ProductID: p.ID.Hex(), Quantity: 1,
		Variant: &models.VariantSelector{VariantID: "v-red-m"},
	})
	require.NoError(t, err)

	// The selected variant disappears before the webhook lands.
	require.NoError(t, f.products.Update(context.Background(), p.ID, bson.M{
		"variants": []models.Variant{*p.FindVariant("v-blue-l")},
	}))
	before, err := f.products.FindByID(context.Background(), p.ID)
	require.NoError(t, err)

	payload := sessionCompletedEvent(t, "evt_gone", "cs_gone", f.userID)
	err = f.svc.HandleWebhook(context.Background(), payload, "sig")
	assert.ErrorIs(t, err, services.ErrVariantNotFound)

	// No stock moved: the line must not fall back to single-product
	// pricing and top-level decrement.
	after, err := f.products.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, before.Stock, after.Stock)
}

func TestWebhook_InsufficientStockAtSettlement(t *testing.T) {
	p := singleProduct(1)
	f := newPaymentFixture(t, p, 1)

	// Another checkout drains the stock before the webhook lands.
	require.NoError(t, f.products.DecrementStock(context.Background(), p.ID, 1))

	payload := sessionCompletedEvent(t, "evt_oos", "cs_oos", f.userID)
	err := f.svc.HandleWebhook(context.Background(), payload, "sig")
	assert.ErrorIs(t, err, services.ErrInsufficientStock)
}
