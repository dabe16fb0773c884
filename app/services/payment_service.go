package services

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/repwear/app/models"
	"github.com/shashiranjanraj/repwear/app/repositories"
	"github.com/shashiranjanraj/repwear/config"
	"github.com/shashiranjanraj/repwear/pkg/logger"
	"github.com/shashiranjanraj/repwear/pkg/metrics"
)

// CheckoutInput carries the addresses collected before redirecting the
// user to Stripe.
type CheckoutInput struct {
	ShippingAddress models.Address `json:"shippingAddress"`
	BillingAddress  models.Address `json:"billingAddress"`
}

// CheckoutResult is the session handed back to the storefront.
type CheckoutResult struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// ReplayGuard claims webhook event ids so each delivery is processed
// once. Claim returns true when the id was not seen before. Release
// frees a claim after a failed handler, so the provider's redelivery
// of the same event id is processed instead of skipped.
type ReplayGuard struct {
	Claim   func(ctx context.Context, eventID string) (bool, error)
	Release func(ctx context.Context, eventID string) error
}

// VerifyFunc validates a webhook payload signature and returns the
// parsed event.
type VerifyFunc func(payload []byte, sigHeader string) (stripe.Event, error)

// PaymentService drives Stripe checkout and the webhook-driven order
// pipeline.
type PaymentService struct {
	carts     *CartService
	cartRepo  repositories.CartRepository
	products  repositories.ProductRepository
	orders    repositories.OrderRepository
	orderSvc  *OrderService
	guard     *ReplayGuard
	verify    VerifyFunc
	onOrdered func(orderNumber, userID string) // confirmation mail dispatch
}

// NewPaymentService wires the payment pipeline. guard and onOrdered may
// be nil (no dedup / no mail) — tests use that.
func NewPaymentService(
	carts *CartService,
	cartRepo repositories.CartRepository,
	products repositories.ProductRepository,
	orders repositories.OrderRepository,
	orderSvc *OrderService,
	guard *ReplayGuard,
	onOrdered func(orderNumber, userID string),
) *PaymentService {
	s := &PaymentService{
		carts:     carts,
		cartRepo:  cartRepo,
		products:  products,
		orders:    orders,
		orderSvc:  orderSvc,
		guard:     guard,
		onOrdered: onOrdered,
	}
	s.verify = func(payload []byte, sigHeader string) (stripe.Event, error) {
		return webhook.ConstructEvent(payload, sigHeader, config.StripeWebhookSecret())
	}
	return s
}

// SetVerifier overrides signature verification (tests).
func (s *PaymentService) SetVerifier(v VerifyFunc) { s.verify = v }

// CreateCheckoutSession builds a Stripe Checkout session from the
// user's cart. Addresses travel in the session metadata so the webhook
// can snapshot them onto the order.
func (s *PaymentService) CreateCheckoutSession(ctx context.Context, userID primitive.ObjectID, in CheckoutInput) (*CheckoutResult, error) {
	lines, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	var items []*stripe.CheckoutSessionLineItemParams
	for _, line := range lines {
		if line.Product == nil {
			continue
		}
		name, unitPrice, err := lineItemPricing(line)
		if err != nil {
			return nil, err
		}
		items = append(items, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(int64(line.Item.Quantity)),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String("usd"),
				UnitAmount: stripe.Int64(toCents(unitPrice)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(name),
				},
			},
		})
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	shipping, _ := json.Marshal(in.ShippingAddress)
	billing, _ := json.Marshal(in.BillingAddress)

	frontend := config.FrontendURL()
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  items,
		SuccessURL: stripe.String(frontend + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(frontend + "/checkout/cancel"),
	}
	params.AddMetadata("userId", userID.Hex())
	params.AddMetadata("shippingAddress", string(shipping))
	params.AddMetadata("billingAddress", string(billing))

	sess, err := session.New(params)
	if err != nil {
		return nil, err
	}

	return &CheckoutResult{SessionID: sess.ID, URL: sess.URL}, nil
}

// toCents converts a dollar amount to Stripe's integer cents.
// Rounding (not truncation) keeps 19.99 at 1999, not 1998.
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func lineItemPricing(line models.CartLine) (string, float64, error) {
	p := line.Product
	if line.Item.Variant != nil {
		// The cart read path narrows the product to the selected
		// variant; an empty slice means the variant no longer exists.
		if len(p.Variants) == 0 {
			return "", 0, ErrVariantNotFound
		}
		v := p.Variants[0]
		price := v.Price
		if v.DiscountedPrice > 0 {
			price = v.DiscountedPrice
		}
		return p.Name + " (" + v.Color + " / " + v.Size + ")", price, nil
	}

	price := p.Price
	if p.DiscountedPrice > 0 {
		price = p.DiscountedPrice
	}
	return p.Name, price, nil
}

// HandleWebhook verifies, dedups, and dispatches one webhook delivery.
// A replayed event id is acknowledged without reprocessing.
func (s *PaymentService) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := s.verify(payload, sigHeader)
	if err != nil {
		metrics.WebhookEvents.WithLabelValues("unknown", "error").Inc()
		return ErrBadSignature
	}

	eventType := string(event.Type)

	if s.guard != nil && s.guard.Claim != nil {
		fresh, err := s.guard.Claim(ctx, event.ID)
		if err != nil {
			// Guard unavailable: process anyway, the handlers are
			// idempotent enough to survive a duplicate.
			logger.Warn("webhook: replay guard unavailable", "error", err)
		} else if !fresh {
			metrics.WebhookEvents.WithLabelValues(eventType, "duplicate").Inc()
			logger.Info("webhook: duplicate event skipped", "event_id", event.ID, "type", eventType)
			return nil
		}
	}

	var handleErr error
	switch event.Type {
	case "checkout.session.completed":
		handleErr = s.onSessionCompleted(ctx, event)
	case "payment_intent.succeeded":
		handleErr = s.onPaymentSucceeded(ctx, event)
	case "payment_intent.payment_failed":
		handleErr = s.onPaymentFailed(ctx, event)
	case "charge.refunded":
		handleErr = s.onChargeRefunded(ctx, event)
	default:
		logger.Debug("webhook: ignoring event", "type", eventType)
	}

	if handleErr != nil {
		// Free the claim so the provider's redelivery of this event id
		// is processed instead of skipped as a duplicate. Redeliveries
		// of already-settled sessions stay safe via FindBySessionID.
		if s.guard != nil && s.guard.Release != nil {
			if err := s.guard.Release(ctx, event.ID); err != nil {
				logger.Warn("webhook: replay claim release failed",
					"event_id", event.ID, "error", err)
			}
		}
		metrics.WebhookEvents.WithLabelValues(eventType, "error").Inc()
		return handleErr
	}
	metrics.WebhookEvents.WithLabelValues(eventType, "processed").Inc()
	return nil
}

// onSessionCompleted turns the paid session into an order: snapshot the
// cart, decrement stock atomically per line, clear the cart, and queue
// the confirmation mail.
func (s *PaymentService) onSessionCompleted(ctx context.Context, event stripe.Event) error {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return err
	}

	// Redelivered after the order exists → nothing to do.
	if _, err := s.orders.FindBySessionID(ctx, sess.ID); err == nil {
		logger.Info("webhook: order already exists for session", "session_id", sess.ID)
		return nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	userID, err := primitive.ObjectIDFromHex(sess.Metadata["userId"])
	if err != nil {
		return errors.New("webhook: session missing userId metadata")
	}

	lines, err := s.carts.Get(ctx, userID)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		logger.Warn("webhook: cart already empty for completed session", "session_id", sess.ID)
		return nil
	}

	items, total, err := s.snapshotAndDecrement(ctx, lines)
	if err != nil {
		return err
	}

	number, err := s.orderSvc.NextOrderNumber(ctx)
	if err != nil {
		s.restoreStock(ctx, items)
		return err
	}

	var shipping, billing models.Address
	_ = json.Unmarshal([]byte(sess.Metadata["shippingAddress"]), &shipping)
	_ = json.Unmarshal([]byte(sess.Metadata["billingAddress"]), &billing)

	order := &models.Order{
		OrderNumber:     number,
		UserID:          userID,
		Items:           items,
		TotalAmount:     total,
		ShippingAddress: shipping,
		BillingAddress:  billing,
		PaymentStatus:   models.PaymentCompleted,
		OrderStatus:     models.OrderProcessing,
		StripeSessionID: sess.ID,
	}
	if sess.PaymentIntent != nil {
		order.StripePaymentIntentID = sess.PaymentIntent.ID
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.restoreStock(ctx, items)
		return err
	}

	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		logger.Error("webhook: cart clear failed", "user_id", userID.Hex(), "error", err)
	}

	metrics.OrdersCreated.Inc()
	logger.Info("webhook: order created",
		"order_number", number, "user_id", userID.Hex(), "total", total)

	if s.onOrdered != nil {
		s.onOrdered(number, userID.Hex())
	}
	return nil
}

func (s *PaymentService) snapshotAndDecrement(ctx context.Context, lines []models.CartLine) ([]models.OrderItem, float64, error) {
	var items []models.OrderItem
	var total float64

	// A failed line undoes the decrements already applied, so the
	// provider's retry starts from the original stock levels.
	fail := func(err error) ([]models.OrderItem, float64, error) {
		s.restoreStock(ctx, items)
		return nil, 0, err
	}

	for _, line := range lines {
		p := line.Product
		if p == nil {
			continue
		}

		item := models.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			SKU:       p.SKU,
			Quantity:  line.Item.Quantity,
		}

		if line.Item.Variant != nil {
			// Projection left exactly one variant, or none if the
			// selected variant was removed after the add.
			if len(p.Variants) == 0 {
				return fail(ErrVariantNotFound)
			}
			v := p.Variants[0]
			item.VariantID = v.VariantID
			item.Color = v.Color
			item.Size = v.Size
			item.SKU = v.SKU
			item.UnitPrice = v.Price
			if v.DiscountedPrice > 0 {
				item.UnitPrice = v.DiscountedPrice
			}
			if err := s.products.DecrementVariantStock(ctx, p.ID, v.VariantID, item.Quantity); err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return fail(ErrInsufficientStock)
				}
				return fail(err)
			}
		} else {
			item.UnitPrice = p.Price
			if p.DiscountedPrice > 0 {
				item.UnitPrice = p.DiscountedPrice
			}
			if err := s.products.DecrementStock(ctx, p.ID, item.Quantity); err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return fail(ErrInsufficientStock)
				}
				return fail(err)
			}
		}

		total += item.UnitPrice * float64(item.Quantity)
		items = append(items, item)
	}

	return items, total, nil
}

// restoreStock re-increments the stock consumed by items. Best effort:
// a restore failure is logged, not propagated.
func (s *PaymentService) restoreStock(ctx context.Context, items []models.OrderItem) {
	for _, item := range items {
		var err error
		if item.VariantID != "" {
			err = s.products.IncrementVariantStock(ctx, item.ProductID, item.VariantID, item.Quantity)
		} else {
			err = s.products.IncrementStock(ctx, item.ProductID, item.Quantity)
		}
		if err != nil {
			logger.Error("webhook: stock restore failed",
				"product_id", item.ProductID.Hex(), "variant_id", item.VariantID, "error", err)
		}
	}
}

// onPaymentSucceeded re-confirms an order (and re-clears the cart as a
// backup) when the payment intent settles.
func (s *PaymentService) onPaymentSucceeded(ctx context.Context, event stripe.Event) error {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return err
	}

	order, err := s.orders.FindByPaymentIntentID(ctx, intent.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// checkout.session.completed may not have landed yet; the
			// provider will redeliver if this stays unresolved.
			logger.Info("webhook: no order yet for payment intent", "intent_id", intent.ID)
			return nil
		}
		return err
	}

	if order.PaymentStatus != models.PaymentCompleted {
		if err := s.orders.Update(ctx, order.ID, bson.M{"paymentStatus": models.PaymentCompleted}); err != nil {
			return err
		}
	}
	return s.cartRepo.Clear(ctx, order.UserID)
}

func (s *PaymentService) onPaymentFailed(ctx context.Context, event stripe.Event) error {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return err
	}

	order, err := s.orders.FindByPaymentIntentID(ctx, intent.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return err
	}

	return s.orders.Update(ctx, order.ID, bson.M{
		"paymentStatus": models.PaymentFailed,
		"orderStatus":   models.OrderCancelled,
	})
}

func (s *PaymentService) onChargeRefunded(ctx context.Context, event stripe.Event) error {
	var charge stripe.Charge
	if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
		return err
	}
	if charge.PaymentIntent == nil {
		return nil
	}

	order, err := s.orders.FindByPaymentIntentID(ctx, charge.PaymentIntent.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return err
	}

	return s.orders.Update(ctx, order.ID, bson.M{
		"paymentStatus": models.PaymentRefunded,
		"orderStatus":   models.OrderRefunded,
		"refundedAt":    time.Unix(event.Created, 0),
	})
}
