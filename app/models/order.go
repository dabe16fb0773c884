package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment status values.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// Order status values.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
	OrderRefunded   = "refunded"
)

// orderTransitions describes the forward edges of the order state
// machine. cancelled and refunded are terminal; refunded is reachable
// from any non-terminal state via a charge refund.
var orderTransitions = map[string][]string{
	OrderPending:    {OrderProcessing, OrderCancelled, OrderRefunded},
	OrderProcessing: {OrderShipped, OrderCancelled, OrderRefunded},
	OrderShipped:    {OrderDelivered, OrderRefunded},
	OrderDelivered:  {OrderRefunded},
	OrderCancelled:  {},
	OrderRefunded:   {},
}

// CanTransition reports whether an order may move from one status to
// another.
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Address is a shipping or billing address snapshot.
type Address struct {
	FullName   string `bson:"fullName" json:"fullName"`
	Line1      string `bson:"line1" json:"line1"`
	Line2      string `bson:"line2,omitempty" json:"line2,omitempty"`
	City       string `bson:"city" json:"city"`
	State      string `bson:"state" json:"state"`
	PostalCode string `bson:"postalCode" json:"postalCode"`
	Country    string `bson:"country" json:"country"`
	Phone      string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// OrderItem is a point-in-time snapshot of a purchased line. Prices and
// names are copied at checkout so later catalog edits don't rewrite
// history.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	SKU       string             `bson:"sku,omitempty" json:"sku,omitempty"`
	VariantID string             `bson:"variantId,omitempty" json:"variantId,omitempty"`
	Color     string             `bson:"color,omitempty" json:"color,omitempty"`
	Size      string             `bson:"size,omitempty" json:"size,omitempty"`
	UnitPrice float64            `bson:"unitPrice" json:"unitPrice"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Order is a completed (or in-flight) purchase.
type Order struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber           string             `bson:"orderNumber" json:"orderNumber"`
	UserID                primitive.ObjectID `bson:"userId" json:"userId"`
	Items                 []OrderItem        `bson:"items" json:"items"`
	TotalAmount           float64            `bson:"totalAmount" json:"totalAmount"`
	ShippingAddress       Address            `bson:"shippingAddress" json:"shippingAddress"`
	BillingAddress        Address            `bson:"billingAddress" json:"billingAddress"`
	PaymentStatus         string             `bson:"paymentStatus" json:"paymentStatus"`
	OrderStatus           string             `bson:"orderStatus" json:"orderStatus"`
	StripeSessionID       string             `bson:"stripeSessionId,omitempty" json:"stripeSessionId,omitempty"`
	StripePaymentIntentID string             `bson:"stripePaymentIntentId,omitempty" json:"stripePaymentIntentId,omitempty"`
	RefundedAt            *time.Time         `bson:"refundedAt,omitempty" json:"refundedAt,omitempty"`
	CreatedAt             time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Counter backs atomic sequence generation (order numbers).
type Counter struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}
