// Package jobs defines the background jobs dispatched through the
// queue. Configure must be called once at boot before workers start.
package jobs

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/repwear/app/repositories"
	"github.com/shashiranjanraj/repwear/pkg/logger"
	"github.com/shashiranjanraj/repwear/pkg/mail"
	"github.com/shashiranjanraj/repwear/pkg/queue"
)

var deps struct {
	carts  repositories.CartRepository
	users  repositories.UserRepository
	orders repositories.OrderRepository
}

// Configure injects the repositories the jobs need.
func Configure(carts repositories.CartRepository, users repositories.UserRepository, orders repositories.OrderRepository) {
	deps.carts = carts
	deps.users = users
	deps.orders = orders
}

// RegisterAll registers every job type with the queue so serialized
// payloads can be reconstructed by workers.
func RegisterAll() {
	queue.Register("*jobs.OrderConfirmationJob", func() queue.Job { return &OrderConfirmationJob{} })
	queue.Register("*jobs.NewsletterWelcomeJob", func() queue.Job { return &NewsletterWelcomeJob{} })
	queue.Register("*jobs.CartPruneJob", func() queue.Job { return &CartPruneJob{} })
}

// OrderConfirmationJob emails the customer after a successful checkout.
type OrderConfirmationJob struct {
	OrderNumber string `json:"orderNumber"`
	UserID      string `json:"userId"`
}

func (j *OrderConfirmationJob) Handle() error {
	ctx := context.Background()

	uid, err := primitive.ObjectIDFromHex(j.UserID)
	if err != nil {
		return fmt.Errorf("order confirmation: bad user id %q: %w", j.UserID, err)
	}
	user, err := deps.users.FindByID(ctx, uid)
	if err != nil {
		return fmt.Errorf("order confirmation: load user: %w", err)
	}
	order, err := deps.orders.FindByOrderNumber(ctx, j.OrderNumber)
	if err != nil {
		return fmt.Errorf("order confirmation: load order: %w", err)
	}

	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Thanks for your order <strong>%s</strong>. "+
			"We're getting it ready — total: $%.2f.</p>",
		user.Name, order.OrderNumber, order.TotalAmount,
	)

	return mail.New().
		To(user.Email).
		Subject("Order confirmed: " + order.OrderNumber).
		HTML(body).
		Send()
}

// NewsletterWelcomeJob emails a new newsletter subscriber.
type NewsletterWelcomeJob struct {
	Email string `json:"email"`
}

func (j *NewsletterWelcomeJob) Handle() error {
	return mail.New().
		To(j.Email).
		Subject("Welcome to the RepWear newsletter").
		HTML("<p>You're in. Expect drops, training tips, and member-only deals.</p>").
		Send()
}

// CartPruneJob removes a product from every cart after it is
// unpublished or deleted.
type CartPruneJob struct {
	ProductID string `json:"productId"`
}

func (j *CartPruneJob) Handle() error {
	pid, err := primitive.ObjectIDFromHex(j.ProductID)
	if err != nil {
		return fmt.Errorf("cart prune: bad product id %q: %w", j.ProductID, err)
	}

	n, err := deps.carts.PruneProduct(context.Background(), pid)
	if err != nil {
		return fmt.Errorf("cart prune: %w", err)
	}
	logger.Info("cart prune: done", "product_id", j.ProductID, "carts_touched", n)
	return nil
}
