package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/repwear/app/models"
	"github.com/shashiranjanraj/repwear/app/repositories"
)

// OrderService owns order lookup and status management.
type OrderService struct {
	orders repositories.OrderRepository
}

func NewOrderService(orders repositories.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

// NextOrderNumber reserves a unique human-readable order number,
// e.g. RW-260830-17. The counter collection makes the sequence
// collision-proof under concurrent checkouts.
func (s *OrderService) NextOrderNumber(ctx context.Context) (string, error) {
	seq, err := s.orders.NextSequence(ctx, "orders")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("RW-%s-%d", time.Now().Format("060102"), seq), nil
}

// ListMine returns the user's orders, newest first.
func (s *OrderService) ListMine(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// GetForUser returns one order, enforcing ownership unless admin.
func (s *OrderService) GetForUser(ctx context.Context, userID primitive.ObjectID, orderID primitive.ObjectID, admin bool) (*models.Order, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !admin && o.UserID != userID {
		return nil, ErrNotFound
	}
	return o, nil
}

// GetByNumber looks an order up by its order number.
func (s *OrderService) GetByNumber(ctx context.Context, number string) (*models.Order, error) {
	o, err := s.orders.FindByOrderNumber(ctx, number)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

// List is the admin listing with status filters.
func (s *OrderService) List(ctx context.Context, f repositories.OrderFilter) ([]models.Order, int64, error) {
	return s.orders.List(ctx, f)
}

// Transition moves an order to a new status, validating the move
// against the state machine.
func (s *OrderService) Transition(ctx context.Context, orderID primitive.ObjectID, to string) (*models.Order, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !models.CanTransition(o.OrderStatus, to) {
		return nil, ErrInvalidTransition
	}

	update := bson.M{"orderStatus": to}
	if to == models.OrderRefunded {
		now := time.Now()
		update["paymentStatus"] = models.PaymentRefunded
		update["refundedAt"] = now
	}

	if err := s.orders.Update(ctx, orderID, update); err != nil {
		return nil, err
	}
	return s.orders.FindByID(ctx, orderID)
}
