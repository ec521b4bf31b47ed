package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/dkirsanov/inventorypro/internal/events"
	"github.com/dkirsanov/inventorypro/internal/logging"
	"github.com/dkirsanov/inventorypro/internal/models"
	"github.com/dkirsanov/inventorypro/internal/repo"
	"github.com/dkirsanov/inventorypro/internal/transport"
)

type OrderService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
}

// CreateOrder prices the submitted product ids against the live catalog.
// Unresolved ids are dropped silently and duplicates each contribute their
// price again. Prices are read at call time with no locking against
// concurrent changes. Stock is not decremented here.
func (s *OrderService) CreateOrder(ctx context.Context, userID uint, productIDs []uint) (*transport.OrderSummary, error) {
	l := logging.FromContext(ctx).With("svc", "order.create", "user_id", userID)

	byID, err := s.Repo.GetProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, pid := range productIDs {
		if prod, ok := byID[pid]; ok {
			total += prod.Price
		}
	}

	if total == 0 {
		l.Warn("create_order_rejected", "reason", "no valid products")
		return nil, fmt.Errorf("%w: no valid products in order", ErrNoValidProducts)
	}

	order := &models.Order{
		UserID:     userID,
		TotalPrice: total,
		Status:     models.OrderStatusProcessing,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := s.Repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	event := map[string]any{
		"type":     "order_created",
		"order_id": order.ID,
		"user_id":  userID,
		"total":    total,
	}
	if err := s.Producer.PublishEvent(ctx, events.TopicOrderEvents, fmt.Sprint(order.ID), event); err != nil {
		l.Warn("kafka_publish_failed", "order_id", order.ID, "error", err)
	}

	l.Info("create_order_success", "order_id", order.ID, "total", total)
	return &transport.OrderSummary{OrderID: order.ID, Total: total}, nil
}

// CancelOrder moves a Processing order to Cancelled. The lookup is scoped to
// the owner, so an order belonging to someone else fails exactly like a
// nonexistent one.
func (s *OrderService) CancelOrder(ctx context.Context, orderID, userID uint) error {
	l := logging.FromContext(ctx).With("svc", "order.cancel", "order_id", orderID, "user_id", userID)

	order, err := s.Repo.GetOrderForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return err
	}

	if order.Status != models.OrderStatusProcessing {
		l.Warn("cancel_order_rejected", "status", order.Status)
		return fmt.Errorf("%w: cannot cancel order in status %s", ErrAlreadyFinalized, order.Status)
	}

	if err := s.Repo.UpdateOrderStatus(ctx, order.ID, models.OrderStatusCancelled); err != nil {
		return err
	}

	event := map[string]any{
		"type":     "order_cancelled",
		"order_id": order.ID,
		"user_id":  userID,
	}
	if err := s.Producer.PublishEvent(ctx, events.TopicOrderEvents, fmt.Sprint(order.ID), event); err != nil {
		l.Warn("kafka_publish_failed", "error", err)
	}

	l.Info("cancel_order_success")
	return nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx, userID)
}
