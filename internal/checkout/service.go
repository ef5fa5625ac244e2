// Package checkout sequences the order-checkout flow: persist the order,
// notify the downstream sinks, clear the basket.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/acmeshop/checkout/internal/domain"
	"github.com/acmeshop/checkout/internal/notify"
	"github.com/acmeshop/checkout/internal/port"
	"github.com/acmeshop/checkout/pkg/metrics"
)

type Outcome string

const (
	// OutcomeSuccess: order persisted, sinks attempted, basket deleted.
	OutcomeSuccess Outcome = "success"
	// OutcomeEmptyBasket: nothing to check out; caller should redirect
	// back to the basket view. No sink is invoked, the basket is kept.
	OutcomeEmptyBasket Outcome = "empty_basket"
)

type Result struct {
	Outcome Outcome
	OrderID uuid.UUID
}

type Service struct {
	orders   port.OrderRepository
	baskets  port.BasketRepository
	queue    port.QueuePublisher
	delivery port.DeliveryNotifier

	logger  *slog.Logger
	metrics *metrics.CheckoutMetrics
}

func NewService(
	orders port.OrderRepository,
	baskets port.BasketRepository,
	queue port.QueuePublisher,
	delivery port.DeliveryNotifier,
	logger *slog.Logger,
	m *metrics.CheckoutMetrics,
) (*Service, error) {
	if orders == nil {
		return nil, fmt.Errorf("orders is nil")
	}
	if baskets == nil {
		return nil, fmt.Errorf("baskets is nil")
	}
	if queue == nil {
		return nil, fmt.Errorf("queue is nil")
	}
	if delivery == nil {
		return nil, fmt.Errorf("delivery is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		orders:   orders,
		baskets:  baskets,
		queue:    queue,
		delivery: delivery,
		logger:   logger,
		metrics:  m,
	}, nil
}

// Checkout turns the owner's basket into a persisted Order, notifies both
// downstream sinks and deletes the basket, strictly in that order.
//
// An empty basket is the one locally handled failure: it short-circuits to
// OutcomeEmptyBasket without touching the sinks or the basket. Sink failures
// are absorbed: each is logged and counted but never alters the sequence.
// Every other error propagates to the caller's fault boundary.
func (s *Service) Checkout(ctx context.Context, ownerID string, address domain.Address) (Result, error) {
	var r Result

	order, err := s.orders.CreateOrder(ctx, ownerID, address)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyBasket) {
			s.logger.Warn("checkout attempted with empty basket", "owner_id", ownerID)
			s.countOutcome(OutcomeEmptyBasket)
			return Result{Outcome: OutcomeEmptyBasket}, nil
		}
		return r, fmt.Errorf("orders.CreateOrder: %w", err)
	}

	s.notifySinks(ctx, order)

	if err := s.baskets.DeleteBasket(ctx, ownerID); err != nil {
		return r, fmt.Errorf("baskets.DeleteBasket: %w", err)
	}

	s.logger.Info("checkout completed", "owner_id", ownerID, "order_id", order.ID)
	s.countOutcome(OutcomeSuccess)

	return Result{Outcome: OutcomeSuccess, OrderID: order.ID}, nil
}

// notifySinks invokes the queue and delivery sinks sequentially. Each sink
// gets its own payload build so the two messages carry distinct IDs. Both
// calls are non-fatal: a queue failure never skips the delivery call.
func (s *Service) notifySinks(ctx context.Context, order domain.Order) {
	if err := s.queue.Publish(ctx, notify.BuildPayload(order)); err != nil {
		s.logger.Warn("queue publish failed", "order_id", order.ID, "error", err)
		s.countSinkFailure("queue")
	}

	if err := s.delivery.Notify(ctx, notify.BuildPayload(order)); err != nil {
		s.logger.Warn("delivery notify failed", "order_id", order.ID, "error", err)
		s.countSinkFailure("delivery")
	}
}

func (s *Service) countOutcome(outcome Outcome) {
	if s.metrics != nil {
		s.metrics.Checkouts.WithLabelValues(string(outcome)).Inc()
	}
}

func (s *Service) countSinkFailure(sink string) {
	if s.metrics != nil {
		s.metrics.SinkFailures.WithLabelValues(sink).Inc()
	}
}
