package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/acmeshop/checkout/internal/domain"
)

type BasketRepository interface {
	GetBasket(ctx context.Context, ownerID string) (domain.Basket, error)
	AddItem(ctx context.Context, ownerID string, item domain.BasketItem) error

	DeleteBasket(ctx context.Context, ownerID string) error
}

type OrderRepository interface {
	// CreateOrder consumes the owner's basket items into a persisted Order.
	// Returns domain.ErrEmptyBasket when the basket has no items.
	CreateOrder(ctx context.Context, ownerID string, address domain.Address) (domain.Order, error)

	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
}

// QueuePublisher is the message-queue sink for order notifications.
type QueuePublisher interface {
	Publish(ctx context.Context, payload domain.NotificationPayload) error
}

// DeliveryNotifier is the HTTP delivery-processing sink for order notifications.
type DeliveryNotifier interface {
	Notify(ctx context.Context, payload domain.NotificationPayload) error
}
