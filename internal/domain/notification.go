package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NotificationPayload is the sink-specific projection of an Order sent to
// downstream systems. It is derived, never persisted. Each build gets a fresh
// ID so every send attempt carries its own message identifier.
type NotificationPayload struct {
	ID        uuid.UUID          `json:"id"`
	OrderID   uuid.UUID          `json:"orderId"`
	Address   Address            `json:"shipToAddress"`
	Items     []NotificationItem `json:"orderItems"`
	Total     decimal.Decimal    `json:"finalPrice"`
	CreatedAt time.Time          `json:"creationDate"`
}

type NotificationItem struct {
	ProductID uuid.UUID `json:"id"`
	Quantity  int32     `json:"units"`
}
