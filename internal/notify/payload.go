// Package notify contains the downstream sinks for order notifications and
// the projection of an Order into the payload they transmit.
package notify

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/acmeshop/checkout/internal/domain"
)

// BuildPayload projects an Order into a NotificationPayload. Call it once per
// sink: every call produces a fresh message ID and capture timestamp, so each
// downstream system receives its own message identity.
func BuildPayload(order domain.Order) domain.NotificationPayload {
	return domain.NotificationPayload{
		ID:      uuid.New(),
		OrderID: order.ID,
		Address: order.Address,
		Items: lo.Map(order.Items, func(item domain.OrderItem, _ int) domain.NotificationItem {
			return domain.NotificationItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			}
		}),
		Total:     order.Total().Amount,
		CreatedAt: time.Now().UTC(),
	}
}
