package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order is the immutable record of a completed purchase.
// Invariant: an Order always has at least one item.
type Order struct {
	ID      uuid.UUID
	OwnerID string
	Address Address
	Items   []OrderItem

	CreatedAt time.Time
}

type OrderItem struct {
	ProductID uuid.UUID
	Price     Money
	Quantity  int32

	CreatedAt time.Time
}

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
}

// Total sums unit price times quantity over all items.
// Currency is taken from the first item.
func (o Order) Total() Money {
	var total Money

	for i, item := range o.Items {
		line := item.Price.Times(item.Quantity)
		if i == 0 {
			total = line
			continue
		}
		total.Amount = total.Amount.Add(line.Amount)
	}

	return total
}
